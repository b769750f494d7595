package app

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tienda-kame/storefront/internal/catalog/domain"
)

var (
	ErrNotFound   = errors.New("product not found")
	ErrLoadFailed = errors.New("catalog load failed")
)

// Store loads and indexes the product catalog. The document is fetched
// at most once per process lifetime: a successful load is cached for
// good, concurrent callers share one in-flight fetch, and a failed load
// leaves the catalog empty so the next Load call retries.
type Store struct {
	source Source
	group  singleflight.Group

	mu       sync.RWMutex
	loaded   bool
	products []domain.Product
	byID     map[int64]domain.Product
	byCat    map[domain.Category][]domain.Product
}

func NewStore(source Source) *Store {
	return &Store{source: source}
}

func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := s.group.Do("load", func() (any, error) {
		s.mu.RLock()
		loaded := s.loaded
		s.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		products, err := s.source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		s.index(products)
		return nil, nil
	})
	return err
}

func (s *Store) index(products []domain.Product) {
	byID := make(map[int64]domain.Product, len(products))
	byCat := make(map[domain.Category][]domain.Product)
	for _, p := range products {
		byID[p.ID] = p
		byCat[p.Category] = append(byCat[p.Category], p)
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.byCat = byCat
	s.loaded = true
	s.mu.Unlock()
}

// Loaded reports whether a catalog document has been indexed. Callers
// must treat an unloaded catalog as "try again", not "no products".
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ByCategory yields the products of one category in catalog load order.
// The sequence is finite and restartable; it is empty when the catalog
// has not been loaded.
func (s *Store) ByCategory(cat domain.Category) iter.Seq[domain.Product] {
	return func(yield func(domain.Product) bool) {
		s.mu.RLock()
		products := s.byCat[cat]
		s.mu.RUnlock()

		for _, p := range products {
			if !yield(p) {
				return
			}
		}
	}
}

// All yields every product in catalog load order.
func (s *Store) All() iter.Seq[domain.Product] {
	return func(yield func(domain.Product) bool) {
		s.mu.RLock()
		products := s.products
		s.mu.RUnlock()

		for _, p := range products {
			if !yield(p) {
				return
			}
		}
	}
}

// FeaturedTopN picks, for each category in display order, the featured
// products sorted by descending price (stable, so equal prices keep
// load order) and takes the first n of each block.
func (s *Store) FeaturedTopN(n int) []domain.Product {
	if n <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, cat := range domain.Categories() {
		var featured []domain.Product
		for _, p := range s.byCat[cat] {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		sort.SliceStable(featured, func(i, j int) bool {
			return featured[i].Price > featured[j].Price
		})
		if len(featured) > n {
			featured = featured[:n]
		}
		out = append(out, featured...)
	}
	return out
}

func (s *Store) ByID(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}
