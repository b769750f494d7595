package view

import "sync"

// Selector holds the per-product-card quantity counters of the catalog
// page. These are deliberately separate from the persisted cart
// quantities: a card's counter starts at 1, never drops below 1, and
// resets to 1 after a successful add-to-cart. The table lives and dies
// with the process.
type Selector struct {
	mu         sync.Mutex
	quantities map[int64]int64
}

func NewSelector() *Selector {
	return &Selector{quantities: make(map[int64]int64)}
}

// Current returns the card's counter, defaulting to 1.
func (s *Selector) Current(productID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(productID)
}

// Step applies a delta and returns the new value, floored at 1.
func (s *Selector) Step(productID, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.current(productID) + delta
	if q < 1 {
		q = 1
	}
	s.quantities[productID] = q
	return q
}

// Reset puts the card's counter back to 1.
func (s *Selector) Reset(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quantities, productID)
}

func (s *Selector) current(productID int64) int64 {
	if q, ok := s.quantities[productID]; ok {
		return q
	}
	return 1
}
