package source

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/tienda-kame/storefront/internal/catalog/domain"
)

// FileSource reads the catalog document from a static file on disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(_ context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	return decode(data)
}
