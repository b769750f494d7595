// Package source implements the catalog document sources. The wire
// schema follows the upstream document exactly: id, nombre, descripcion,
// precio, imagen, categoria, destacado.
package source

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tienda-kame/storefront/internal/catalog/domain"
)

type wireProduct struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Imagen      string  `json:"imagen"`
	Categoria   string  `json:"categoria"`
	Destacado   bool    `json:"destacado"`
}

func decode(data []byte) ([]domain.Product, error) {
	var wire []wireProduct
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "parse catalog document")
	}

	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		cat, err := domain.ParseCategory(w.Categoria)
		if err != nil {
			return nil, errors.Wrapf(err, "product %d", w.ID)
		}
		if w.Precio < 0 {
			return nil, errors.Errorf("product %d: negative price %v", w.ID, w.Precio)
		}
		products = append(products, domain.Product{
			ID:          w.ID,
			Name:        w.Nombre,
			Description: w.Descripcion,
			Price:       domain.MoneyFromDecimal(w.Precio),
			Image:       w.Imagen,
			Category:    cat,
			Featured:    w.Destacado,
		})
	}
	return products, nil
}
