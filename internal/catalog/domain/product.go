package domain

import (
	"fmt"
	"math"
)

// Money is an amount in centavos. The catalog document carries prices as
// two-decimal numbers; converting once at the edge keeps all arithmetic
// integral.
type Money int64

func MoneyFromDecimal(v float64) Money {
	return Money(math.Round(v * 100))
}

func (m Money) Decimal() float64 { return float64(m) / 100 }

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m/100, m%100)
}

type Category string

const (
	CategoryIndumentaria  Category = "indumentaria"
	CategoryEntrenamiento Category = "entrenamiento"
	CategoryConsumibles   Category = "consumibles"
)

// Categories returns the three catalog categories in display order.
// Featured views concatenate their blocks in exactly this order.
func Categories() []Category {
	return []Category{CategoryIndumentaria, CategoryEntrenamiento, CategoryConsumibles}
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryIndumentaria, CategoryEntrenamiento, CategoryConsumibles:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Product is immutable once the catalog is loaded.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       Money
	Image       string
	Category    Category
	Featured    bool
}
