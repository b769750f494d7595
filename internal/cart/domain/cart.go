package domain

// Money is an amount in centavos, mirroring the catalog's representation.
type Money int64

func (m Money) Decimal() float64 { return float64(m) / 100 }

// Item is one cart line. Name, Price and Image are snapshots taken from
// the catalog when the item was first added; later catalog changes never
// touch them. Quantity is always >= 1 — an item that would reach zero is
// removed instead of stored.
type Item struct {
	ID       int64
	Name     string
	Price    Money
	Image    string
	Quantity int64
}

// TotalQuantity sums the quantities of all items.
func TotalQuantity(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// TotalValue sums snapshot price times quantity over all items.
func TotalValue(items []Item) Money {
	var total Money
	for _, it := range items {
		total += it.Price * Money(it.Quantity)
	}
	return total
}

// Summary is the derived view pushed to display surfaces after every
// mutation.
type Summary struct {
	TotalQuantity int64
	TotalValue    Money
	Items         []Item
}

func Summarize(items []Item) Summary {
	return Summary{
		TotalQuantity: TotalQuantity(items),
		TotalValue:    TotalValue(items),
		Items:         items,
	}
}
