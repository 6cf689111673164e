package domain

// Quantity bounds for a single cart line.
const (
	MinQuantity int64 = 1
	MaxQuantity int64 = 999
)

// LineItem is one product entry in the cart. Title and ImageRef are display
// snapshots captured at add time; they are never re-synced with the catalog.
type LineItem struct {
	ProductID string
	Title     string
	ImageRef  string
	Quantity  int64
}

// Valid reports whether the line item satisfies the stored-shape contract:
// non-empty product id and a quantity within [MinQuantity, MaxQuantity].
func (li LineItem) Valid() bool {
	if li.ProductID == "" {
		return false
	}
	return li.Quantity >= MinQuantity && li.Quantity <= MaxQuantity
}

// ClampQuantity forces q into the [MinQuantity, MaxQuantity] range.
func ClampQuantity(q int64) int64 {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
