package catalog

// Product is the catalog's view of an item. Prices are carried as integer
// minor units (cents); the catalog API speaks decimal dollars and the
// conversion happens only at this boundary.
type Product struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"price_cents"`
	LighterType    string `json:"lighter_type"`
	Category       string `json:"category"`
	PrimaryImage   string `json:"primary_image"`
	IsSoldOut      bool   `json:"is_sold_out"`
	IsInStock      bool   `json:"is_in_stock"`
	InventoryCount int64  `json:"inventory_count"`
}

// Page is one page of a product listing.
type Page struct {
	Results []Product
	Count   int64

	// HasNext reports whether the server indicated a further page.
	HasNext bool
}

// Category is a facet the feed can be narrowed by.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// wireProduct matches the catalog API response shape.
type wireProduct struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	LighterType    string  `json:"lighter_type_display"`
	Category       string  `json:"category"`
	PrimaryImage   string  `json:"primary_image"`
	IsSoldOut      bool    `json:"is_sold_out"`
	IsInStock      bool    `json:"is_in_stock"`
	InventoryCount int64   `json:"inventory_count"`
}

type wirePage struct {
	Results  []wireProduct `json:"results"`
	Count    int64         `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
}

type wireCategoryPage struct {
	Results []Category `json:"results"`
	Next    *string    `json:"next"`
}

type wireBatch struct {
	Products []wireProduct `json:"products"`
	Count    int64         `json:"count"`
}

func (w wireProduct) toProduct() Product {
	return Product{
		ID:             w.ID,
		Name:           w.Name,
		Slug:           w.Slug,
		Description:    w.Description,
		PriceCents:     dollarsToCents(w.Price),
		LighterType:    w.LighterType,
		Category:       w.Category,
		PrimaryImage:   w.PrimaryImage,
		IsSoldOut:      w.IsSoldOut,
		IsInStock:      w.IsInStock,
		InventoryCount: w.InventoryCount,
	}
}

// dollarsToCents converts a decimal dollar amount to integer cents,
// rounding half away from zero.
func dollarsToCents(d float64) int64 {
	if d < 0 {
		return int64(d*100 - 0.5)
	}
	return int64(d*100 + 0.5)
}
