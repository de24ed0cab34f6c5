package domain

// CartLine is one product in the cart. Name, price and image are copied from
// the product when the line is created.
type CartLine struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
}

func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

func NewCartLine(p Product, quantity int) CartLine {
	return CartLine{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Quantity:      quantity,
	}
}

type WishlistEntry struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Rating    float64 `json:"rating,omitempty"`
}

func NewWishlistEntry(p Product) WishlistEntry {
	return WishlistEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Rating:    p.Rating,
	}
}
