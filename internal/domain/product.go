package domain

import (
	"math"
	"time"
)

type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	OriginalPrice float64           `json:"original_price,omitempty"`
	Discount      int               `json:"discount,omitempty"`
	Image         string            `json:"image"`
	Images        []string          `json:"images,omitempty"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Tags          []string          `json:"tags,omitempty"`
	Features      []string          `json:"features,omitempty"`
	Specs         map[string]string `json:"specs,omitempty"`
	Material      string            `json:"material,omitempty"`
	Stock         int               `json:"stock"`
	Rating        float64           `json:"rating"`
	Reviews       int               `json:"reviews"`
	Featured      bool              `json:"featured,omitempty"`
	BestSeller    bool              `json:"best_seller,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// DiscountPercent returns the explicit discount, or the one implied by OriginalPrice.
func (p Product) DiscountPercent() int {
	if p.Discount > 0 {
		return p.Discount
	}
	if p.OriginalPrice <= 0 || p.OriginalPrice <= p.Price {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// OnSale reports whether the product is listed with a discount, explicit or
// implied by OriginalPrice.
func (p Product) OnSale() bool {
	return p.DiscountPercent() > 0
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}
