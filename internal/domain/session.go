package domain

import "time"

// SessionState is the persisted form of one shopper's storefront state.
type SessionState struct {
	SessionID string          `json:"session_id"`
	Cart      []CartLine      `json:"cart"`
	Wishlist  []WishlistEntry `json:"wishlist"`
	Orders    []Order         `json:"orders"`
	Profile   Profile         `json:"profile"`
	SavedAt   time.Time       `json:"saved_at"`
}

// OrderPlacedEvent is published once checkout completes.
type OrderPlacedEvent struct {
	EventID         string          `json:"event_id"`
	OrderID         string          `json:"order_id"`
	SessionID       string          `json:"session_id"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Discount        float64         `json:"discount"`
	Total           float64         `json:"total"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PlacedAt        time.Time       `json:"placed_at"`
}
