package service

import (
	"math"
	"strings"
)

type Pricing struct {
	ShippingFee           float64
	FreeShippingThreshold float64
}

func DefaultPricing() Pricing {
	return Pricing{ShippingFee: 99, FreeShippingThreshold: 999}
}

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Quote prices an order. Shipping is waived when the subtotal is above the threshold.
func (p Pricing) Quote(subtotal, discountRate float64) Quote {
	shipping := p.ShippingFee
	if subtotal > p.FreeShippingThreshold {
		shipping = 0
	}
	discount := roundCents(subtotal * discountRate)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + shipping - discount,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

var coupons = map[string]float64{
	"WELCOME10": 0.10,
	"SUMMER20":  0.20,
}

// couponRate returns the discount rate of a coupon code.
func couponRate(code string) (string, float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	rate, ok := coupons[code]
	if !ok {
		return "", 0, ErrInvalidCoupon
	}
	return code, rate, nil
}
