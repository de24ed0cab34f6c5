package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPending, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatus("lost"), false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestProduct_DiscountPercent(t *testing.T) {
	assert.Equal(t, 25, Product{Price: 750, OriginalPrice: 1000}.DiscountPercent())
	assert.Equal(t, 40, Product{Price: 750, OriginalPrice: 1000, Discount: 40}.DiscountPercent())
	assert.Equal(t, 0, Product{Price: 750}.DiscountPercent())
}

func TestOrder_CloneIsIndependent(t *testing.T) {
	o := Order{ID: "ORD123456", Items: []OrderItem{{ProductID: "p1", Quantity: 1}}}
	c := o.Clone()
	c.Items[0].Quantity = 9

	assert.Equal(t, 1, o.Items[0].Quantity)
}
