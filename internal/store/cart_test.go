package store

import (
	"sync"
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: price, Image: id + ".jpg"}
}

func TestCartStore_AddToCart_MergesSameProduct(t *testing.T) {
	cart := NewCartStore()

	cart.AddToCart(product("p1", 500), 1)
	cart.AddToCart(product("p1", 500), 2)
	cart.AddToCart(product("p1", 500), 4)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, "Product p1", lines[0].Name)
}

func TestCartStore_AddToCart_ClampsQuantity(t *testing.T) {
	cart := NewCartStore()

	cart.AddToCart(product("p1", 100), 0)
	cart.AddToCart(product("p2", 100), -3)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCartStore_Subtotal(t *testing.T) {
	cart := NewCartStore()

	cart.AddToCart(product("p1", 500), 2)
	cart.AddToCart(product("p2", 600), 1)

	assert.Equal(t, 1600.0, cart.Subtotal())
	assert.Equal(t, 3, cart.ItemCount())

	cart.UpdateQuantity("p2", 3)
	assert.Equal(t, 2800.0, cart.Subtotal())

	cart.RemoveFromCart("p1")
	assert.Equal(t, 1800.0, cart.Subtotal())
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartStore_UpdateQuantity_IgnoresNonPositive(t *testing.T) {
	cart := NewCartStore()
	cart.AddToCart(product("p1", 500), 3)

	assert.False(t, cart.UpdateQuantity("p1", 0))
	assert.False(t, cart.UpdateQuantity("p1", -1))
	assert.False(t, cart.UpdateQuantity("missing", 5))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	assert.True(t, cart.UpdateQuantity("p1", 5))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
}

func TestCartStore_RemoveFromCart_Idempotent(t *testing.T) {
	cart := NewCartStore()
	cart.AddToCart(product("p1", 500), 1)
	cart.AddToCart(product("p2", 100), 1)

	cart.RemoveFromCart("p1")
	cart.RemoveFromCart("p1")

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}

func TestCartStore_LinesReturnsCopy(t *testing.T) {
	cart := NewCartStore()
	cart.AddToCart(product("p1", 500), 1)

	lines := cart.Lines()
	lines[0].Quantity = 42

	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCartStore_ClearCart(t *testing.T) {
	cart := NewCartStore()
	cart.AddToCart(product("p1", 500), 1)

	cart.ClearCart()

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Subtotal())
	assert.Zero(t, cart.ItemCount())
}

func TestCartStore_Restore_MergesAndDropsInvalid(t *testing.T) {
	cart := NewCartStore()
	cart.Restore([]domain.CartLine{
		{ProductID: "p1", Price: 10, Quantity: 1},
		{ProductID: "p1", Price: 10, Quantity: 2},
		{ProductID: "p2", Price: 10, Quantity: 0},
	})

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCartStore_ConcurrentAdds(t *testing.T) {
	cart := NewCartStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart.AddToCart(product("p1", 10), 2)
		}()
	}
	wg.Wait()

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 100, lines[0].Quantity)
	assert.Equal(t, 1000.0, cart.Subtotal())
}
