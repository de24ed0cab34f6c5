package store

import (
	"context"
	"slices"
	"strings"

	"github.com/fjod/storefront/internal/domain"
)

// Catalog is the read-only product source.
type Catalog interface {
	// ListProducts returns every product in seed order
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct returns ErrProductNotFound for an unknown id
	GetProduct(ctx context.Context, id string) (domain.Product, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
}

// MemoryCatalog serves the built-in seed catalog. It never changes after construction.
type MemoryCatalog struct {
	products    []domain.Product
	byID        map[string]int
	categories  []domain.Category
	collections []domain.Collection
}

func NewMemoryCatalog(products []domain.Product, categories []domain.Category, collections []domain.Collection) *MemoryCatalog {
	c := &MemoryCatalog{
		products:    slices.Clone(products),
		byID:        make(map[string]int, len(products)),
		categories:  slices.Clone(categories),
		collections: slices.Clone(collections),
	}
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

// NewSeedCatalog returns a MemoryCatalog with the storefront's default assortment.
func NewSeedCatalog() *MemoryCatalog {
	return NewMemoryCatalog(SeedProducts(), SeedCategories(), SeedCollections())
}

func (c *MemoryCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	return slices.Clone(c.products), nil
}

func (c *MemoryCatalog) GetProduct(_ context.Context, id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

func (c *MemoryCatalog) ListCategories(_ context.Context) ([]domain.Category, error) {
	return slices.Clone(c.categories), nil
}

func (c *MemoryCatalog) ListCollections(_ context.Context) ([]domain.Collection, error) {
	return slices.Clone(c.collections), nil
}

// Sort orders accepted by ProductQuery.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortPopularity = "popularity"
	SortRating     = "rating"
)

// ProductQuery narrows a product listing. Zero values disable a filter.
type ProductQuery struct {
	Search      string
	Category    string
	MinPrice    float64
	MaxPrice    float64
	Materials   []string
	MinDiscount int
	MinRating   float64
	SaleOnly    bool
	Sort        string
}

// Filter applies q to products and returns a new, sorted slice.
func Filter(products []domain.Product, q ProductQuery) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		if len(q.Materials) > 0 && !matchesMaterial(p.Material, q.Materials) {
			continue
		}
		if q.MinDiscount > 0 && p.DiscountPercent() < q.MinDiscount {
			continue
		}
		if p.Rating < q.MinRating {
			continue
		}
		if q.SaleOnly && !p.OnSale() {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

func matchesMaterial(material string, wanted []string) bool {
	if material == "" {
		return false
	}
	material = strings.ToLower(material)
	for _, w := range wanted {
		if strings.Contains(material, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, order string) {
	var cmp func(a, b domain.Product) int
	switch order {
	case "":
		return
	case SortPriceAsc:
		cmp = func(a, b domain.Product) int { return compareFloat(a.Price, b.Price) }
	case SortPriceDesc:
		cmp = func(a, b domain.Product) int { return compareFloat(b.Price, a.Price) }
	case SortPopularity:
		cmp = func(a, b domain.Product) int { return b.Reviews - a.Reviews }
	case SortRating:
		cmp = func(a, b domain.Product) int { return compareFloat(b.Rating, a.Rating) }
	default:
		cmp = func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	slices.SortStableFunc(products, cmp)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
