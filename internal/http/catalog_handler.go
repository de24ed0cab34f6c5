package http

import (
	"net/http"
	"strconv"

	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog store.Catalog
}

func NewCatalogHandler(catalog store.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseProductQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, store.Filter(products, q))
}

func parseProductQuery(r *http.Request) (store.ProductQuery, error) {
	v := r.URL.Query()
	q := store.ProductQuery{
		Search:    v.Get("q"),
		Category:  v.Get("category"),
		Materials: v["material"],
		SaleOnly:  v.Get("sale") == "true",
		Sort:      v.Get("sort"),
	}

	var err error
	if s := v.Get("min_price"); s != "" {
		if q.MinPrice, err = strconv.ParseFloat(s, 64); err != nil {
			return q, errInvalidParam("min_price")
		}
	}
	if s := v.Get("max_price"); s != "" {
		if q.MaxPrice, err = strconv.ParseFloat(s, 64); err != nil {
			return q, errInvalidParam("max_price")
		}
	}
	if s := v.Get("min_discount"); s != "" {
		if q.MinDiscount, err = strconv.Atoi(s); err != nil {
			return q, errInvalidParam("min_discount")
		}
	}
	if s := v.Get("min_rating"); s != "" {
		if q.MinRating, err = strconv.ParseFloat(s, 64); err != nil {
			return q, errInvalidParam("min_rating")
		}
	}

	switch q.Sort {
	case "", store.SortNewest, store.SortPriceAsc, store.SortPriceDesc, store.SortPopularity, store.SortRating:
	default:
		return q, errInvalidParam("sort")
	}
	return q, nil
}

type invalidParamError string

func (e invalidParamError) Error() string { return "invalid value for " + string(e) }

func errInvalidParam(name string) error { return invalidParamError(name) }

// GET /api/v1/products/{product_id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.catalog.ListCollections(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, collections)
}
