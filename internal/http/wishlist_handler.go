package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct{}

func NewWishlistHandler() *WishlistHandler {
	return &WishlistHandler{}
}

type WishlistItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type WishlistResponse struct {
	Items []domain.WishlistEntry `json:"items"`
}

type MoveToCartResponse struct {
	Cart     CartResponse     `json:"cart"`
	Wishlist WishlistResponse `json:"wishlist"`
}

func wishlistResponse(s *service.Session) WishlistResponse {
	items := s.Wishlist().Items()
	if items == nil {
		items = []domain.WishlistEntry{}
	}
	return WishlistResponse{Items: items}
}

// GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, wishlistResponse(sessionFromContext(r.Context())))
}

// POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req WishlistItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	s := sessionFromContext(r.Context())
	if err := s.Dispatch(r.Context(), service.AddToWishlist{ProductID: req.ProductID}); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, wishlistResponse(s))
}

// DELETE /api/v1/wishlist/items/{product_id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	if err := s.Dispatch(r.Context(), service.RemoveFromWishlist{ProductID: chi.URLParam(r, "product_id")}); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlistResponse(s))
}

// POST /api/v1/wishlist/items/{product_id}/move-to-cart
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	if err := s.Dispatch(r.Context(), service.MoveToCart{ProductID: chi.URLParam(r, "product_id")}); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MoveToCartResponse{
		Cart:     cartResponse(s),
		Wishlist: wishlistResponse(s),
	})
}
