package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// dispatch runs cmd and answers with the resulting profile.
func (h *ProfileHandler) dispatch(w http.ResponseWriter, r *http.Request, status int, cmd service.Command) {
	s := sessionFromContext(r.Context())
	if err := s.Dispatch(r.Context(), cmd); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, status, s.Profile().Profile())
}

// POST /api/v1/auth/login
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.Credentials
	if !decodeJSON(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusOK, service.Login{Credentials: req})
}

// POST /api/v1/auth/signup
func (h *ProfileHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusCreated, service.Signup{Request: req})
}

// POST /api/v1/auth/demo
func (h *ProfileHandler) CreateDemo(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, http.StatusOK, service.CreateDemoProfile{})
}

// POST /api/v1/auth/logout
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, http.StatusOK, service.Logout{})
}

// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessionFromContext(r.Context()).Profile().Profile())
}

// PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if !sessionFromContext(r.Context()).Profile().IsAuthenticated() {
		handleServiceError(w, r, store.ErrNotAuthenticated)
		return
	}
	h.dispatch(w, r, http.StatusOK, service.UpdateProfile{Update: req})
}

// POST /api/v1/profile/addresses
func (h *ProfileHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req domain.Address
	if !decodeJSON(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusCreated, service.AddAddress{Address: req})
}

// PATCH /api/v1/profile/addresses/{address_id}
func (h *ProfileHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var req domain.AddressUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusOK, service.UpdateAddress{AddressID: chi.URLParam(r, "address_id"), Update: req})
}

// DELETE /api/v1/profile/addresses/{address_id}
func (h *ProfileHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, http.StatusOK, service.RemoveAddress{AddressID: chi.URLParam(r, "address_id")})
}

// PUT /api/v1/profile/addresses/{address_id}/default
func (h *ProfileHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, http.StatusOK, service.SetDefaultAddress{AddressID: chi.URLParam(r, "address_id")})
}
