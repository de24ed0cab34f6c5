package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/service"
	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type RouterConfig struct {
	Sessions *service.Sessions
	Catalog  store.Catalog
	// Archive may be nil when no database is configured
	Archive OrderArchive
	Logger  *slog.Logger

	RequestTimeout time.Duration
	CORSOrigins    []string
	// RateLimiter may be nil to disable limiting
	RateLimiter *RateLimiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	catalogHandler := NewCatalogHandler(cfg.Catalog)
	cartHandler := NewCartHandler()
	wishlistHandler := NewWishlistHandler()
	ordersHandler := NewOrdersHandler(cfg.Archive)
	profileHandler := NewProfileHandler()
	checkoutHandler := NewCheckoutHandler()

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", SessionHeader},
		ExposedHeaders: []string{SessionHeader},
		MaxAge:         300,
	}).Handler)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{product_id}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/collections", catalogHandler.ListCollections)

		// everything below belongs to a shopper session
		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.Sessions))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)
				r.Post("/items", wishlistHandler.AddItem)
				r.Delete("/items/{product_id}", wishlistHandler.RemoveItem)
				r.Post("/items/{product_id}/move-to-cart", wishlistHandler.MoveToCart)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersHandler.ListOrders)
				r.Get("/archive", ordersHandler.ListArchived)
				r.Get("/{order_id}", ordersHandler.GetOrder)
				r.Put("/{order_id}/status", ordersHandler.UpdateStatus)
				r.Put("/{order_id}/tracking", ordersHandler.UpdateTracking)
				r.Post("/{order_id}/cancel", ordersHandler.CancelOrder)
			})

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", profileHandler.Login)
				r.Post("/signup", profileHandler.Signup)
				r.Post("/demo", profileHandler.CreateDemo)
				r.Post("/logout", profileHandler.Logout)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Patch("/", profileHandler.UpdateProfile)
				r.Post("/addresses", profileHandler.AddAddress)
				r.Patch("/addresses/{address_id}", profileHandler.UpdateAddress)
				r.Delete("/addresses/{address_id}", profileHandler.RemoveAddress)
				r.Put("/addresses/{address_id}/default", profileHandler.SetDefaultAddress)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkoutHandler.GetState)
				r.Delete("/", checkoutHandler.Reset)
				r.Post("/advance", checkoutHandler.Advance)
				r.Post("/back", checkoutHandler.Back)
				r.Post("/coupon", checkoutHandler.ApplyCoupon)
				r.Post("/payment", checkoutHandler.SubmitPayment)
			})
		})
	})

	return r
}
