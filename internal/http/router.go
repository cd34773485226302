package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Vendors      *VendorHandler
	Products     *ProductHandler
	Vouchers     *VoucherHandler
	Destinations *DestinationHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Orders       *OrderHandler
	Settings     *SettingsHandler
}

// NewRouter assembles the full API surface with the global middleware
// stack. Storefront routes share one session, keyed by X-Session-ID.
func NewRouter(deps RouterDeps, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", deps.Vendors.List)
			r.Post("/", deps.Vendors.Create)
			r.Get("/{id}", deps.Vendors.Get)
			r.Put("/{id}", deps.Vendors.Update)
			r.Delete("/{id}", deps.Vendors.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Products.List)
			r.Post("/", deps.Products.Create)
			r.Get("/{id}", deps.Products.Get)
			r.Put("/{id}", deps.Products.Update)
			r.Delete("/{id}", deps.Products.Delete)
		})

		r.Route("/vouchers", func(r chi.Router) {
			r.Get("/", deps.Vouchers.List)
			r.Post("/", deps.Vouchers.Create)
		})

		r.Get("/destinations", deps.Destinations.List)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", deps.Settings.List)
			r.Put("/{key}", deps.Settings.Upsert)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", deps.Orders.List)
			r.Post("/", deps.Orders.Create)
			r.Get("/pending", deps.Orders.Pending)
			r.Get("/{id}", deps.Orders.Get)
			r.Patch("/{id}/status", deps.Orders.UpdateStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.Get)
				r.Delete("/", deps.Cart.Clear)
				r.Post("/items", deps.Cart.AddItem)
				r.Post("/voucher", deps.Cart.ApplyVoucher)
				r.Delete("/voucher", deps.Cart.RemoveVoucher)
			})

			r.Post("/checkout", deps.Checkout.Checkout)
		})
	})

	return r
}
