package router

import (
	"context"
	"net/http"

	"crunchy-cruise/internal/handler"
	"crunchy-cruise/internal/media"
	"crunchy-cruise/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Settings *handler.SettingsHandler
	Upload   *handler.UploadHandler
}

// Options configures cross-cutting behaviour.
type Options struct {
	// APIKey guards the admin routes.
	APIKey string

	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string

	// UploadDir, when set, is served under media.PublicPrefix.
	UploadDir string

	// Ready, when set, backs the health check, e.g. a database ping.
	Ready func(ctx context.Context) error
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.APIKeyAuth(opts.APIKey, logger)
	adminFunc := func(fn http.HandlerFunc) http.Handler { return admin(fn) }

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				logger.Warn().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue
	listAll := adminFunc(h.Product.ListAll)
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("all") == "true" {
			listAll.ServeHTTP(w, r)
			return
		}
		h.Product.List(w, r)
	})
	mux.HandleFunc("GET /api/products/{name}", h.Product.GetByName)
	mux.Handle("POST /api/products", adminFunc(h.Product.Create))
	mux.Handle("PUT /api/products/{id}", adminFunc(h.Product.Update))
	mux.Handle("DELETE /api/products/{id}", adminFunc(h.Product.Delete))
	mux.Handle("POST /api/upload", adminFunc(h.Upload.Upload))

	// Cart
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("DELETE /api/cart", h.Cart.Clear)
	mux.HandleFunc("POST /api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{name}", h.Cart.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{name}", h.Cart.RemoveItem)

	// Delivery selection
	mux.HandleFunc("POST /api/cart/delivery", h.Cart.Delivery)
	mux.HandleFunc("POST /api/cart/delivery/pickup", h.Cart.Pickup)
	mux.HandleFunc("POST /api/cart/delivery/address", h.Cart.ResolveAddress)
	mux.HandleFunc("PUT /api/cart/delivery/address", h.Cart.EditAddress)
	mux.HandleFunc("POST /api/cart/delivery/locate", h.Cart.Locate)
	mux.HandleFunc("POST /api/cart/delivery/confirm", h.Cart.Confirm)
	mux.HandleFunc("POST /api/calculate-distance", h.Checkout.CalculateDistance)

	// Checkout
	mux.HandleFunc("POST /api/checkout", h.Checkout.Checkout)
	mux.HandleFunc("POST /api/checkout/paid", h.Checkout.CheckoutPaid)
	mux.HandleFunc("POST /api/verify-payment", h.Checkout.VerifyPayment)

	// Orders
	mux.HandleFunc("GET /api/orders/track", h.Order.Track)
	mux.Handle("GET /api/orders", adminFunc(h.Order.List))
	mux.Handle("GET /api/orders/{id}", adminFunc(h.Order.GetByID))
	mux.Handle("PUT /api/orders/{id}/status", adminFunc(h.Order.UpdateStatus))
	mux.Handle("DELETE /api/orders/{id}", adminFunc(h.Order.Delete))

	// Settings
	mux.HandleFunc("GET /api/settings/ordering", h.Settings.GetOrdering)
	mux.Handle("POST /api/settings/ordering", adminFunc(h.Settings.SetOrdering))

	if opts.UploadDir != "" {
		mux.Handle("GET "+media.PublicPrefix, http.StripPrefix(media.PublicPrefix, http.FileServer(http.Dir(opts.UploadDir))))
	}

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
