package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teaghor/storefront-backend/api/controllers"
	"github.com/teaghor/storefront-backend/api/middleware"
	cartsvc "github.com/teaghor/storefront-backend/internal/cart"
	catalogsvc "github.com/teaghor/storefront-backend/internal/catalog"
	checkoutsvc "github.com/teaghor/storefront-backend/internal/checkout"
	ordersvc "github.com/teaghor/storefront-backend/internal/orders"
	testimonialsvc "github.com/teaghor/storefront-backend/internal/testimonials"
	"github.com/teaghor/storefront-backend/pkg/config"
	"github.com/teaghor/storefront-backend/pkg/db"
	"github.com/teaghor/storefront-backend/pkg/logger"
	"github.com/teaghor/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogService catalogsvc.Service,
	testimonialsService testimonialsvc.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService ordersvc.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogListProducts(catalogService, logg))
			r.Get("/products/{slug}", controllers.CatalogGetProduct(catalogService, logg))
			r.Get("/collections", controllers.CatalogListCollections(catalogService, logg))
			r.Get("/collections/{slug}", controllers.CatalogGetCollection(catalogService, logg))
		})

		r.Get("/testimonials", controllers.TestimonialsList(testimonialsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Put("/items", controllers.CartSetQuantity(cartService, logg))
				r.Delete("/items/{productID}/{variantID}", controllers.CartRemoveItem(cartService, logg))
				r.Post("/drawer/toggle", controllers.CartToggleDrawer(cartService, logg))
				r.Put("/drawer", controllers.CartSetDrawer(cartService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.CheckoutBegin(checkoutService, logg))
				r.Get("/", controllers.CheckoutState(checkoutService, logg))
				r.Post("/customer-info", controllers.CheckoutCustomerInfo(checkoutService, logg))
				r.Post("/shipping-address", controllers.CheckoutShippingAddress(checkoutService, logg))
				r.Post("/payment", controllers.CheckoutPayment(checkoutService, logg))
				r.Post("/submit", controllers.CheckoutSubmit(checkoutService, logg))
				r.Post("/back", controllers.CheckoutBack(checkoutService, logg))
			})

			r.Get("/orders/{orderNumber}", controllers.OrdersGetByNumber(ordersService, logg))
		})
	})

	return r
}
