package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/api/handler"
	"github.com/kartify/storefront-agent/internal/api/metrics"
	"github.com/kartify/storefront-agent/internal/api/middleware"
	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// Deps carries everything the router needs, built once in main.
type Deps struct {
	Sessions ports.SessionStore
	Cart     ports.CartStore
	Guard    ports.GuardEvaluator
	Auth     ports.AuthClient
	Catalog  ports.CatalogClient
	Checkout ports.CheckoutClient
	Storage  ports.Storage
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Sessions)

	// Keeps the cart size gauge in step with every mutation.
	d.Cart.Subscribe(func(items []domain.CartItem) {
		metrics.CartItemsCount.Set(float64(len(items)))
	})

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(d.Auth, d.Sessions)
	cartHandler := handler.NewCartHandler(d.Cart, d.Sessions)
	guardHandler := handler.NewGuardHandler(d.Guard)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout, d.Cart, d.Sessions, d.Log)
	adminHandler := handler.NewAdminHandler(d.Catalog, d.Checkout, d.Sessions)

	// --- Auth routes ---
	e.POST("/auth/login", sessionHandler.Login)
	e.POST("/auth/logout", sessionHandler.Logout)
	e.GET("/auth/session", sessionHandler.Current)

	// --- Route guard ---
	e.GET("/guard", guardHandler.Evaluate)

	// --- Cart ---
	e.GET("/cart", cartHandler.List)
	e.DELETE("/cart", cartHandler.Clear)
	e.POST("/cart/items", cartHandler.AddItem)
	e.DELETE("/cart/items/:productID", cartHandler.RemoveItem)

	// --- Catalog (public) ---
	e.GET("/products", catalogHandler.Products)
	e.GET("/products/search", catalogHandler.Search)
	e.GET("/products/:slug", catalogHandler.ProductBySlug)
	e.GET("/products/:productID/related/:categoryID", catalogHandler.RelatedProducts)
	e.GET("/categories", catalogHandler.Categories)
	e.GET("/categories/:slug/products", catalogHandler.CategoryProducts)

	// --- Checkout ---
	e.GET("/checkout/token", checkoutHandler.PaymentToken)
	e.POST("/checkout/payment", checkoutHandler.SubmitPayment)
	e.GET("/orders", checkoutHandler.Orders)

	// --- Admin (guarded; each request re-runs the verification round trip) ---
	admin := e.Group("/admin", middleware.RequireLevel(d.Guard, domain.LevelAdmin))
	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:productID", adminHandler.UpdateProduct)
	admin.DELETE("/products/:productID", adminHandler.DeleteProduct)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:categoryID", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:categoryID", adminHandler.DeleteCategory)
	admin.GET("/orders", adminHandler.Orders)
	admin.PUT("/orders/:orderID/status", adminHandler.UpdateOrderStatus)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Storage, d.Catalog)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
