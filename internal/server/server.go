package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/catalog"
	"github.com/matthieukhl/storefront/internal/orders"
	"github.com/matthieukhl/storefront/internal/types"
)

const version = "0.1.0"

// Deps are the stores the API serves.
type Deps struct {
	Storage types.Storage
	Cart    *cart.Store
	Orders  *orders.Service
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

type Server struct {
	router  *gin.Engine
	storage types.Storage
	cart    *cart.Store
	orders  *orders.Service
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewServer creates a new server instance
func NewServer(deps Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(deps.Logger))
	router.Use(cors.New(corsConfig()))

	server := &Server{
		router:  router,
		storage: deps.Storage,
		cart:    deps.Cart,
		orders:  deps.Orders,
		catalog: deps.Catalog,
		logger:  deps.Logger,
	}

	server.setupRoutes()
	return server
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, requestIDHeader)
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cfg
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)

		api.GET("/cart", s.getCart)
		api.POST("/cart", s.addToCart)
		api.DELETE("/cart", s.clearCart)
		api.PUT("/cart/:id", s.updateCartItem)
		api.DELETE("/cart/:id", s.removeCartItem)
		api.POST("/cart/:id/increment", s.incrementCartItem)
		api.POST("/cart/:id/decrement", s.decrementCartItem)

		api.POST("/checkout", s.checkout)

		api.GET("/orders", s.listOrders)
		api.GET("/orders/summary", s.ordersSummary)
		api.GET("/orders/:id", s.getOrder)
		api.PUT("/orders/:id/status", s.setOrderStatus)
		api.POST("/orders/:id/advance", s.advanceOrder)
		api.POST("/orders/:id/cancel", s.cancelOrder)

		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.PUT("/products/:id/price", s.setProductPrice)
		api.PUT("/products/:id/sale", s.setProductSale)
		api.DELETE("/products/:id/sale", s.clearProductSale)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.storage.Ping(c.Request.Context()); err != nil {
		s.logger.Error("storage health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "storage unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "storefront",
		"version": version,
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
