package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/server/handlers"
	"github.com/mamadbah2/aquashop/internal/server/middleware"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Products  *handlers.ProductHandler
	Clients   *handlers.ClientHandler
	Sales     *handlers.SaleHandler
	Dashboard *handlers.DashboardHandler
	Reports   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. Everything
// under /api except login requires a bearer token.
func New(h Handlers, validator middleware.TokenValidator, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handlers.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.RequireToken(validator, logger))

	products := protected.Group("/products")
	products.GET("", h.Products.List)
	products.POST("", h.Products.Create)
	products.GET("/:id", h.Products.Get)
	products.PATCH("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)

	clients := protected.Group("/clients")
	clients.GET("", h.Clients.List)
	clients.POST("", h.Clients.Create)
	clients.GET("/:id", h.Clients.Get)
	clients.DELETE("/:id", h.Clients.Delete)
	clients.GET("/:id/sales", h.Clients.Sales)

	sales := protected.Group("/sales")
	sales.GET("", h.Sales.List)
	sales.POST("", h.Sales.Create)
	sales.DELETE("/:id", h.Sales.Delete)

	protected.GET("/dashboard", h.Dashboard.Dashboard)
	protected.GET("/dashboard/insights", h.Dashboard.Insights)

	reports := protected.Group("/reports/billing")
	reports.GET("", h.Reports.Billing)
	reports.GET("/:month/csv", h.Reports.BillingCSV)
	reports.POST("/export", h.Reports.Export)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
