package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meditech-backend/internal/config"
	"meditech-backend/internal/metrics"
	"meditech-backend/internal/services"
)

// Services bundles everything the router mounts.
type Services struct {
	Enquiries *services.EnquiryService
	Products  *services.ProductService
	Auth      *services.AuthService
	Health    *services.HealthService
}

// NewRouter builds the gin engine with middleware and the full route table.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	contactHandler := NewContactHandler(svc.Enquiries)
	productHandler := NewProductHandler(svc.Products)
	authHandler := NewAuthHandler(svc.Auth)

	r.GET("/health", func(c *gin.Context) {
		status := svc.Health.Check(c.Request.Context())
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/login", authHandler.Login)

	// Public enquiry submission
	contact := r.Group("/api/contact")
	{
		contact.POST("/create", contactHandler.Create)
		contact.POST("/product-enquiry", contactHandler.CreateProductEnquiry)
		contact.POST("/accessory-enquiry", contactHandler.CreateAccessoryEnquiry)
	}

	// Operator-only enquiry views
	contactAdmin := r.Group("/api/contact", RequireAdmin())
	{
		contactAdmin.GET("/all", contactHandler.List(services.FilterAll))
		contactAdmin.GET("/products", contactHandler.List(services.FilterProductOnly))
		contactAdmin.GET("/accessories", contactHandler.List(services.FilterAccessoryOnly))
		contactAdmin.POST("/respond", contactHandler.Respond)
	}

	// Public catalog views
	demo := r.Group("/api/demo")
	{
		demo.GET("/products-with-models", productHandler.ListLive)
		demo.GET("/limetedtimedeal/sell", productHandler.ListOnSale)
		demo.GET("/products/model/:modelId", productHandler.GetModel)
		demo.GET("/products/scheme/:scheme", productHandler.ListByScheme)
		demo.GET("/valuable", productHandler.ListValuable)
	}

	// Operator-only catalog management. Mutations live under the singular
	// /product/:productId prefix; the router cannot mix a :productId
	// wildcard with the static /products view segments.
	demoAdmin := r.Group("/api/demo", RequireAdmin())
	{
		demoAdmin.GET("/products/models/padding", productHandler.ListPending)
		demoAdmin.POST("/products", productHandler.Create)
		demoAdmin.POST("/product/:productId/models", productHandler.AddModel)
		demoAdmin.PUT("/product/:productId/models/:modelId/details", productHandler.SetModelDetails)
		demoAdmin.PATCH("/product/:productId/models/:modelId/status", productHandler.UpdateModelStatus)
		demoAdmin.POST("/product/:productId/models/:modelId/colors", productHandler.AddColor)
	}

	return r
}
