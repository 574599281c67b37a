package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agriconnect/internal/auth"
	orderhandler "agriconnect/internal/order/handler"
	producthandler "agriconnect/internal/product/handler"
	rechandler "agriconnect/internal/recommendation/handler"
	uploadhandler "agriconnect/internal/upload/handler"
	userhandler "agriconnect/internal/user/handler"
)

type Handlers struct {
	Users           *userhandler.UserHandler
	Products        *producthandler.ProductHandler
	Orders          *orderhandler.OrderHandler
	Recommendations *rechandler.RecommendationHandler
	Uploads         *uploadhandler.UploadHandler
}

// NewRouter assembles the gin engine with the full API surface. Product
// listing, product reads, and recommendations are public; everything
// else is bearer-token gated.
func NewRouter(tokens *auth.Manager, h *Handlers, uploadDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.Static("/uploads", uploadDir)

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.POST("/auth/signup", h.Users.SignUp)
	api.POST("/auth/signin", h.Users.SignIn)

	api.GET("/products", h.Products.List)
	api.GET("/products/:id", h.Products.Get)
	api.GET("/recommendations", h.Recommendations.List)

	protected := api.Group("")
	protected.Use(auth.Middleware(tokens))
	{
		protected.GET("/users", h.Users.List)
		protected.GET("/users/:id", h.Users.Get)
		protected.PUT("/users/:id", h.Users.Update)
		protected.DELETE("/users/:id", h.Users.Delete)

		protected.POST("/products", h.Products.Create)
		protected.PUT("/products/:id", h.Products.Update)
		protected.DELETE("/products/:id", h.Products.Delete)

		protected.GET("/orders", h.Orders.List)
		protected.POST("/orders", h.Orders.Checkout)
		protected.PUT("/orders/:id/status", h.Orders.UpdateStatus)

		protected.POST("/upload", h.Uploads.Upload)
	}

	return router
}
