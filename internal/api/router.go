package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/novastream/novastream/internal/api/v1"
	"github.com/novastream/novastream/internal/rest/middleware"
)

type Handlers struct {
	Quote   *v1.QuoteHandler
	Catalog *v1.CatalogHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Quote routes
	quotes := router.Group("/quotes")
	{
		quotes.POST("/tv", handlers.Quote.ComputeTvQuote)
		quotes.POST("/streaming", handlers.Quote.ComputeStreamingQuote)
		quotes.POST("/order", handlers.Quote.ComputeOrderQuote)
	}

	// Catalog routes
	router.GET("/catalog", handlers.Catalog.GetCatalog)
}
