package product

import (
	"net/http"

	"jungleetoys_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchProducts is the storefront full-text search endpoint.
// GET /api/products/search?q=dinosaur
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		// An empty index is not an error for the storefront.
		c.JSON(http.StatusOK, gin.H{"products": []interface{}{}, "count": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": results, "count": len(results)})
}
