package admin

import (
	"log"
	"net/http"

	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the current store settings.
func GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, services.LoadSettings())
}

// UpdateSettings replaces the store settings wholesale.
func UpdateSettings(c *gin.Context) {
	var req models.StoreSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if req.StoreName == "" || req.SupportEmail == "" || req.Currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_name, support_email and currency are required"})
		return
	}
	if req.FreeShippingThreshold < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "free_shipping_threshold cannot be negative"})
		return
	}

	if err := services.SaveSettings(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Settings save failed"})
		return
	}

	log.Printf("✅ Store settings updated by %s", c.GetString("email"))
	c.JSON(http.StatusOK, req)
}
