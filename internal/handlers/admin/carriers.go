package admin

import (
	"net/http"

	"jungleetoys_back_end/internal/shipping"

	"github.com/gin-gonic/gin"
)

// GetCarriers exposes the carrier allow-list for the back office.
func GetCarriers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"carriers": shipping.DefaultCarriers().Sorted()})
}

// UpdateCarriers is intentionally read-only for now. The allow-list is code,
// and changing it means a deploy.
func UpdateCarriers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Carrier list is managed in configuration; redeploy to change it",
	})
}
