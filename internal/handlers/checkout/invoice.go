package checkout

import (
	"fmt"
	"log"
	"net/http"

	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// DownloadInvoice renders the order invoice as a PDF and streams it back.
func DownloadInvoice(c *gin.Context) {
	orderID := c.Param("id")

	order, err := loadOrder(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != c.GetString("user_id") && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	pdf, err := utils.RenderInvoicePDF(order.ID.String())
	if err != nil {
		log.Println("❌ Invoice PDF generation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invoice generation failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
