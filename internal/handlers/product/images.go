package product

import (
	"log"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/cache"
	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// RequestImageUpload hands the admin UI a presigned PUT URL for a new
// product image and records the object key on the product. The bytes go
// browser → MinIO directly.
func RequestImageUpload(c *gin.Context) {
	productID := c.Param("id")

	product, err := cache.GetProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	key := services.NewProductImageKey(productID)
	uploadURL, err := services.PresignedUploadURL(c.Request.Context(), key)
	if err != nil {
		log.Printf("❌ Presigned upload URL failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload URL generation failed"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	keys := append(product.ImageKeys, key)
	productUUID, _ := gocql.ParseUUID(productID)
	if err := session.Query(`
		UPDATE products SET image_keys = ?, updated_at = ? WHERE product_id = ?`,
		keys, time.Now(), productUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product update failed"})
		return
	}
	cache.InvalidateProduct(productID)

	c.JSON(http.StatusOK, gin.H{"upload_url": uploadURL, "object_key": key})
}

// GetImageURLs resolves a product's image keys to presigned GET URLs.
func GetImageURLs(c *gin.Context) {
	product, err := cache.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	urls := make([]string, 0, len(product.ImageKeys))
	for _, key := range product.ImageKeys {
		u, err := services.PresignedImageURL(c.Request.Context(), key)
		if err != nil {
			continue
		}
		urls = append(urls, u)
	}

	c.JSON(http.StatusOK, gin.H{"images": urls})
}
