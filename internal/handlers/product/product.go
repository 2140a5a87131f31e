package product

import (
	"log"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/cache"
	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateProduct adds a product to the catalog (admin only) and mirrors it
// into the search index.
func CreateProduct(c *gin.Context) {
	var req struct {
		Name              string   `json:"name" binding:"required,min=2"`
		Description       string   `json:"description"`
		Brand             string   `json:"brand"`
		AgeRange          string   `json:"age_range"`
		Category          string   `json:"category"`
		Price             float64  `json:"price" binding:"required,gt=0"`
		Stock             int      `json:"stock" binding:"min=0"`
		LowStockThreshold int      `json:"low_stock_threshold"`
		SKU               string   `json:"sku"`
		WeightKg          float64  `json:"weight_kg"`
		Tags              []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:                gocql.TimeUUID(),
		Name:              req.Name,
		Description:       req.Description,
		Brand:             req.Brand,
		AgeRange:          req.AgeRange,
		Category:          req.Category,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		WeightKg:          req.WeightKg,
		ImageKeys:         []string{},
		Tags:              req.Tags,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := session.Query(`
		INSERT INTO products (product_id, name, description, brand, age_range, category, price, stock, low_stock_threshold, sku, weight_kg, image_keys, tags, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Brand, product.AgeRange,
		product.Category, product.Price, product.Stock, product.LowStockThreshold,
		product.SKU, product.WeightKg, product.ImageKeys, product.Tags,
		product.IsActive, product.CreatedAt, product.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Product creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product creation failed"})
		return
	}

	services.IndexProduct(product)

	log.Printf("📦 Product created: %s (%s)", product.Name, product.ID)
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListProducts returns the active catalog, optionally filtered by category.
func ListProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	category := c.Query("category")

	iter := session.Query(`
		SELECT product_id, name, description, brand, age_range, category, price, stock, low_stock_threshold, sku, weight_kg, image_keys, tags, is_active, created_at, updated_at
		FROM products`).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.AgeRange, &p.Category,
		&p.Price, &p.Stock, &p.LowStockThreshold, &p.SKU, &p.WeightKg,
		&p.ImageKeys, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if !p.IsActive {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Product listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct returns one product (through the Redis cache).
func GetProduct(c *gin.Context) {
	product, err := cache.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct patches catalog fields (admin only).
func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := cache.GetProduct(productID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedAt = time.Now()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query(`
		UPDATE products SET name = ?, description = ?, price = ?, stock = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		product.Name, product.Description, product.Price, product.Stock,
		product.IsActive, product.UpdatedAt, product.ID).Exec(); err != nil {
		log.Printf("❌ Product update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product update failed"})
		return
	}

	cache.InvalidateProduct(productID.String())
	services.IndexProduct(*product)

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct deactivates a product and removes it from search. Soft
// delete: order history still references the row.
func DeleteProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query(`
		UPDATE products SET is_active = ?, updated_at = ? WHERE product_id = ?`,
		false, time.Now(), productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product deletion failed"})
		return
	}

	cache.InvalidateProduct(productID.String())
	services.RemoveProductFromIndex(productID.String())

	log.Printf("🗑️ Product deactivated: %s", productID)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
