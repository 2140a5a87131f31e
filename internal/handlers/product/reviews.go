package product

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateReview adds a review on a purchased product.
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required,min=10,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	productUUID, err := gocql.ParseUUID(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var existing gocql.UUID
	if err := productsSession.Query("SELECT product_id FROM products WHERE product_id = ?", productUUID).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if !hasPurchased(userID, productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only customers who bought this product can review it"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	userUUID, _ := gocql.ParseUUID(userID)
	var userName string
	if err := usersSession.Query("SELECT name FROM users WHERE user_id = ?", userUUID).Scan(&userName); err != nil || userName == "" {
		userName = "JungleeToys customer"
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: productUUID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := productsSession.Query(`
		INSERT INTO reviews_by_product (product_id, review_id, user_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ProductID, review.ID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Review creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review creation failed"})
		return
	}

	log.Printf("⭐ Review created: %s on product %s (%d/5)", review.ID, productID, req.Rating)
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// GetProductReviews lists a product's reviews with the aggregate rating.
func GetProductReviews(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`
		SELECT review_id, user_id, user_name, rating, comment, created_at
		FROM reviews_by_product WHERE product_id = ?`, productUUID).Iter()

	reviews := []models.Review{}
	var r models.Review
	for iter.Scan(&r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		r.ProductID = productUUID
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review lookup failed"})
		return
	}

	rating := models.ProductRating{ProductID: productUUID, TotalReviews: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		rating.AverageRating = float64(sum) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "rating": rating})
}

// DeleteReview removes a review (admin moderation).
func DeleteReview(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	reviewUUID, err := gocql.ParseUUID(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query(`
		DELETE FROM reviews_by_product WHERE product_id = ? AND review_id = ?`,
		productUUID, reviewUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review deletion failed"})
		return
	}

	log.Printf("🗑️ Review deleted: %s", reviewUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// hasPurchased checks the user's order history for the product.
func hasPurchased(userID, productID string) bool {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return false
	}

	iter := ordersSession.Query("SELECT items FROM orders_by_user WHERE user_id = ?", userID).Iter()
	defer iter.Close()

	var itemsJSON string
	for iter.Scan(&itemsJSON) {
		var items []models.OrderItem
		if json.Unmarshal([]byte(itemsJSON), &items) != nil {
			// Fall back to a substring check on malformed rows.
			if strings.Contains(itemsJSON, productID) {
				return true
			}
			continue
		}
		for _, item := range items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}
