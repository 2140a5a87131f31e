package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/cache"
	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

// GetCart returns the persisted cart, or an empty one.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	data, err := database.Redis.Get(context.Background(), cartKey(userID)).Result()
	if err != nil || data == "" {
		c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
		return
	}

	var cartItems []models.CartItem
	if err := json.Unmarshal([]byte(data), &cartItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart decoding failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cartItems})
}

// AddToCart validates the product and stock, then merges the item in.
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	product, err := cache.GetProduct(input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if product.Stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Insufficient stock",
			"product":   product.Name,
			"available": product.Stock,
		})
		return
	}

	imageURL := ""
	if len(product.ImageKeys) > 0 {
		imageURL = product.ImageKeys[0]
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  input.Quantity,
		ImageURL:  imageURL,
	}

	ctx := context.Background()
	cartItems := loadCart(ctx, userID)

	found := false
	for i := range cartItems {
		if cartItems[i].ProductID == item.ProductID {
			cartItems[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cartItems = append(cartItems, item)
	}

	saveCart(ctx, userID, cartItems)
	c.JSON(http.StatusOK, gin.H{"items": cartItems, "message": "Item added to cart"})
}

// UpdateCartItem sets the quantity of one line (0 removes it).
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	cartItems := loadCart(ctx, userID)

	updated := make([]models.CartItem, 0, len(cartItems))
	found := false
	for _, item := range cartItems {
		if item.ProductID == input.ProductID {
			found = true
			if input.Quantity > 0 {
				item.Quantity = input.Quantity
				updated = append(updated, item)
			}
			continue
		}
		updated = append(updated, item)
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}

	saveCart(ctx, userID, updated)
	c.JSON(http.StatusOK, gin.H{"items": updated})
}

// RemoveFromCart drops a line from the cart.
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	ctx := context.Background()
	cartItems := loadCart(ctx, userID)

	updated := make([]models.CartItem, 0, len(cartItems))
	for _, item := range cartItems {
		if item.ProductID != productID {
			updated = append(updated, item)
		}
	}

	saveCart(ctx, userID, updated)
	c.JSON(http.StatusOK, gin.H{"items": updated})
}

// ClearCart empties the cart entirely.
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx := context.Background()
	database.Redis.Del(ctx, cartKey(userID))
	database.Redis.Publish(ctx, cartKey(userID), "cleared")

	c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "message": "Cart cleared"})
}

func loadCart(ctx context.Context, userID string) []models.CartItem {
	var cartItems []models.CartItem
	if data, _ := database.Redis.Get(ctx, cartKey(userID)).Result(); data != "" {
		_ = json.Unmarshal([]byte(data), &cartItems)
	}
	return cartItems
}

func saveCart(ctx context.Context, userID string, items []models.CartItem) {
	jsonData, _ := json.Marshal(items)
	database.Redis.Set(ctx, cartKey(userID), jsonData, cartTTL)
	// Wake any websocket listeners for this user.
	database.Redis.Publish(ctx, cartKey(userID), "updated")
}
