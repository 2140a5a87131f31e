package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ListOrders returns every order, optionally filtered by status.
func ListOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	query := `SELECT order_id, user_id, email, status, items, amount_total, currency, created_at FROM orders`
	args := []interface{}{}
	if status := c.Query("status"); status != "" {
		query += ` WHERE status = ? ALLOW FILTERING`
		args = append(args, status)
	}

	iter := session.Query(query, args...).Iter()

	orders := []gin.H{}
	var (
		orderID     gocql.UUID
		userID      string
		email       string
		orderStatus string
		itemsJSON   string
		amountTotal float64
		currency    string
		createdAt   time.Time
	)
	for iter.Scan(&orderID, &userID, &email, &orderStatus, &itemsJSON, &amountTotal, &currency, &createdAt) {
		var items []models.OrderItem
		_ = json.Unmarshal([]byte(itemsJSON), &items)

		orders = append(orders, gin.H{
			"id":           orderID.String(),
			"user_id":      userID,
			"email":        email,
			"status":       orderStatus,
			"items":        items,
			"amount_total": amountTotal,
			"currency":     currency,
			"created_at":   createdAt,
		})
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus moves an order through its lifecycle.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required,oneof=paid shipped delivered cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	var userID string
	if err := session.Query(
		`SELECT user_id FROM orders WHERE order_id = ?`, orderID,
	).Scan(&userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	now := time.Now().UTC()
	if err := session.Query(
		`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
		req.Status, now, orderID,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update failed"})
		return
	}

	// Keep the per-user view in step with the main table.
	if err := session.Query(
		`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`,
		req.Status, userID, orderID,
	).Exec(); err != nil {
		log.Printf("⚠️ orders_by_user status update failed for %s: %v", orderID, err)
	}

	log.Printf("📦 Order %s moved to %s by %s", orderID, req.Status, c.GetString("email"))
	c.JSON(http.StatusOK, gin.H{"id": orderID, "status": req.Status})
}
