package checkout

import (
	"encoding/json"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	iter := session.Query(
		`SELECT order_id, status, items, amount_total, currency, created_at
		 FROM orders_by_user WHERE user_id = ?`, userID,
	).Iter()

	orders := []gin.H{}
	var (
		orderID     gocql.UUID
		status      string
		itemsJSON   string
		amountTotal float64
		currency    string
		createdAt   time.Time
	)
	for iter.Scan(&orderID, &status, &itemsJSON, &amountTotal, &currency, &createdAt) {
		var items []models.OrderItem
		_ = json.Unmarshal([]byte(itemsJSON), &items)

		orders = append(orders, gin.H{
			"id":           orderID.String(),
			"status":       status,
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

// GetOrderByID returns one order, owner-scoped unless the caller is admin.
func GetOrderByID(c *gin.Context) {
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

	c.JSON(http.StatusOK, order)
}

func loadOrder(orderID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		order     models.Order
		itemsJSON string
	)
	if err := session.Query(
		`SELECT order_id, user_id, email, status, items, items_total, shipping_name,
		 shipping_amount, discount, amount_total, currency, address_id, stripe_id, created_at, updated_at
		 FROM orders WHERE order_id = ?`, orderID,
	).Scan(&order.ID, &order.UserID, &order.Email, &order.Status, &itemsJSON, &order.ItemsTotal,
		&order.ShippingName, &order.ShippingAmount, &order.Discount, &order.AmountTotal,
		&order.Currency, &order.AddressID, &order.StripeID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(itemsJSON), &order.Items)
	return &order, nil
}
