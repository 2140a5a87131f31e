package offer

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
	"github.com/shopspring/decimal"
)

const offerTTL = 48 * time.Hour

// minOfferRatio is the floor below which offers are rejected outright.
var minOfferRatio = decimal.RequireFromString("0.4")

// CreateOffer lets a customer propose a price for a product. Lowball offers
// under 40% of the list price are rejected immediately without involving an
// admin.
func CreateOffer(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	productID := c.Param("id")

	var req struct {
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		Message string  `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if !services.LoadSettings().OffersEnabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "Offers are currently disabled"})
		return
	}

	product, err := cache.GetProduct(productID)
	if err != nil || !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	now := time.Now().UTC()
	offer := models.Offer{
		ID:          gocql.TimeUUID(),
		ProductID:   product.ID,
		ProductName: product.Name,
		UserID:      userID,
		UserEmail:   email,
		Amount:      req.Amount,
		ListPrice:   product.Price,
		Message:     req.Message,
		Status:      models.OfferStatusPending,
		ExpiresAt:   now.Add(offerTTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	floor := decimal.NewFromFloat(product.Price).Mul(minOfferRatio)
	if decimal.NewFromFloat(req.Amount).LessThan(floor) {
		offer.Status = models.OfferStatusRejected
		offer.DecidedBy = "system"
	}

	if err := session.Query(
		`INSERT INTO offers (offer_id, product_id, product_name, user_id, user_email, amount,
		 list_price, message, status, counter_amount, decided_by, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		offer.ID, offer.ProductID, offer.ProductName, offer.UserID, offer.UserEmail, offer.Amount,
		offer.ListPrice, offer.Message, offer.Status, offer.CounterAmount, offer.DecidedBy,
		offer.ExpiresAt, offer.CreatedAt, offer.UpdatedAt,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Offer creation failed"})
		return
	}

	if offer.Status == models.OfferStatusRejected {
		log.Printf("⭐ Offer %s auto-rejected (£%.2f on £%.2f list)", offer.ID, offer.Amount, offer.ListPrice)
		c.JSON(http.StatusOK, gin.H{"offer": offer, "message": "Offer too low and was declined"})
		return
	}

	log.Printf("⭐ Offer %s created by %s on %s (£%.2f)", offer.ID, email, product.Name, req.Amount)
	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

// GetMyOffers lists the caller's offers, marking any that have lapsed.
func GetMyOffers(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	iter := session.Query(
		`SELECT offer_id, product_id, product_name, user_id, user_email, amount, list_price,
		 message, status, counter_amount, decided_by, expires_at, created_at, updated_at
		 FROM offers WHERE user_id = ? ALLOW FILTERING`, userID,
	).Iter()

	offers := []models.Offer{}
	var o models.Offer
	for iter.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.UserID, &o.UserEmail, &o.Amount,
		&o.ListPrice, &o.Message, &o.Status, &o.CounterAmount, &o.DecidedBy,
		&o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt) {
		offers = append(offers, lapseIfExpired(session, o))
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Offer lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// RespondToCounter lets the customer accept or decline an admin counter-offer.
func RespondToCounter(c *gin.Context) {
	userID := c.GetString("user_id")
	offerID := c.Param("offerId")

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	offer, err := loadOffer(session, offerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}
	if offer.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}
	if offer.Status != models.OfferStatusCountered {
		c.JSON(http.StatusConflict, gin.H{"error": "Offer has no open counter"})
		return
	}
	if time.Now().UTC().After(offer.ExpiresAt) {
		lapseIfExpired(session, *offer)
		c.JSON(http.StatusConflict, gin.H{"error": "Counter-offer has expired"})
		return
	}

	status := models.OfferStatusRejected
	if req.Accept {
		status = models.OfferStatusAccepted
	}

	if err := session.Query(
		`UPDATE offers SET status = ?, updated_at = ? WHERE offer_id = ?`,
		status, time.Now().UTC(), offer.ID,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Offer update failed"})
		return
	}

	offer.Status = status
	log.Printf("⭐ Counter on offer %s %s by customer", offer.ID, status)
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

func loadOffer(session *gocql.Session, offerID string) (*models.Offer, error) {
	var o models.Offer
	if err := session.Query(
		`SELECT offer_id, product_id, product_name, user_id, user_email, amount, list_price,
		 message, status, counter_amount, decided_by, expires_at, created_at, updated_at
		 FROM offers WHERE offer_id = ?`, offerID,
	).Scan(&o.ID, &o.ProductID, &o.ProductName, &o.UserID, &o.UserEmail, &o.Amount,
		&o.ListPrice, &o.Message, &o.Status, &o.CounterAmount, &o.DecidedBy,
		&o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// lapseIfExpired flips a pending or countered offer to expired once its
// window has passed, persisting the change lazily on read.
func lapseIfExpired(session *gocql.Session, o models.Offer) models.Offer {
	open := o.Status == models.OfferStatusPending || o.Status == models.OfferStatusCountered
	if !open || time.Now().UTC().Before(o.ExpiresAt) {
		return o
	}

	o.Status = models.OfferStatusExpired
	o.UpdatedAt = time.Now().UTC()
	if err := session.Query(
		`UPDATE offers SET status = ?, updated_at = ? WHERE offer_id = ?`,
		o.Status, o.UpdatedAt, o.ID,
	).Exec(); err != nil {
		log.Printf("⚠️ Offer %s expiry update failed: %v", o.ID, err)
	}
	return o
}
