package offer

import (
	"log"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListPendingOffers returns offers awaiting an admin decision.
func ListPendingOffers(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database unavailable"})
		return
	}

	iter := session.Query(
		`SELECT offer_id, product_id, product_name, user_id, user_email, amount, list_price,
		 message, status, counter_amount, decided_by, expires_at, created_at, updated_at
		 FROM offers WHERE status = ? ALLOW FILTERING`, models.OfferStatusPending,
	).Iter()

	offers := []models.Offer{}
	var o models.Offer
	for iter.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.UserID, &o.UserEmail, &o.Amount,
		&o.ListPrice, &o.Message, &o.Status, &o.CounterAmount, &o.DecidedBy,
		&o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt) {
		updated := lapseIfExpired(session, o)
		if updated.Status == models.OfferStatusPending {
			offers = append(offers, updated)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Offer lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// DecideOffer lets an admin accept, reject or counter a pending offer. The
// customer is emailed the outcome either way.
func DecideOffer(c *gin.Context) {
	offerID := c.Param("offerId")
	adminEmail := c.GetString("email")

	var req struct {
		Decision      string  `json:"decision" binding:"required,oneof=accept reject counter"`
		CounterAmount float64 `json:"counter_amount"`
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

	offer, err := loadOffer(session, offerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}
	if offer.Status != models.OfferStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Offer already decided", "status": offer.Status})
		return
	}

	now := time.Now().UTC()
	switch req.Decision {
	case "accept":
		offer.Status = models.OfferStatusAccepted
		// The 48h redemption window starts at acceptance, not at creation.
		offer.ExpiresAt = now.Add(offerTTL)
	case "reject":
		offer.Status = models.OfferStatusRejected
	case "counter":
		if req.CounterAmount <= 0 || req.CounterAmount >= offer.ListPrice {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Counter amount must be above zero and below list price"})
			return
		}
		offer.Status = models.OfferStatusCountered
		offer.CounterAmount = req.CounterAmount
		offer.ExpiresAt = now.Add(offerTTL)
	}
	offer.DecidedBy = adminEmail
	offer.UpdatedAt = now

	if err := session.Query(
		`UPDATE offers SET status = ?, counter_amount = ?, decided_by = ?, expires_at = ?, updated_at = ?
		 WHERE offer_id = ?`,
		offer.Status, offer.CounterAmount, offer.DecidedBy, offer.ExpiresAt, offer.UpdatedAt, offer.ID,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Offer update failed"})
		return
	}

	log.Printf("⭐ Offer %s %s by %s", offer.ID, offer.Status, adminEmail)

	go func(o models.Offer) {
		html := utils.OfferDecisionHTML(o)
		if err := utils.SendEmail(o.UserEmail, "Update on your JungleeToys offer", html, nil); err != nil {
			log.Println("❌ Offer decision email failed:", err)
		} else {
			log.Println("📧 Offer decision email sent to", o.UserEmail)
		}
	}(*offer)

	c.JSON(http.StatusOK, gin.H{"offer": offer})
}
