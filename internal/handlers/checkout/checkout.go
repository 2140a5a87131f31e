package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/cache"
	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// CreatePaymentIntent turns the current cart into a Stripe PaymentIntent.
// The cart, shipping choice and any accepted offer are snapshotted into the
// intent metadata so the webhook can build the order without trusting Redis
// to still hold the cart.
func CreatePaymentIntent(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	var req struct {
		AddressID string `json:"address_id" binding:"required"`
		Shipping  struct {
			Name   string `json:"name" binding:"required"`
			Amount string `json:"amount" binding:"required"`
		} `json:"shipping" binding:"required"`
		OfferID string `json:"offer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	ctx := context.Background()

	cartItems := loadCart(ctx, userID)
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	if !ownsAddress(userID, req.AddressID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	// Re-check stock and price against the catalog so a stale cart cannot
	// buy more than we have, or at yesterday's price.
	for i, item := range cartItems {
		product, err := cache.GetProduct(item.ProductID)
		if err != nil || !product.IsActive {
			c.JSON(http.StatusConflict, gin.H{"error": "Product no longer available", "product": item.Name})
			return
		}
		if product.Stock < item.Quantity {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Insufficient stock",
				"product":   product.Name,
				"available": product.Stock,
			})
			return
		}
		cartItems[i].Price = product.Price
	}

	subtotal := itemsTotal(cartItems)
	shipping := parseAmount(req.Shipping.Amount)

	shippingName := req.Shipping.Name
	settings := services.LoadSettings()
	if settings.FreeShippingThreshold > 0 &&
		!subtotal.LessThan(decimal.NewFromFloat(settings.FreeShippingThreshold)) {
		shipping = decimal.Zero
		shippingName += " (free shipping)"
	}

	discount := decimal.Zero
	if req.OfferID != "" {
		d, err := offerDiscount(userID, req.OfferID, cartItems)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		discount = d
	}

	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	cartJSON, err := json.Marshal(cartItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart serialization failed"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toPence(total)),
		Currency: stripe.String("gbp"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id":         userID,
			"email":           email,
			"cart":            string(cartJSON),
			"address_id":      req.AddressID,
			"shipping_name":   shippingName,
			"shipping_amount": shipping.StringFixed(2),
			"discount":        discount.StringFixed(2),
			"offer_id":        req.OfferID,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Stripe error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 PaymentIntent created: %s (£%s) for %s", intent.ID, total.StringFixed(2), email)

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
		"amount":       total.StringFixed(2),
		"currency":     "GBP",
	})
}

// ownsAddress checks the address row belongs to this user.
func ownsAddress(userID, addressID string) bool {
	session, err := database.GetUsersSession()
	if err != nil {
		return false
	}

	var owner string
	if err := session.Query(
		`SELECT user_id FROM addresses WHERE address_id = ?`, addressID,
	).Scan(&owner); err != nil {
		return false
	}
	return owner == userID
}

// offerDiscount validates an accepted offer against the cart and returns the
// price cut for one unit of the offered product.
func offerDiscount(userID, offerID string, cartItems []models.CartItem) (decimal.Decimal, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return decimal.Zero, errOfferUnavailable
	}

	var offer models.Offer
	if err := session.Query(
		`SELECT offer_id, product_id, user_id, amount, list_price, status, counter_amount, expires_at
		 FROM offers WHERE offer_id = ?`, offerID,
	).Scan(&offer.ID, &offer.ProductID, &offer.UserID, &offer.Amount, &offer.ListPrice,
		&offer.Status, &offer.CounterAmount, &offer.ExpiresAt); err != nil {
		return decimal.Zero, errOfferUnavailable
	}

	return offerCut(offer, userID, cartItems, time.Now().UTC())
}

func loadCart(ctx context.Context, userID string) []models.CartItem {
	var cartItems []models.CartItem
	if data, _ := database.Redis.Get(ctx, "cart:"+userID).Result(); data != "" {
		_ = json.Unmarshal([]byte(data), &cartItems)
	}
	return cartItems
}
