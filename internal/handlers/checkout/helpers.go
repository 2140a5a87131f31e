package checkout

import (
	"errors"
	"time"

	"jungleetoys_back_end/internal/models"

	"github.com/shopspring/decimal"
)

var (
	errOfferUnavailable = errors.New("Offer is not usable for this order")
	errOfferExpired     = errors.New("Offer has expired")
	errOfferNotInCart   = errors.New("Offered product is not in the cart")
)

// offerCut returns the per-unit discount an accepted offer grants on the
// cart. Only the offer's owner can redeem it, only while accepted, and only
// inside its expiry window.
func offerCut(offer models.Offer, userID string, cartItems []models.CartItem, now time.Time) (decimal.Decimal, error) {
	if offer.UserID != userID || offer.Status != models.OfferStatusAccepted {
		return decimal.Zero, errOfferUnavailable
	}
	if now.After(offer.ExpiresAt) {
		return decimal.Zero, errOfferExpired
	}

	agreed := offer.Amount
	if offer.CounterAmount > 0 {
		agreed = offer.CounterAmount
	}

	for _, item := range cartItems {
		if item.ProductID == offer.ProductID.String() {
			cut := decimal.NewFromFloat(item.Price).Sub(decimal.NewFromFloat(agreed))
			if cut.IsNegative() {
				return decimal.Zero, nil
			}
			return cut.Round(2), nil
		}
	}
	return decimal.Zero, errOfferNotInCart
}

// itemsTotal sums a cart with decimal arithmetic so checkout totals never
// drift from the pennies Stripe is charged.
func itemsTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// toPence converts a GBP decimal to the integer minor units Stripe wants.
func toPence(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// parseAmount parses a client-provided money string ("4.35"), returning
// zero on garbage rather than failing checkout.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
