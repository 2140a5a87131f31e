package checkout

import (
	"testing"
	"time"

	"jungleetoys_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	items := []models.CartItem{
		{Price: 19.99, Quantity: 2},
		{Price: 4.35, Quantity: 1},
	}
	assert.Equal(t, "44.33", itemsTotal(items).StringFixed(2))
}

func TestItemsTotalEmptyCart(t *testing.T) {
	assert.True(t, itemsTotal(nil).IsZero())
}

func TestToPence(t *testing.T) {
	assert.Equal(t, int64(1999), toPence(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(0), toPence(decimal.Zero))
}

func acceptedOffer(productID gocql.UUID, amount float64, expiresAt time.Time) models.Offer {
	return models.Offer{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		UserID:    "user-1",
		Amount:    amount,
		ListPrice: 30.00,
		Status:    models.OfferStatusAccepted,
		ExpiresAt: expiresAt,
	}
}

func TestOfferCut_AcceptedOfferDiscountsOneUnit(t *testing.T) {
	productID := gocql.TimeUUID()
	now := time.Now().UTC()
	cart := []models.CartItem{{ProductID: productID.String(), Price: 30.00, Quantity: 2}}

	cut, err := offerCut(acceptedOffer(productID, 22.50, now.Add(time.Hour)), "user-1", cart, now)
	assert.NoError(t, err)
	assert.Equal(t, "7.50", cut.StringFixed(2))
}

func TestOfferCut_ExpiredAcceptedOfferIsNotRedeemable(t *testing.T) {
	productID := gocql.TimeUUID()
	now := time.Now().UTC()
	cart := []models.CartItem{{ProductID: productID.String(), Price: 30.00, Quantity: 1}}

	_, err := offerCut(acceptedOffer(productID, 22.50, now.Add(-time.Minute)), "user-1", cart, now)
	assert.ErrorIs(t, err, errOfferExpired)
}

func TestOfferCut_OnlyOwnerAndOnlyAccepted(t *testing.T) {
	productID := gocql.TimeUUID()
	now := time.Now().UTC()
	cart := []models.CartItem{{ProductID: productID.String(), Price: 30.00, Quantity: 1}}

	offer := acceptedOffer(productID, 22.50, now.Add(time.Hour))
	_, err := offerCut(offer, "someone-else", cart, now)
	assert.ErrorIs(t, err, errOfferUnavailable)

	offer.Status = models.OfferStatusPending
	_, err = offerCut(offer, "user-1", cart, now)
	assert.ErrorIs(t, err, errOfferUnavailable)
}

func TestOfferCut_CounterAmountWinsOverOriginal(t *testing.T) {
	productID := gocql.TimeUUID()
	now := time.Now().UTC()
	cart := []models.CartItem{{ProductID: productID.String(), Price: 30.00, Quantity: 1}}

	offer := acceptedOffer(productID, 20.00, now.Add(time.Hour))
	offer.CounterAmount = 26.00

	cut, err := offerCut(offer, "user-1", cart, now)
	assert.NoError(t, err)
	assert.Equal(t, "4.00", cut.StringFixed(2))
}

func TestOfferCut_ProductMustBeInCart(t *testing.T) {
	now := time.Now().UTC()
	cart := []models.CartItem{{ProductID: gocql.TimeUUID().String(), Price: 30.00, Quantity: 1}}

	_, err := offerCut(acceptedOffer(gocql.TimeUUID(), 22.50, now.Add(time.Hour)), "user-1", cart, now)
	assert.ErrorIs(t, err, errOfferNotInCart)
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, "4.35", parseAmount("4.35").StringFixed(2))
	assert.True(t, parseAmount("not-money").IsZero())
	assert.True(t, parseAmount("-5.00").IsZero())
}
