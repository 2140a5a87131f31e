package checkout

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postWebhook(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.POST("/api/webhook/stripe", StripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/stripe", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStripeWebhook_RefusesUnsignedPayloadInReleaseMode(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := postWebhook(t, `{"type":"payment_intent.succeeded"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestStripeWebhook_DevModeStillAcceptsUnsignedEvents(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	gin.SetMode(gin.TestMode)

	// An event type the handler ignores, so no storage is touched.
	w := postWebhook(t, `{"type":"payment_intent.created"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeWebhook_RejectsBadSignatureWhenConfigured(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	gin.SetMode(gin.TestMode)

	w := postWebhook(t, `{"type":"payment_intent.succeeded"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid signature")
}
