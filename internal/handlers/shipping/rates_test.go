package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jungleetoys_back_end/internal/shipping"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	quotes []shipping.RawQuote
	err    error
}

func (s *stubFetcher) Name() string { return "stub" }
func (s *stubFetcher) FetchRates(_ context.Context, _, _ shipping.Address, _ float64) ([]shipping.RawQuote, error) {
	return s.quotes, s.err
}

type ratesResponse struct {
	Rates []shipping.Quote `json:"rates"`
	Debug shipping.Debug   `json:"debug"`
}

func doRatesRequest(t *testing.T, fetcher shipping.RateFetcher, body string) (*httptest.ResponseRecorder, ratesResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/shipping/rates/stub", GetRates(fetcher, shipping.DefaultCarriers()))

	req := httptest.NewRequest(http.MethodPost, "/api/shipping/rates/stub", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp ratesResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

const validBody = `{
	"to_address": {
		"name": "Asha Verma",
		"street1": "14 Clarendon Road",
		"city": "Manchester",
		"postal_code": "M13 9PL",
		"country": "GB"
	},
	"weight": "1.2"
}`

func TestGetRates_HappyPath(t *testing.T) {
	fetcher := &stubFetcher{quotes: []shipping.RawQuote{
		{Carrier: "DPD UK", Service: "Next Day", Amount: "4.00", Currency: "GBP", EstimatedDays: "1", RateID: "r1"},
		{Carrier: "UnknownCarrier", Service: "Cheap", Amount: "2.00", Currency: "GBP"},
	}}

	w, resp := doRatesRequest(t, fetcher, validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, "DPD UK", resp.Rates[0].Provider)
	assert.Equal(t, "6.00", resp.Rates[0].Amount)
	assert.Equal(t, "4.00", resp.Rates[0].OriginalAmount)
	assert.False(t, resp.Debug.UsedFallback)
}

func TestGetRates_UpstreamFailureStillHTTP200(t *testing.T) {
	fetcher := &stubFetcher{err: &shipping.FetchError{
		Kind:     shipping.FailureProvider,
		Provider: "stub",
		Message:  "status 503: unavailable",
	}}

	w, resp := doRatesRequest(t, fetcher, validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, shipping.FallbackQuote(), resp.Rates[0])
	assert.True(t, resp.Debug.UsedFallback)
	assert.Equal(t, "provider_error", resp.Debug.Reason)
}

func TestGetRates_InvalidBody(t *testing.T) {
	w, _ := doRatesRequest(t, &stubFetcher{}, `{"to_address": {"city": "Leeds"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRates_DefaultWeightWhenMissingOrBad(t *testing.T) {
	bodies := []string{
		`{"to_address": {"name":"A","street1":"1 High St","city":"Leeds","postal_code":"LS1 1AA","country":"GB"}}`,
		`{"to_address": {"name":"A","street1":"1 High St","city":"Leeds","postal_code":"LS1 1AA","country":"GB"}, "weight": "heavy"}`,
	}

	for _, body := range bodies {
		w, resp := doRatesRequest(t, &stubFetcher{quotes: []shipping.RawQuote{
			{Carrier: "Evri", Service: "Standard", Amount: "2.00", Currency: "GBP"},
		}}, body)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Rates, 1)
		assert.Equal(t, "3.00", resp.Rates[0].Amount)
	}
}
