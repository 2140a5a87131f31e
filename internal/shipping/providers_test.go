package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDestination() Address {
	return Address{
		Name:       "Asha Verma",
		Street1:    "14 Clarendon Road",
		City:       "Manchester",
		PostalCode: "M13 9PL",
		Country:    "GB",
	}
}

func TestShippoFetcher_MapsRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shipments/", r.URL.Path)
		assert.Equal(t, "ShippoToken test-key", r.Header.Get("Authorization"))

		var req shippoShipmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Leeds", req.AddressFrom.City)
		assert.Equal(t, "M13 9PL", req.AddressTo.Zip)
		assert.Equal(t, "0.500", req.Parcels[0].Weight)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"rates": []map[string]interface{}{
				{
					"object_id":      "r_abc",
					"provider":       "DPD UK",
					"servicelevel":   map[string]string{"name": "Next Day"},
					"amount":         "4.00",
					"currency":       "GBP",
					"estimated_days": 1,
				},
			},
		})
	}))
	defer srv.Close()

	f := NewShippoFetcher("test-key")
	f.baseURL = srv.URL

	quotes, err := f.FetchRates(context.Background(), WarehouseAddress(), testDestination(), DefaultWeightKg)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, RawQuote{
		Carrier:       "DPD UK",
		Service:       "Next Day",
		Amount:        "4.00",
		Currency:      "GBP",
		EstimatedDays: "1",
		RateID:        "r_abc",
	}, quotes[0])
}

func TestEasyPostFetcher_MapsRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipments", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ep-key", user)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"rates": []map[string]interface{}{
				{"id": "rate_1", "carrier": "RoyalMail", "service": "Tracked48", "rate": "2.90", "currency": "GBP", "delivery_days": 2},
				{"id": "rate_2", "carrier": "UPS", "service": "Ground", "rate": "6.10", "currency": "GBP", "delivery_days": 4},
			},
		})
	}))
	defer srv.Close()

	f := NewEasyPostFetcher("ep-key")
	f.baseURL = srv.URL

	quotes, err := f.FetchRates(context.Background(), WarehouseAddress(), testDestination(), 1.2)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "RoyalMail", quotes[0].Carrier)
	assert.Equal(t, "2.90", quotes[0].Amount)
	assert.Equal(t, "rate_2", quotes[1].RateID)
}

func TestShipEngineFetcher_MapsRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "se-key", r.Header.Get("API-Key"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"rate_response": map[string]interface{}{
				"rates": []map[string]interface{}{
					{
						"rate_id":               "se-rate-1",
						"carrier_friendly_name": "Evri",
						"service_type":          "Standard",
						"shipping_amount":       map[string]interface{}{"currency": "gbp", "amount": 3.2},
						"delivery_days":         3,
					},
				},
			},
		})
	}))
	defer srv.Close()

	f := NewShipEngineFetcher("se-key")
	f.baseURL = srv.URL

	quotes, err := f.FetchRates(context.Background(), WarehouseAddress(), testDestination(), 0.8)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Evri", quotes[0].Carrier)
	assert.Equal(t, "3.20", quotes[0].Amount)
	assert.Equal(t, "3", quotes[0].EstimatedDays)
}

func TestFetchers_MissingCredentials(t *testing.T) {
	fetchers := []RateFetcher{
		NewShippoFetcher(""),
		NewEasyPostFetcher(""),
		NewShipEngineFetcher(""),
	}

	for _, f := range fetchers {
		_, err := f.FetchRates(context.Background(), WarehouseAddress(), testDestination(), DefaultWeightKg)
		require.Error(t, err, f.Name())

		fe, ok := err.(*FetchError)
		require.True(t, ok, f.Name())
		assert.Equal(t, FailureNoCredentials, fe.Kind, f.Name())
	}
}

func TestShippoFetcher_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := NewShippoFetcher("bad-key")
	f.baseURL = srv.URL

	_, err := f.FetchRates(context.Background(), WarehouseAddress(), testDestination(), DefaultWeightKg)
	require.Error(t, err)

	fe, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, FailureProvider, fe.Kind)
	assert.Contains(t, fe.Message, "401")
}

func TestShippoFetcher_TransportError(t *testing.T) {
	f := NewShippoFetcher("key")
	f.baseURL = "http://127.0.0.1:1" // nothing listens here

	_, err := f.FetchRates(context.Background(), WarehouseAddress(), testDestination(), DefaultWeightKg)
	require.Error(t, err)

	fe, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Equal(t, FailureTransport, fe.Kind)
}
