package shipping

import (
	"context"
	"fmt"
	"net/http"
)

const shipengineBaseURL = "https://api.shipengine.com/v1"

// ShipEngineFetcher fetches quotes from the ShipEngine rates API.
type ShipEngineFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewShipEngineFetcher(apiKey string) *ShipEngineFetcher {
	return &ShipEngineFetcher{
		apiKey:  apiKey,
		baseURL: shipengineBaseURL,
		client:  newRateHTTPClient(),
	}
}

func (s *ShipEngineFetcher) Name() string { return "shipengine" }

type shipengineAddress struct {
	Name          string `json:"name"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2,omitempty"`
	CityLocality  string `json:"city_locality"`
	StateProvince string `json:"state_province,omitempty"`
	PostalCode    string `json:"postal_code"`
	CountryCode   string `json:"country_code"`
	Phone         string `json:"phone,omitempty"`
}

type shipengineRatesRequest struct {
	RateOptions struct {
		CarrierIDs []string `json:"carrier_ids,omitempty"`
	} `json:"rate_options"`
	Shipment struct {
		ShipTo   shipengineAddress `json:"ship_to"`
		ShipFrom shipengineAddress `json:"ship_from"`
		Packages []struct {
			Weight struct {
				Value float64 `json:"value"`
				Unit  string  `json:"unit"`
			} `json:"weight"`
		} `json:"packages"`
	} `json:"shipment"`
}

type shipengineRatesResponse struct {
	RateResponse struct {
		Rates []struct {
			RateID              string `json:"rate_id"`
			CarrierFriendlyName string `json:"carrier_friendly_name"`
			ServiceType         string `json:"service_type"`
			ShippingAmount      struct {
				Currency string  `json:"currency"`
				Amount   float64 `json:"amount"`
			} `json:"shipping_amount"`
			DeliveryDays int `json:"delivery_days"`
		} `json:"rates"`
	} `json:"rate_response"`
}

func (s *ShipEngineFetcher) FetchRates(ctx context.Context, from, to Address, weightKg float64) ([]RawQuote, error) {
	if s.apiKey == "" {
		return nil, &FetchError{Kind: FailureNoCredentials, Provider: s.Name(), Message: "SHIPENGINE_API_KEY is not set"}
	}

	var req shipengineRatesRequest
	req.Shipment.ShipTo = toShipengineAddress(to)
	req.Shipment.ShipFrom = toShipengineAddress(from)
	req.Shipment.Packages = make([]struct {
		Weight struct {
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		} `json:"weight"`
	}, 1)
	req.Shipment.Packages[0].Weight.Value = weightKg
	req.Shipment.Packages[0].Weight.Unit = "kilogram"

	headers := map[string]string{"API-Key": s.apiKey}

	var resp shipengineRatesResponse
	if err := doJSON(ctx, s.client, s.Name(), http.MethodPost, s.baseURL+"/rates", headers, req, &resp); err != nil {
		return nil, err
	}

	rates := resp.RateResponse.Rates
	quotes := make([]RawQuote, 0, len(rates))
	for _, r := range rates {
		quotes = append(quotes, RawQuote{
			Carrier:       r.CarrierFriendlyName,
			Service:       r.ServiceType,
			Amount:        fmt.Sprintf("%.2f", r.ShippingAmount.Amount),
			Currency:      r.ShippingAmount.Currency,
			EstimatedDays: fmt.Sprintf("%d", r.DeliveryDays),
			RateID:        r.RateID,
		})
	}
	return quotes, nil
}

func toShipengineAddress(a Address) shipengineAddress {
	return shipengineAddress{
		Name:          a.Name,
		AddressLine1:  a.Street1,
		AddressLine2:  a.Street2,
		CityLocality:  a.City,
		StateProvince: a.State,
		PostalCode:    a.PostalCode,
		CountryCode:   a.Country,
		Phone:         a.Phone,
	}
}
