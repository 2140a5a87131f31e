package shipping

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

const shippoBaseURL = "https://api.goshippo.com"

// ShippoFetcher fetches quotes from the Shippo shipments API.
type ShippoFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewShippoFetcher(apiKey string) *ShippoFetcher {
	return &ShippoFetcher{
		apiKey:  apiKey,
		baseURL: shippoBaseURL,
		client:  newRateHTTPClient(),
	}
}

func (s *ShippoFetcher) Name() string { return "shippo" }

type shippoAddress struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type shippoParcel struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	DistanceUnit string `json:"distance_unit"`
	Weight       string `json:"weight"`
	MassUnit     string `json:"mass_unit"`
}

type shippoShipmentRequest struct {
	AddressFrom shippoAddress  `json:"address_from"`
	AddressTo   shippoAddress  `json:"address_to"`
	Parcels     []shippoParcel `json:"parcels"`
	Async       bool           `json:"async"`
}

type shippoShipmentResponse struct {
	Rates []struct {
		ObjectID     string `json:"object_id"`
		Provider     string `json:"provider"`
		ServiceLevel struct {
			Name string `json:"name"`
		} `json:"servicelevel"`
		Amount        string `json:"amount"`
		Currency      string `json:"currency"`
		EstimatedDays int    `json:"estimated_days"`
	} `json:"rates"`
}

func (s *ShippoFetcher) FetchRates(ctx context.Context, from, to Address, weightKg float64) ([]RawQuote, error) {
	if s.apiKey == "" {
		return nil, &FetchError{Kind: FailureNoCredentials, Provider: s.Name(), Message: "SHIPPO_API_KEY is not set"}
	}

	req := shippoShipmentRequest{
		AddressFrom: toShippoAddress(from),
		AddressTo:   toShippoAddress(to),
		Parcels: []shippoParcel{{
			Length:       "20",
			Width:        "15",
			Height:       "10",
			DistanceUnit: "cm",
			Weight:       fmt.Sprintf("%.3f", weightKg),
			MassUnit:     "kg",
		}},
		Async: false,
	}

	headers := map[string]string{"Authorization": "ShippoToken " + s.apiKey}

	var resp shippoShipmentResponse
	if err := doJSON(ctx, s.client, s.Name(), http.MethodPost, s.baseURL+"/shipments/", headers, req, &resp); err != nil {
		return nil, err
	}

	quotes := make([]RawQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		quotes = append(quotes, RawQuote{
			Carrier:       r.Provider,
			Service:       r.ServiceLevel.Name,
			Amount:        r.Amount,
			Currency:      r.Currency,
			EstimatedDays: strconv.Itoa(r.EstimatedDays),
			RateID:        r.ObjectID,
		})
	}
	return quotes, nil
}

func toShippoAddress(a Address) shippoAddress {
	return shippoAddress{
		Name:    a.Name,
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		Zip:     a.PostalCode,
		Country: a.Country,
		Phone:   a.Phone,
		Email:   a.Email,
	}
}
