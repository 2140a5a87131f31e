package shipping

import (
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
)

const easypostBaseURL = "https://api.easypost.com/v2"

// EasyPostFetcher fetches quotes from the EasyPost shipments API.
type EasyPostFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewEasyPostFetcher(apiKey string) *EasyPostFetcher {
	return &EasyPostFetcher{
		apiKey:  apiKey,
		baseURL: easypostBaseURL,
		client:  newRateHTTPClient(),
	}
}

func (e *EasyPostFetcher) Name() string { return "easypost" }

type easypostAddress struct {
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

type easypostParcel struct {
	// EasyPost wants ounces.
	WeightOz float64 `json:"weight"`
}

type easypostShipmentRequest struct {
	Shipment struct {
		FromAddress easypostAddress `json:"from_address"`
		ToAddress   easypostAddress `json:"to_address"`
		Parcel      easypostParcel  `json:"parcel"`
	} `json:"shipment"`
}

type easypostShipmentResponse struct {
	Rates []struct {
		ID           string `json:"id"`
		Carrier      string `json:"carrier"`
		Service      string `json:"service"`
		Rate         string `json:"rate"`
		Currency     string `json:"currency"`
		DeliveryDays int    `json:"delivery_days"`
	} `json:"rates"`
}

func (e *EasyPostFetcher) FetchRates(ctx context.Context, from, to Address, weightKg float64) ([]RawQuote, error) {
	if e.apiKey == "" {
		return nil, &FetchError{Kind: FailureNoCredentials, Provider: e.Name(), Message: "EASYPOST_API_KEY is not set"}
	}

	var req easypostShipmentRequest
	req.Shipment.FromAddress = toEasypostAddress(from)
	req.Shipment.ToAddress = toEasypostAddress(to)
	req.Shipment.Parcel = easypostParcel{WeightOz: weightKg * 35.274}

	headers := map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(e.apiKey+":")),
	}

	var resp easypostShipmentResponse
	if err := doJSON(ctx, e.client, e.Name(), http.MethodPost, e.baseURL+"/shipments", headers, req, &resp); err != nil {
		return nil, err
	}

	quotes := make([]RawQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		quotes = append(quotes, RawQuote{
			Carrier:       r.Carrier,
			Service:       r.Service,
			Amount:        r.Rate,
			Currency:      r.Currency,
			EstimatedDays: strconv.Itoa(r.DeliveryDays),
			RateID:        r.ID,
		})
	}
	return quotes, nil
}

func toEasypostAddress(a Address) easypostAddress {
	return easypostAddress{
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
