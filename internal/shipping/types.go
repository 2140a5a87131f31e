package shipping

import "fmt"

// Address is used both as pipeline input (destination) and for the
// warehouse origin.
type Address struct {
	Name       string `json:"name"`
	Street1    string `json:"street1" binding:"required"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// RawQuote is a provider-specific quote, exactly as mapped from the
// upstream response. Amount stays a decimal string until the markup step.
type RawQuote struct {
	Carrier       string
	Service       string
	Amount        string
	Currency      string
	EstimatedDays string
	RateID        string
}

// Quote is the provider-agnostic shape returned to the checkout UI.
// Amount carries the 50% markup; OriginalAmount is the wholesale price,
// kept for purchasing the label later.
type Quote struct {
	ID             string `json:"id"`
	Provider       string `json:"provider"`
	Service        string `json:"service_name"`
	Amount         string `json:"amount"`
	OriginalAmount string `json:"original_amount"`
	Currency       string `json:"currency"`
	EstimatedDays  string `json:"estimated_days"`
	RateID         string `json:"provider_rate_id,omitempty"`
}

// FailureKind classifies why a rate fetch produced no usable quotes.
type FailureKind string

const (
	FailureNoCredentials FailureKind = "no_credentials"
	FailureProvider      FailureKind = "provider_error"
	FailureTransport     FailureKind = "transport_error"
)

// FetchError is returned by rate fetchers. It never escapes the pipeline:
// every kind degrades to the fallback quote.
type FetchError struct {
	Kind     FailureKind
	Provider string
	Message  string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Kind)
}

// Debug is attached to every rates response so operators can tell the
// failure classes apart while customers always get at least one rate.
type Debug struct {
	Provider        string   `json:"provider"`
	Reason          string   `json:"reason,omitempty"`
	UpstreamError   string   `json:"upstream_error,omitempty"`
	CarriersSeen    []string `json:"carriers_seen,omitempty"`
	CarriersEnabled []string `json:"carriers_enabled,omitempty"`
	UsedFallback    bool     `json:"used_fallback"`
}

// WarehouseAddress is the JungleeToys dispatch origin. All outbound rate
// requests ship from here.
func WarehouseAddress() Address {
	return Address{
		Name:       "JungleeToys Ltd",
		Street1:    "Unit 7, Riverside Trading Estate",
		City:       "Leeds",
		PostalCode: "LS10 1AB",
		Country:    "GB",
		Phone:      "+44 113 496 0321",
		Email:      "dispatch@jungleetoys.co.uk",
	}
}

// DefaultWeightKg is used when the caller omits the parcel weight or sends
// something non-numeric.
const DefaultWeightKg = 0.5
