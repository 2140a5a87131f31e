package models

// StoreSettings is the admin-editable key-value configuration, persisted
// in the settings table.
type StoreSettings struct {
	StoreName             string  `json:"store_name"`
	SupportEmail          string  `json:"support_email"`
	Currency              string  `json:"currency"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold"`
	OffersEnabled         bool    `json:"offers_enabled"`
}

// DefaultSettings returns the values used until an admin saves their own.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		StoreName:             "JungleeToys",
		SupportEmail:          "support@jungleetoys.co.uk",
		Currency:              "GBP",
		FreeShippingThreshold: 50,
		OffersEnabled:         true,
	}
}
