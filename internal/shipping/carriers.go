package shipping

import (
	"sort"
	"strings"
)

// Carrier is one entry of the static allow-list. Priority only orders the
// admin display, it never influences rate selection.
type Carrier struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Enabled     bool   `json:"enabled"`
	Priority    int    `json:"priority"`
}

// CarrierTable maps a carrier key to its config. Built once at startup and
// read-only afterwards; handlers receive it as a value, never a global.
type CarrierTable map[string]Carrier

// DefaultCarriers is the carrier set JungleeToys actually ships with.
// The admin endpoint exposes it read-only; the "update" endpoint is a no-op.
func DefaultCarriers() CarrierTable {
	return CarrierTable{
		"royal-mail": {Key: "royal-mail", DisplayName: "Royal Mail", Enabled: true, Priority: 1},
		"dpd":        {Key: "dpd", DisplayName: "DPD", Enabled: true, Priority: 2},
		"evri":       {Key: "evri", DisplayName: "Evri", Enabled: true, Priority: 3},
		"dhl":        {Key: "dhl", DisplayName: "DHL Express", Enabled: false, Priority: 4},
		"ups":        {Key: "ups", DisplayName: "UPS", Enabled: false, Priority: 5},
		"fedex":      {Key: "fedex", DisplayName: "FedEx", Enabled: false, Priority: 6},
	}
}

// Match finds the config entry for a quote's carrier name. Matching is
// case-insensitive and tolerant of verbose provider labels: "DPD UK"
// matches the configured "DPD" because the quote's name contains the key or
// display name. The reverse does not hold, so a bare "Mail" never matches
// "Royal Mail". Exact matches win over containment, and candidates are
// scanned in key order so the same name always resolves to the same entry.
func (t CarrierTable) Match(carrierName string) (Carrier, bool) {
	name := strings.ToLower(strings.TrimSpace(carrierName))
	if name == "" {
		return Carrier{}, false
	}

	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c := t[key]
		if name == strings.ToLower(key) || name == strings.ToLower(c.DisplayName) {
			return c, true
		}
	}
	for _, key := range keys {
		c := t[key]
		if strings.Contains(name, strings.ToLower(key)) ||
			strings.Contains(name, strings.ToLower(c.DisplayName)) {
			return c, true
		}
	}
	return Carrier{}, false
}

// EnabledNames returns the display names of enabled carriers, ordered by
// priority. Used for the debug payload and the admin listing.
func (t CarrierTable) EnabledNames() []string {
	var enabled []Carrier
	for _, c := range t {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i].Priority < enabled[j].Priority })

	names := make([]string, 0, len(enabled))
	for _, c := range enabled {
		names = append(names, c.DisplayName)
	}
	return names
}

// Sorted returns every entry ordered by priority, for the admin view.
func (t CarrierTable) Sorted() []Carrier {
	all := make([]Carrier, 0, len(t))
	for _, c := range t {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Priority < all[j].Priority })
	return all
}
