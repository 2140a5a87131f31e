package shipping

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// markupFactor is the fixed 50% storefront markup applied to every
// wholesale carrier rate before it is shown to the customer.
var markupFactor = decimal.NewFromFloat(1.5)

// FallbackQuote is the single flat-rate option returned whenever no real
// quote survives. It is already a final customer-facing price: no markup.
func FallbackQuote() Quote {
	return Quote{
		ID:             "fallback-standard-uk",
		Provider:       "Standard UK",
		Service:        "Standard Delivery",
		Amount:         "3.99",
		OriginalAmount: "3.99",
		Currency:       "GBP",
		EstimatedDays:  "3-5",
	}
}

// BuildQuotes runs the provider-agnostic half of the rate pipeline:
// carrier filter → markup → fallback → stable sort. It is shared by all
// three provider endpoints and never returns an empty list or an error —
// every failure class degrades to the fallback quote with a debug payload
// explaining what happened.
func BuildQuotes(table CarrierTable, provider string, raw []RawQuote, fetchErr error) (quotes []Quote, debug Debug) {
	debug = Debug{Provider: provider}

	// A single bad quote must never take the checkout down with it.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Shipping pipeline panic (%s): %v", provider, r)
			quotes = []Quote{FallbackQuote()}
			debug.Reason = "pipeline_panic"
			debug.UpstreamError = fmt.Sprint(r)
			debug.UsedFallback = true
		}
	}()

	if fetchErr != nil {
		var fe *FetchError
		if errors.As(fetchErr, &fe) {
			debug.Reason = string(fe.Kind)
			debug.UpstreamError = fe.Message
		} else {
			debug.Reason = string(FailureTransport)
			debug.UpstreamError = fetchErr.Error()
		}
		debug.UsedFallback = true
		log.Printf("⚠️ %s rates unavailable (%s): %s — falling back to Standard UK", provider, debug.Reason, debug.UpstreamError)
		return []Quote{FallbackQuote()}, debug
	}

	seen := make([]string, 0, len(raw))
	kept := make([]Quote, 0, len(raw))

	for _, rq := range raw {
		seen = append(seen, rq.Carrier)

		carrier, ok := table.Match(rq.Carrier)
		if !ok || !carrier.Enabled {
			continue // not an error: disabled and unknown carriers drop silently
		}

		q, ok := normalize(rq)
		if !ok {
			log.Printf("⚠️ %s quote dropped, unparsable amount %q (%s %s)", provider, rq.Amount, rq.Carrier, rq.Service)
			continue
		}
		kept = append(kept, q)
	}

	debug.CarriersSeen = seen
	debug.CarriersEnabled = table.EnabledNames()

	if len(kept) == 0 {
		if len(raw) == 0 {
			debug.Reason = "no_upstream_quotes"
		} else {
			debug.Reason = "all_carriers_filtered"
		}
		debug.UsedFallback = true
		log.Printf("⚠️ %s returned %d quote(s) but none survived the carrier filter — falling back to Standard UK", provider, len(raw))
		return []Quote{FallbackQuote()}, debug
	}

	// Ascending by price. Stable: equal amounts keep the provider's order.
	sort.SliceStable(kept, func(i, j int) bool {
		a, errA := decimal.NewFromString(kept[i].Amount)
		b, errB := decimal.NewFromString(kept[j].Amount)
		if errA != nil || errB != nil {
			return false
		}
		return a.LessThan(b)
	})

	return kept, debug
}

// normalize applies the markup and reshapes one raw quote. The second
// return is false when the amount does not parse as a decimal, in which
// case the quote is dropped from the batch.
func normalize(rq RawQuote) (Quote, bool) {
	amount, err := decimal.NewFromString(strings.TrimSpace(rq.Amount))
	if err != nil {
		return Quote{}, false
	}

	// round(amount * 1.5, 2), half-up. A wholesale "0.00" stays "0.00".
	marked := amount.Mul(markupFactor).Round(2)

	id := rq.RateID
	if id == "" {
		id = slug(rq.Carrier + "-" + rq.Service)
	}

	return Quote{
		ID:             id,
		Provider:       rq.Carrier,
		Service:        rq.Service,
		Amount:         marked.StringFixed(2),
		OriginalAmount: amount.StringFixed(2),
		Currency:       strings.ToUpper(rq.Currency),
		EstimatedDays:  rq.EstimatedDays,
		RateID:         rq.RateID,
	}, true
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
