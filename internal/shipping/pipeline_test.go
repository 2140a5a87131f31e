package shipping

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCarriers() CarrierTable {
	return CarrierTable{
		"dpd":        {Key: "dpd", DisplayName: "DPD", Enabled: true, Priority: 1},
		"royal-mail": {Key: "royal-mail", DisplayName: "Royal Mail", Enabled: true, Priority: 2},
		"ups":        {Key: "ups", DisplayName: "UPS", Enabled: false, Priority: 3},
	}
}

func TestBuildQuotes_MarkupIsHalfUpTimesOneAndAHalf(t *testing.T) {
	cases := map[string]string{
		"10.00": "15.00",
		"4.00":  "6.00",
		"3.33":  "5.00", // 4.995 rounds half-up
		"0.01":  "0.02", // 0.015 rounds half-up
		"0.00":  "0.00", // zero survives as zero, never dropped
	}

	for in, want := range cases {
		quotes, debug := BuildQuotes(testCarriers(), "shippo", []RawQuote{
			{Carrier: "DPD", Service: "Next Day", Amount: in, Currency: "gbp", EstimatedDays: "1"},
		}, nil)

		require.Len(t, quotes, 1, "amount %s", in)
		assert.Equal(t, want, quotes[0].Amount, "amount %s", in)
		assert.Equal(t, "GBP", quotes[0].Currency, "currency must be uppercased")
		assert.False(t, debug.UsedFallback)
	}
}

func TestBuildQuotes_OriginalAmountPreserved(t *testing.T) {
	quotes, _ := BuildQuotes(testCarriers(), "shippo", []RawQuote{
		{Carrier: "DPD UK", Service: "Express", Amount: "4.00", Currency: "GBP", EstimatedDays: "1", RateID: "rate_123"},
	}, nil)

	require.Len(t, quotes, 1)
	assert.Equal(t, "DPD UK", quotes[0].Provider)
	assert.Equal(t, "6.00", quotes[0].Amount)
	assert.Equal(t, "4.00", quotes[0].OriginalAmount)
	assert.Equal(t, "rate_123", quotes[0].RateID)
}

func TestBuildQuotes_DisabledAndUnknownCarriersNeverAppear(t *testing.T) {
	quotes, _ := BuildQuotes(testCarriers(), "shippo", []RawQuote{
		{Carrier: "DPD UK", Service: "Next Day", Amount: "4.00", Currency: "GBP"},
		{Carrier: "UnknownCarrier", Service: "Cheap", Amount: "2.00", Currency: "GBP"},
		{Carrier: "UPS", Service: "Ground", Amount: "1.00", Currency: "GBP"},
	}, nil)

	require.Len(t, quotes, 1)
	assert.Equal(t, "DPD UK", quotes[0].Provider)
	assert.Equal(t, "6.00", quotes[0].Amount)
}

func TestBuildQuotes_UnparsableAmountDroppedWithoutAbortingBatch(t *testing.T) {
	quotes, _ := BuildQuotes(testCarriers(), "shippo", []RawQuote{
		{Carrier: "DPD", Service: "Bad", Amount: "not-a-price", Currency: "GBP"},
		{Carrier: "Royal Mail", Service: "Tracked 48", Amount: "2.90", Currency: "GBP"},
	}, nil)

	require.Len(t, quotes, 1)
	assert.Equal(t, "Royal Mail", quotes[0].Provider)
	assert.Equal(t, "4.35", quotes[0].Amount)
}

func TestBuildQuotes_SortedAscendingAndStable(t *testing.T) {
	quotes, _ := BuildQuotes(testCarriers(), "easypost", []RawQuote{
		{Carrier: "DPD", Service: "Express", Amount: "7.50", Currency: "GBP"},
		{Carrier: "Royal Mail", Service: "Tracked 24", Amount: "3.00", Currency: "GBP"},
		{Carrier: "DPD", Service: "Classic", Amount: "3.00", Currency: "GBP"},
		{Carrier: "Royal Mail", Service: "Special", Amount: "1.20", Currency: "GBP"},
	}, nil)

	require.Len(t, quotes, 4)
	for i := 0; i < len(quotes)-1; i++ {
		a, err := decimal.NewFromString(quotes[i].Amount)
		require.NoError(t, err)
		b, err := decimal.NewFromString(quotes[i+1].Amount)
		require.NoError(t, err)
		assert.True(t, a.LessThanOrEqual(b), "quotes[%d]=%s > quotes[%d]=%s", i, quotes[i].Amount, i+1, quotes[i+1].Amount)
	}

	// Ties keep source order: Royal Mail Tracked 24 came before DPD Classic.
	assert.Equal(t, "Tracked 24", quotes[1].Service)
	assert.Equal(t, "Classic", quotes[2].Service)
}

func TestBuildQuotes_FallbackWhenEverythingFiltered(t *testing.T) {
	quotes, debug := BuildQuotes(testCarriers(), "shipengine", []RawQuote{
		{Carrier: "UnknownCarrier", Service: "Cheap", Amount: "2.00", Currency: "GBP"},
	}, nil)

	require.Len(t, quotes, 1)
	assert.Equal(t, FallbackQuote(), quotes[0])
	assert.Equal(t, "Standard UK", quotes[0].Provider)
	assert.Equal(t, "Standard Delivery", quotes[0].Service)
	assert.Equal(t, "3.99", quotes[0].Amount)
	assert.Equal(t, "GBP", quotes[0].Currency)
	assert.Equal(t, "3-5", quotes[0].EstimatedDays)

	assert.True(t, debug.UsedFallback)
	assert.Equal(t, "all_carriers_filtered", debug.Reason)
	assert.Equal(t, []string{"UnknownCarrier"}, debug.CarriersSeen)
	assert.Equal(t, []string{"DPD", "Royal Mail"}, debug.CarriersEnabled)
}

func TestBuildQuotes_CarrierNameFragmentsAreFiltered(t *testing.T) {
	// "Mail" is a fragment of "Royal Mail", not a carrier we ship with.
	quotes, debug := BuildQuotes(testCarriers(), "shippo", []RawQuote{
		{Carrier: "Mail", Service: "Cheap", Amount: "1.00", Currency: "GBP"},
	}, nil)

	require.Len(t, quotes, 1)
	assert.Equal(t, FallbackQuote(), quotes[0])
	assert.True(t, debug.UsedFallback)
	assert.Equal(t, "all_carriers_filtered", debug.Reason)
}

func TestBuildQuotes_AmbiguousCarrierNameResolvesIdentically(t *testing.T) {
	raw := []RawQuote{
		{Carrier: "DPD Royal Mail partner drop", Service: "Economy", Amount: "2.00", Currency: "GBP"},
	}

	first, _ := BuildQuotes(testCarriers(), "shippo", raw, nil)
	a, err := json.Marshal(first)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		again, _ := BuildQuotes(testCarriers(), "shippo", raw, nil)
		b, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "run %d", i)
	}
}

func TestBuildQuotes_FallbackOnFetchError(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{&FetchError{Kind: FailureNoCredentials, Provider: "shippo", Message: "SHIPPO_API_KEY is not set"}, "no_credentials"},
		{&FetchError{Kind: FailureProvider, Provider: "shippo", Message: "status 500: boom"}, "provider_error"},
		{&FetchError{Kind: FailureTransport, Provider: "shippo", Message: "dial tcp: refused"}, "transport_error"},
		{errors.New("plain failure"), "transport_error"},
	}

	for _, tc := range cases {
		quotes, debug := BuildQuotes(testCarriers(), "shippo", nil, tc.err)
		require.Len(t, quotes, 1, tc.kind)
		assert.Equal(t, FallbackQuote(), quotes[0], tc.kind)
		assert.True(t, debug.UsedFallback, tc.kind)
		assert.Equal(t, tc.kind, debug.Reason)
		assert.NotEmpty(t, debug.UpstreamError, tc.kind)
	}
}

func TestBuildQuotes_NeverEmpty(t *testing.T) {
	inputs := [][]RawQuote{
		nil,
		{},
		{{Carrier: "Nobody", Amount: "bad"}},
		{{Carrier: "DPD", Service: "Next Day", Amount: "4.00", Currency: "GBP"}},
	}

	for i, raw := range inputs {
		quotes, _ := BuildQuotes(testCarriers(), "shippo", raw, nil)
		assert.GreaterOrEqual(t, len(quotes), 1, "input %d", i)
	}
}

func TestBuildQuotes_Idempotent(t *testing.T) {
	raw := []RawQuote{
		{Carrier: "DPD UK", Service: "Next Day", Amount: "4.00", Currency: "GBP", EstimatedDays: "1", RateID: "r1"},
		{Carrier: "Royal Mail", Service: "Tracked 48", Amount: "2.90", Currency: "gbp", EstimatedDays: "2", RateID: "r2"},
	}

	first, firstDebug := BuildQuotes(testCarriers(), "shippo", raw, nil)
	second, secondDebug := BuildQuotes(testCarriers(), "shippo", raw, nil)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, firstDebug, secondDebug)
}
