package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarrierTable_Match(t *testing.T) {
	table := DefaultCarriers()

	cases := []struct {
		name      string
		wantKey   string
		wantFound bool
	}{
		{"DPD", "dpd", true},
		{"dpd", "dpd", true},
		{"DPD UK", "dpd", true},         // verbose provider label contains the key
		{"Royal Mail", "royal-mail", true},
		{"ROYAL MAIL", "royal-mail", true},
		{"Royal Mail 24", "royal-mail", true},
		{"Evri", "evri", true},
		{"UPS", "ups", true}, // present but disabled: Match still finds it
		{"Hermes", "", false},
		{"", "", false},
		// Containment only runs one way: the quote's name may contain a
		// configured name, a fragment of a configured name matches nothing.
		{"Mail", "", false},
		{"Royal", "", false},
		{"vri", "", false},
	}

	for _, tc := range cases {
		c, ok := table.Match(tc.name)
		assert.Equal(t, tc.wantFound, ok, "Match(%q)", tc.name)
		if tc.wantFound {
			assert.Equal(t, tc.wantKey, c.Key, "Match(%q)", tc.name)
		}
	}
}

func TestCarrierTable_MatchIsDeterministic(t *testing.T) {
	table := DefaultCarriers()

	// "DPD and DHL consolidated" contains both "dpd" and "dhl"; the winner
	// must be the same entry on every call, not whatever the map yields.
	first, ok := table.Match("DPD and DHL consolidated")
	assert.True(t, ok)
	for i := 0; i < 200; i++ {
		c, ok := table.Match("DPD and DHL consolidated")
		assert.True(t, ok)
		assert.Equal(t, first.Key, c.Key)
	}
}

func TestCarrierTable_MatchPrefersExactOverContainment(t *testing.T) {
	table := CarrierTable{
		"d":   {Key: "d", DisplayName: "D Couriers", Enabled: false, Priority: 1},
		"dpd": {Key: "dpd", DisplayName: "DPD", Enabled: true, Priority: 2},
	}

	c, ok := table.Match("DPD")
	assert.True(t, ok)
	assert.Equal(t, "dpd", c.Key)
}

func TestDefaultCarriers_EnabledSet(t *testing.T) {
	table := DefaultCarriers()

	assert.Equal(t, []string{"Royal Mail", "DPD", "Evri"}, table.EnabledNames())

	dhl, ok := table.Match("DHL Express")
	assert.True(t, ok)
	assert.False(t, dhl.Enabled)
}

func TestCarrierTable_SortedByPriority(t *testing.T) {
	sorted := DefaultCarriers().Sorted()
	for i := 0; i < len(sorted)-1; i++ {
		assert.Less(t, sorted[i].Priority, sorted[i+1].Priority)
	}
}
