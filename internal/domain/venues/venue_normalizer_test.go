package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahangamapass/venues-api/internal/types"
)

func TestMapVenueFromAPI_Totality(t *testing.T) {
	inputs := []any{
		nil,
		map[string]any{},
		"a string",
		42,
		[]any{"not", "a", "row"},
		map[string]any{
			"id":            map[string]any{"nested": "garbage"},
			"name":          []any{1, 2, 3},
			"live":          "maybe",
			"categories":    map[string]any{"oops": true},
			"stars":         []any{},
			"position":      "5.9,80.3",
			"powerBackup":   12345,
			"editorialTags": 9.5,
			"offers":        "free drink",
		},
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			v := MapVenueFromAPI(in)
			assert.NotNil(t, v.Categories)
			assert.NotNil(t, v.EditorialTags)
			assert.NotNil(t, v.Offers)
		})
	}
}

func TestMapVenueFromAPI_CamelCasePreference(t *testing.T) {
	v := MapVenueFromAPI(map[string]any{
		"card_perk": "A",
		"cardPerk":  "B",
	})
	assert.Equal(t, "B", v.CardPerk)

	// a null camelCase value falls back to the snake_case key
	v = MapVenueFromAPI(map[string]any{
		"card_perk": "A",
		"cardPerk":  nil,
	})
	assert.Equal(t, "A", v.CardPerk)
}

func TestMapVenueFromAPI_StringArrayFallbacks(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"json array string", `["Surf","Cafe"]`, []string{"Surf", "Cafe"}},
		{"csv string", "Surf, Cafe", []string{"Surf", "Cafe"}},
		{"single word", "not-json-or-csv-but-a-single-word", []string{"not-json-or-csv-but-a-single-word"}},
		{"native array", []any{"Surf", " Cafe ", ""}, []string{"Surf", "Cafe"}},
		{"malformed json falls back to csv", `["Surf","Cafe"`, []string{`["Surf"`, `"Cafe"`}},
		{"empty json array", `[]`, []string{}},
		{"number", 42, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := MapVenueFromAPI(map[string]any{"categories": tc.in})
			assert.Equal(t, tc.want, v.Categories)
		})
	}
}

func TestMapVenueFromAPI_PositionFallback(t *testing.T) {
	v := MapVenueFromAPI(map[string]any{"lat": 5.9, "lng": 80.3})
	require.NotNil(t, v.Position)
	assert.Equal(t, types.LatLng{Lat: 5.9, Lng: 80.3}, *v.Position)

	// explicit position wins over discrete fields
	v = MapVenueFromAPI(map[string]any{
		"position": map[string]any{"lat": "6.0", "lng": "80.0"},
		"lat":      5.9,
		"lng":      80.3,
	})
	require.NotNil(t, v.Position)
	assert.Equal(t, types.LatLng{Lat: 6.0, Lng: 80.0}, *v.Position)

	// one half of a point is no point
	v = MapVenueFromAPI(map[string]any{"lat": 5.9})
	assert.Nil(t, v.Position)

	// non-finite coordinates are rejected
	v = MapVenueFromAPI(map[string]any{
		"position": map[string]any{"lat": "NaN", "lng": 80.3},
	})
	assert.Nil(t, v.Position)
}

func TestMapVenueFromAPI_LiveDerivation(t *testing.T) {
	tests := []struct {
		name     string
		row      map[string]any
		wantLive bool
		wantPass bool
	}{
		{"explicit live bool", map[string]any{"live": true}, true, true},
		{"live from status", map[string]any{"status": "Live"}, true, true},
		{"status not live", map[string]any{"status": "draft"}, false, false},
		{"both absent", map[string]any{}, false, false},
		{"live string yes", map[string]any{"live": "yes"}, true, true},
		{"live zero", map[string]any{"live": 0}, false, false},
		{"garbage live falls back to status", map[string]any{"live": "maybe", "status": "live"}, true, true},
		{"explicit pass override", map[string]any{"live": true, "isPassVenue": false}, true, false},
		{"snake pass override", map[string]any{"live": false, "is_pass_venue": true}, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := MapVenueFromAPI(tc.row)
			assert.Equal(t, tc.wantLive, v.Live, "live")
			assert.Equal(t, tc.wantPass, v.IsPassVenue, "isPassVenue")
		})
	}
}

func TestMapVenueFromAPI_PowerBackup(t *testing.T) {
	tests := []struct {
		in   any
		want types.PowerBackup
	}{
		{"generator", types.PowerGenerator},
		{" Inverter ", types.PowerInverter},
		{"NONE", types.PowerNone},
		{"unknown", types.PowerUnknown},
		{"solar", types.PowerUnknown},
		{nil, types.PowerUnknown},
		{42, types.PowerUnknown},
	}
	for _, tc := range tests {
		v := MapVenueFromAPI(map[string]any{"power_backup": tc.in})
		assert.Equal(t, tc.want, v.PowerBackup, "input %v", tc.in)
	}
}

func TestMapVenueFromAPI_EditorialTagDedup(t *testing.T) {
	v := MapVenueFromAPI(map[string]any{
		"editorialTags": []any{"Laptop-Friendly", "laptop-friendly", "Ocean   View", " Ocean View ", ""},
	})
	assert.Equal(t, []string{"Laptop-Friendly", "Ocean View"}, v.EditorialTags)
}

func TestMapVenueFromAPI_ScalarsKeepRawShape(t *testing.T) {
	v := MapVenueFromAPI(map[string]any{
		"stars":    "4.5",
		"reviews":  120,
		"discount": "15%",
	})
	assert.Equal(t, "4.5", v.Stars)
	assert.Equal(t, 120, v.Reviews)
	assert.Equal(t, "15%", v.Discount)

	v = MapVenueFromAPI(map[string]any{"stars": "  ", "reviews": true})
	assert.Nil(t, v.Stars)
	assert.Nil(t, v.Reviews)
}

func TestMapVenueFromAPI_OffersStayOpaque(t *testing.T) {
	offers := []any{"2-for-1 cocktails", map[string]any{"label": "10% off food", "type": "discount"}}
	v := MapVenueFromAPI(map[string]any{"offers": offers})
	require.Len(t, v.Offers, 2)
	assert.Equal(t, offers, v.Offers)

	assert.Equal(t, types.Offer{Label: "2-for-1 cocktails"}, DecodeOffer(v.Offers[0]))
	assert.Equal(t, types.Offer{Label: "10% off food", Type: "discount"}, DecodeOffer(v.Offers[1]))
}

func TestMapVenueFromAPI_BooleanCoercion(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true}, {false, false},
		{1, true}, {0, false}, {2.5, true},
		{"TRUE", true}, {"y", true}, {"Yes", true},
		{"no", false}, {"N", false}, {"0", false},
		{"maybe", false}, {nil, false},
	}
	for _, tc := range tests {
		v := MapVenueFromAPI(map[string]any{"staffPick": tc.in})
		assert.Equal(t, tc.want, v.StaffPick, "input %v", tc.in)
	}
}
