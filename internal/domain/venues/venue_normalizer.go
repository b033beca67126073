package venues

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ahangamapass/venues-api/internal/types"
)

// MapVenueFromAPI converts one loosely typed upstream row into the canonical
// Venue. Rows may mix snake_case and camelCase keys for the same logical
// field; when both are present and non-null the camelCase key wins. The
// function is total: any malformed or missing field degrades to a safe
// default and no input shape can make it panic.
func MapVenueFromAPI(row any) types.Venue {
	m, ok := row.(map[string]any)
	if !ok || m == nil {
		m = map[string]any{}
	}

	v := types.Venue{
		ID:              pick(m, "id"),
		DestinationSlug: coerceString(pick(m, "destinationSlug", "destination_slug")),
		Name:            coerceString(pick(m, "name")),
		Slug:            coerceString(pick(m, "slug")),
		Status:          coerceString(pick(m, "status")),

		Categories:    coerceStringSlice(pick(m, "categories")),
		BestFor:       coerceStringSlice(pick(m, "bestFor", "best_for")),
		Tags:          coerceStringSlice(pick(m, "tags")),
		Emoji:         coerceStringSlice(pick(m, "emoji")),
		EditorialTags: coerceEditorialTags(pick(m, "editorialTags", "editorial_tags")),

		Stars:    coerceScalar(pick(m, "stars")),
		Reviews:  coerceScalar(pick(m, "reviews")),
		Discount: coerceScalar(pick(m, "discount")),

		Excerpt:      coerceString(pick(m, "excerpt")),
		Description:  coerceString(pick(m, "description")),
		CardPerk:     coerceString(pick(m, "cardPerk", "card_perk")),
		HowToClaim:   coerceString(pick(m, "howToClaim", "how_to_claim")),
		Restrictions: coerceString(pick(m, "restrictions")),

		Offers: coerceOpaqueSlice(pick(m, "offers")),

		Area:     coerceString(pick(m, "area")),
		Position: coercePosition(pick(m, "position"), pick(m, "lat"), pick(m, "lng")),

		Logo:         coerceString(pick(m, "logo")),
		Image:        coerceString(pick(m, "image")),
		OgImage:      coerceString(pick(m, "ogImage", "og_image")),
		MapURL:       coerceString(pick(m, "mapUrl", "map_url")),
		InstagramURL: coerceString(pick(m, "instagramUrl", "instagram_url")),
		WhatsApp:     coerceString(pick(m, "whatsapp")),

		StaffPick:      boolOrFalse(coerceBool(pick(m, "staffPick", "staff_pick"))),
		PriorityScore:  numberOrZero(pick(m, "priorityScore", "priority_score")),
		LaptopFriendly: boolOrFalse(coerceBool(pick(m, "laptopFriendly", "laptop_friendly"))),
		PowerBackup:    coercePowerBackup(pick(m, "powerBackup", "power_backup")),

		UpdatedAt: coerceString(pick(m, "updatedAt", "updated_at")),
		CreatedAt: coerceString(pick(m, "createdAt", "created_at")),
	}

	// live is the canonical visibility flag: an explicit boolean wins, else it
	// derives from status == "live". Unknown visibility counts as not live.
	if live := coerceBool(pick(m, "live")); live != nil {
		v.Live = *live
	} else {
		v.Live = strings.EqualFold(v.Status, "live")
	}

	// isPassVenue is an explicit override when present, otherwise it follows
	// the live flag.
	if pass := coerceBool(pick(m, "isPassVenue", "is_pass_venue")); pass != nil {
		v.IsPassVenue = *pass
	} else {
		v.IsPassVenue = v.Live
	}

	return v
}

// pick returns the value of the first listed key that is present with a
// non-nil value. Callers list camelCase keys before their snake_case aliases.
func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// coerceString stringifies and trims; nil or blank input comes back empty.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return strings.TrimSpace(s.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// coerceBool interprets loose truthy input. nil means unknown, which callers
// resolve per field.
func coerceBool(v any) *bool {
	switch b := v.(type) {
	case nil:
		return nil
	case bool:
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "y":
			t := true
			return &t
		case "false", "0", "no", "n":
			f := false
			return &f
		}
		return nil
	default:
		if n, ok := coerceNumber(v); ok {
			r := n != 0
			return &r
		}
		return nil
	}
}

func boolOrFalse(b *bool) bool {
	return b != nil && *b
}

// coerceNumber parses loose numeric input; the second return is false for
// anything that does not resolve to a finite number.
func coerceNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func numberOrZero(v any) float64 {
	n, ok := coerceNumber(v)
	if !ok {
		return 0
	}
	return n
}

// coerceScalar keeps numbers and non-blank strings as-is. Stars, reviews and
// discount stay loosely typed because the raw value is part of the response
// contract; the list engine coerces them when ranking.
func coerceScalar(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		t := strings.TrimSpace(x)
		if t == "" {
			return nil
		}
		return t
	case bool:
		return nil
	case float64, float32, int, int32, int64, json.Number:
		return v
	default:
		return nil
	}
}

// coerceStringSlice turns array-ish input into a clean string slice. String
// input that looks like a JSON array is parsed and recursed; on parse
// failure it falls through to comma splitting.
func coerceStringSlice(v any) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := coerceString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		t := strings.TrimSpace(x)
		if t == "" {
			return []string{}
		}
		if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
			var parsed []any
			if err := json.Unmarshal([]byte(t), &parsed); err == nil {
				return coerceStringSlice(parsed)
			}
		}
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// coerceOpaqueSlice passes arrays through untouched and flattens everything
// else to empty. Used for offers, which carry heterogeneous entries.
func coerceOpaqueSlice(v any) []any {
	if x, ok := v.([]any); ok {
		return x
	}
	return []any{}
}

// coerceEditorialTags normalizes internal whitespace runs and deduplicates
// case-insensitively, keeping first-seen casing and order.
func coerceEditorialTags(v any) []string {
	raw := coerceStringSlice(v)
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.Join(strings.Fields(t), " ")
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// coercePowerBackup accepts only the four known values; anything else is
// unknown.
func coercePowerBackup(v any) types.PowerBackup {
	switch types.PowerBackup(strings.ToLower(coerceString(v))) {
	case types.PowerGenerator:
		return types.PowerGenerator
	case types.PowerInverter:
		return types.PowerInverter
	case types.PowerNone:
		return types.PowerNone
	case types.PowerUnknown:
		return types.PowerUnknown
	default:
		return types.PowerUnknown
	}
}

// coercePosition prefers an explicit position object; a valid point needs
// both lat and lng to resolve to finite numbers. With no usable object it
// falls back to the discrete lat/lng fields.
func coercePosition(pos, lat, lng any) *types.LatLng {
	if m, ok := pos.(map[string]any); ok {
		la, okLa := coerceNumber(m["lat"])
		ln, okLn := coerceNumber(m["lng"])
		if okLa && okLn {
			return &types.LatLng{Lat: la, Lng: ln}
		}
	}
	la, okLa := coerceNumber(lat)
	ln, okLn := coerceNumber(lng)
	if okLa && okLn {
		return &types.LatLng{Lat: la, Lng: ln}
	}
	return nil
}

// DecodeOffer interprets one raw offers entry: either a plain label string
// or an object with label and/or type fields.
func DecodeOffer(v any) types.Offer {
	switch x := v.(type) {
	case string:
		return types.Offer{Label: strings.TrimSpace(x)}
	case map[string]any:
		return types.Offer{
			Label: coerceString(x["label"]),
			Type:  coerceString(x["type"]),
		}
	default:
		return types.Offer{}
	}
}
