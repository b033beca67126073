package venues

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ahangamapass/venues-api/internal/types"
)

// FilterVenues applies the query's active filters conjunctively. An empty
// query passes every venue. Filtering never errors; absent optional fields
// count as their filter-neutral default.
func FilterVenues(list []types.Venue, q types.VenueListQuery) []types.Venue {
	needle := strings.ToLower(strings.TrimSpace(q.Q))

	out := make([]types.Venue, 0, len(list))
	for _, v := range list {
		if q.Pass && !v.IsPassVenue {
			continue
		}
		if q.Pick && !v.StaffPick {
			continue
		}
		if q.Laptop && !IsLaptopFriendlyVenue(v) {
			continue
		}
		if q.Power != "" && v.PowerBackup != q.Power {
			continue
		}
		if q.Tag != "" && !HasEditorialTag(v, q.Tag) {
			continue
		}
		if needle != "" && !strings.Contains(searchHaystack(v), needle) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// searchHaystack joins the searchable text fields with single spaces,
// lowercased, for substring matching.
func searchHaystack(v types.Venue) string {
	parts := make([]string, 0, 4+len(v.Categories)+len(v.BestFor)+len(v.Tags)+len(v.EditorialTags))
	parts = append(parts, v.Name, v.Area, v.Excerpt, v.CardPerk)
	parts = append(parts, v.Categories...)
	parts = append(parts, v.BestFor...)
	parts = append(parts, v.Tags...)
	parts = append(parts, v.EditorialTags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// SortVenues returns a new slice ordered by the given key. All orderings are
// stable: ties keep their original relative order. distanceByID is only
// consulted for the nearest sort and maps stringified venue IDs to distances;
// nearest with a nil map is the identity ordering.
func SortVenues(list []types.Venue, key types.SortKey, distanceByID map[string]float64) []types.Venue {
	out := append([]types.Venue(nil), list...)

	switch key {
	case types.SortNearest:
		if distanceByID == nil {
			return out
		}
		sort.SliceStable(out, func(i, j int) bool {
			di, okI := distanceByID[VenueID(out[i])]
			dj, okJ := distanceByID[VenueID(out[j])]
			if okI != okJ {
				return okI // venues without a distance sort last
			}
			if !okI {
				return false
			}
			return di < dj
		})
	case types.SortTop:
		sort.SliceStable(out, func(i, j int) bool {
			return numberOrZero(out[i].Stars) > numberOrZero(out[j].Stars)
		})
	case types.SortReviews:
		sort.SliceStable(out, func(i, j int) bool {
			return numberOrZero(out[i].Reviews) > numberOrZero(out[j].Reviews)
		})
	default: // curated
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.PriorityScore != b.PriorityScore {
				return a.PriorityScore > b.PriorityScore
			}
			if a.StaffPick != b.StaffPick {
				return a.StaffPick
			}
			if sa, sb := numberOrZero(a.Stars), numberOrZero(b.Stars); sa != sb {
				return sa > sb
			}
			return numberOrZero(a.Reviews) > numberOrZero(b.Reviews)
		})
	}
	return out
}

// VenueID is the stringified venue identifier used for distance lookups.
func VenueID(v types.Venue) string {
	if v.ID == nil {
		return ""
	}
	if s, ok := v.ID.(string); ok {
		return s
	}
	return coerceString(v.ID)
}

// ParseDiscountPercent normalizes the loosely typed discount field to a
// whole-percent score. Fractions below 1 are treated as ratios (0.15 -> 15),
// numbers at or above 1 as whole percents, and strings may carry a % token.
// Anything unparsable scores 0.
func ParseDiscountPercent(discount any) float64 {
	switch d := discount.(type) {
	case string:
		n, ok := coerceNumber(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(d), "%")))
		if !ok {
			return 0
		}
		if strings.Contains(d, "%") {
			return n
		}
		return scalePercent(n)
	default:
		if n, ok := coerceNumber(discount); ok {
			return scalePercent(n)
		}
		return 0
	}
}

func scalePercent(n float64) float64 {
	if n > 0 && n < 1 {
		return n * 100
	}
	return n
}

// DistancesFrom computes great-circle distances in meters from origin to
// every venue with a known position, keyed by stringified venue ID. Venues
// without a position are simply absent, which the nearest sort treats as
// sorting last.
func DistancesFrom(list []types.Venue, origin types.LatLng) map[string]float64 {
	out := make(map[string]float64, len(list))
	for _, v := range list {
		if v.Position == nil {
			continue
		}
		out[VenueID(v)] = haversineMeters(origin, *v.Position)
	}
	return out
}

const earthRadiusMeters = 6371000

func haversineMeters(a, b types.LatLng) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// FormatDistance renders a distance in meters the way venue cards show it.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
