package venues

import (
	"strings"

	"github.com/ahangamapass/venues-api/internal/types"
)

// EditorialTag pairs a curated label with its visitor-facing description.
type EditorialTag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EditorialTagVocabulary is the fixed, priority-ordered vocabulary of
// editorial tags. Position in this list is the tag's priority: lower index
// means higher priority when picking top tags for a card. Treat this as a
// versioned constant; reordering it changes ranking everywhere.
var EditorialTagVocabulary = []EditorialTag{
	{"Staff Favourite", "The places our own team keeps going back to."},
	{"Laptop-Friendly", "Reliable wifi, sockets within reach, and nobody rushing you out."},
	{"Ocean View", "You can see the water from your seat."},
	{"Sunset Spot", "West-facing and worth planning your evening around."},
	{"Surf Break Access", "Walk straight from your table to a surfable wave."},
	{"Beachfront", "Sand between your toes territory."},
	{"Local Favourite", "Where Ahangama residents actually eat and drink."},
	{"Hidden Gem", "Off the main road and easy to miss."},
	{"Speciality Coffee", "Proper espresso machines and beans they care about."},
	{"Smoothie Bowls", "The acai-and-dragonfruit end of the menu."},
	{"Vegan-Friendly", "A real plant-based selection, not a single sad salad."},
	{"Seafood", "Fresh catch, often from the boats that morning."},
	{"Sri Lankan Cuisine", "Rice and curry, kottu, hoppers done right."},
	{"Wood-Fired Pizza", "An actual oven, not a conveyor belt."},
	{"Brunch", "All-day breakfast worth getting out of bed for."},
	{"Cocktails", "A bar program beyond arrack and coke."},
	{"Live Music", "Regular sessions, open mics, or resident DJs."},
	{"Yoga & Wellness", "Classes, treatments, or space to stretch."},
	{"Pool Access", "Swim without a day-room booking."},
	{"Co-Working", "Dedicated desks and meeting-call etiquette."},
	{"Family-Friendly", "High chairs, kids' portions, and patience."},
	{"Pet-Friendly", "Your dog is as welcome as you are."},
	{"Late Night", "Kitchen or bar open past ten."},
	{"Early Open", "Serving before the dawn patrol paddles out."},
	{"Garden Seating", "Shade, greenery, and room to spread out."},
	{"Air-Conditioned", "A cool room in the April heat."},
	{"Budget-Friendly", "Full meal under 1500 rupees."},
	{"Date Night", "Low light, good wine, no laptops."},
	{"Group Bookings", "Long tables and staff who can handle twelve orders."},
}

// tagPriority maps each vocabulary tag to its priority index.
var tagPriority = func() map[string]int {
	m := make(map[string]int, len(EditorialTagVocabulary))
	for i, t := range EditorialTagVocabulary {
		m[t.Name] = i
	}
	return m
}()

// ValidatedEditorialTags returns the venue's editorial tags that belong to
// the vocabulary, in the venue's own stored order.
func ValidatedEditorialTags(v types.Venue) []string {
	out := make([]string, 0, len(v.EditorialTags))
	for _, t := range v.EditorialTags {
		if _, ok := tagPriority[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// TopEditorialTags returns up to limit validated tags reordered by vocabulary
// priority rather than the venue's stored order.
func TopEditorialTags(v types.Venue, limit int) []string {
	valid := ValidatedEditorialTags(v)
	// insertion sort by priority index; tag lists are tiny
	for i := 1; i < len(valid); i++ {
		for j := i; j > 0 && tagPriority[valid[j]] < tagPriority[valid[j-1]]; j-- {
			valid[j], valid[j-1] = valid[j-1], valid[j]
		}
	}
	if limit >= 0 && len(valid) > limit {
		valid = valid[:limit]
	}
	return valid
}

// HasEditorialTag reports whether tag is among the venue's validated tags.
func HasEditorialTag(v types.Venue, tag string) bool {
	for _, t := range ValidatedEditorialTags(v) {
		if t == tag {
			return true
		}
	}
	return false
}

// IsLaptopFriendlyVenue is true when the explicit flag is set or the venue
// carries the Laptop-Friendly editorial tag.
func IsLaptopFriendlyVenue(v types.Venue) bool {
	return v.LaptopFriendly || HasEditorialTag(v, "Laptop-Friendly")
}

// EditorialTagDescription returns the description for a recognized tag, or
// the empty string for unrecognized or blank input.
func EditorialTagDescription(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if i, ok := tagPriority[tag]; ok {
		return EditorialTagVocabulary[i].Description
	}
	return ""
}

// IsVocabularyTag reports whether tag is an exact member of the vocabulary.
func IsVocabularyTag(tag string) bool {
	_, ok := tagPriority[tag]
	return ok
}
