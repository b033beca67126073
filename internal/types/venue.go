package types

// RawVenueRow is one loosely typed venue record as it arrives from the
// database or any other upstream source. Keys may be snake_case or camelCase,
// values may be strings, numbers, booleans, arrays, JSON-encoded array
// strings, or null. The venues normalizer is the only component allowed to
// interpret this shape.
type RawVenueRow = map[string]any

// PowerBackup enumerates a venue's power resilience during outages.
type PowerBackup string

const (
	PowerGenerator PowerBackup = "generator"
	PowerInverter  PowerBackup = "inverter"
	PowerNone      PowerBackup = "none"
	PowerUnknown   PowerBackup = "unknown"
)

// LatLng is a WGS84 point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Offer is the decoded form of one entry in a venue's offers list. Entries
// arrive either as a plain string or as an object carrying a label and/or a
// type; the normalizer keeps the raw list intact and DecodeOffer interprets
// individual entries on demand.
type Offer struct {
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Venue is the canonical, normalized venue record. Records are owned by the
// database; this service only reads and transforms them per request.
//
// ID, Stars, Reviews and Discount intentionally stay loosely typed: upstream
// stores them as either numbers or numeric strings and the raw value is part
// of the API contract. The filter/sort engine coerces them as needed.
type Venue struct {
	ID              any    `json:"id"`
	DestinationSlug string `json:"destinationSlug,omitempty"`
	Name            string `json:"name,omitempty"`
	Slug            string `json:"slug,omitempty"`

	Status string `json:"status,omitempty"`
	Live   bool   `json:"live"`

	Categories    []string `json:"categories"`
	BestFor       []string `json:"bestFor"`
	Tags          []string `json:"tags"`
	Emoji         []string `json:"emoji"`
	EditorialTags []string `json:"editorialTags"`

	Stars    any `json:"stars,omitempty"`
	Reviews  any `json:"reviews,omitempty"`
	Discount any `json:"discount,omitempty"`

	Excerpt      string `json:"excerpt,omitempty"`
	Description  string `json:"description,omitempty"`
	CardPerk     string `json:"cardPerk,omitempty"`
	HowToClaim   string `json:"howToClaim,omitempty"`
	Restrictions string `json:"restrictions,omitempty"`

	Offers []any `json:"offers"`

	Area     string  `json:"area,omitempty"`
	Position *LatLng `json:"position,omitempty"`

	Logo         string `json:"logo,omitempty"`
	Image        string `json:"image,omitempty"`
	OgImage      string `json:"ogImage,omitempty"`
	MapURL       string `json:"mapUrl,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
	WhatsApp     string `json:"whatsapp,omitempty"`

	IsPassVenue    bool        `json:"isPassVenue"`
	StaffPick      bool        `json:"staffPick"`
	PriorityScore  float64     `json:"priorityScore"`
	LaptopFriendly bool        `json:"laptopFriendly"`
	PowerBackup    PowerBackup `json:"powerBackup"`

	UpdatedAt string `json:"updatedAt,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
