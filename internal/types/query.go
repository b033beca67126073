package types

// SortKey identifies one of the supported venue list orderings.
type SortKey string

const (
	SortCurated SortKey = "curated"
	SortTop     SortKey = "top"
	SortReviews SortKey = "reviews"
	SortNearest SortKey = "nearest"
)

// VenueListQuery is the structured, request-scoped form of the venue list
// filter parameters. The zero value means "no filters, curated order" except
// that Sort must be filled in by the codec (ParseListQuery defaults it).
type VenueListQuery struct {
	Q      string      `json:"q,omitempty"`
	Pass   bool        `json:"pass,omitempty"`
	Pick   bool        `json:"pick,omitempty"`
	Laptop bool        `json:"laptop,omitempty"`
	Power  PowerBackup `json:"power,omitempty"`
	Tag    string      `json:"tag,omitempty"`
	Sort   SortKey     `json:"sort,omitempty"`
}

// ListQueryUpdate is a partial update to a serialized venue list query. Nil
// fields are left untouched; non-nil fields are normalized and written (or
// deleted when they normalize to their default).
type ListQueryUpdate struct {
	Q      *string
	Pass   *bool
	Pick   *bool
	Laptop *bool
	Power  *PowerBackup
	Tag    *string
	Sort   *SortKey
}
