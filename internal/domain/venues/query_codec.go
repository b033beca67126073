package venues

import (
	"net/url"
	"strings"

	"github.com/ahangamapass/venues-api/internal/types"
)

// Query string keys consumed by the venue list codec.
const (
	paramQ      = "q"
	paramPass   = "pass"
	paramPick   = "pick"
	paramLaptop = "laptop"
	paramPower  = "power"
	paramTag    = "tag"
	paramSort   = "sort"
)

// ParseListQuery reads a flat parameter set into a structured list query.
// Invalid values never error; they degrade to the field's default.
func ParseListQuery(params url.Values) types.VenueListQuery {
	q := types.VenueListQuery{
		Q:      params.Get(paramQ),
		Pass:   parseFlag(params, paramPass),
		Pick:   parseFlag(params, paramPick),
		Laptop: parseFlag(params, paramLaptop),
		Sort:   types.SortCurated,
	}

	switch p := types.PowerBackup(strings.ToLower(strings.TrimSpace(params.Get(paramPower)))); p {
	case types.PowerGenerator, types.PowerInverter, types.PowerNone, types.PowerUnknown:
		q.Power = p
	}

	if tag := params.Get(paramTag); IsVocabularyTag(tag) {
		q.Tag = tag
	}

	switch s := types.SortKey(strings.ToLower(strings.TrimSpace(params.Get(paramSort)))); s {
	case types.SortTop, types.SortReviews, types.SortNearest:
		q.Sort = s
	}

	return q
}

// parseFlag treats 1/true/yes (any case) as on; anything else, including an
// absent key, is off.
func parseFlag(params url.Values, key string) bool {
	switch strings.ToLower(params.Get(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ApplyListQuery returns a copy of params with the non-nil fields of update
// applied. Values that normalize to their default delete the key, so the
// serialized form stays canonical: curated sort and off flags are implicit.
// The input is never mutated.
func ApplyListQuery(params url.Values, update types.ListQueryUpdate) url.Values {
	out := make(url.Values, len(params))
	for k, vs := range params {
		out[k] = append([]string(nil), vs...)
	}

	setString := func(key string, v *string) {
		if v == nil {
			return
		}
		if t := strings.TrimSpace(*v); t != "" {
			out.Set(key, t)
		} else {
			out.Del(key)
		}
	}
	setFlag := func(key string, v *bool) {
		if v == nil {
			return
		}
		if *v {
			out.Set(key, "1")
		} else {
			out.Del(key)
		}
	}

	setString(paramQ, update.Q)
	setFlag(paramPass, update.Pass)
	setFlag(paramPick, update.Pick)
	setFlag(paramLaptop, update.Laptop)

	if update.Power != nil {
		if *update.Power == "" {
			out.Del(paramPower)
		} else {
			out.Set(paramPower, string(*update.Power))
		}
	}

	setString(paramTag, update.Tag)

	if update.Sort != nil {
		if *update.Sort == "" || *update.Sort == types.SortCurated {
			out.Del(paramSort)
		} else {
			out.Set(paramSort, string(*update.Sort))
		}
	}

	return out
}

// EncodeListQuery serializes a structured query onto empty parameters. It is
// ApplyListQuery with every field treated as updated.
func EncodeListQuery(q types.VenueListQuery) url.Values {
	power := q.Power
	return ApplyListQuery(url.Values{}, types.ListQueryUpdate{
		Q:      &q.Q,
		Pass:   &q.Pass,
		Pick:   &q.Pick,
		Laptop: &q.Laptop,
		Power:  &power,
		Tag:    &q.Tag,
		Sort:   &q.Sort,
	})
}
