package venues

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/ahangamapass/venues-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// DefaultDestinationSlug scopes requests that do not name a destination.
const DefaultDestinationSlug = "ahangama"

// ListResult carries both the filtered list and the size of the unfiltered
// one, so callers can distinguish "no venues" from "no venues match filters".
type ListResult struct {
	Venues []types.Venue        `json:"venues"`
	Total  int                  `json:"total"`
	Query  types.VenueListQuery `json:"query"`
}

// Service defines the business logic contract for venue operations.
type Service interface {
	// ListRawVenues returns the untyped venue rows for a destination, in the
	// repository's name order. The raw shape is the wire contract of the
	// public venues endpoint.
	ListRawVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.RawVenueRow, error)

	// ListVenues returns normalized venues for a destination, in the
	// repository's name order.
	ListVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.Venue, error)

	// GetVenueBySlug returns one normalized venue.
	GetVenueBySlug(ctx context.Context, destinationSlug, slug string) (types.Venue, error)

	// QueryVenues loads the destination's venues and runs the request
	// parameters through the codec, filter, and sort stages. origin, when
	// present, supplies the reference point for the nearest sort.
	QueryVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string, params url.Values, origin *types.LatLng) (ListResult, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
	group  singleflight.Group
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func listCacheKey(destinationSlug string, liveOnly bool, category string) string {
	return fmt.Sprintf("venues:%s:%t:%s", destinationSlug, liveOnly, category)
}

// ListRawVenues implements Service. Raw rows bypass the cache so the public
// endpoint always reflects the store.
func (s *ServiceImpl) ListRawVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.RawVenueRow, error) {
	if destinationSlug == "" {
		destinationSlug = DefaultDestinationSlug
	}
	return s.repo.ListVenues(ctx, destinationSlug, liveOnly, category)
}

// ListVenues implements Service. Results are cached per destination/filter
// combination and concurrent identical loads are collapsed into one query.
func (s *ServiceImpl) ListVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.Venue, error) {
	if destinationSlug == "" {
		destinationSlug = DefaultDestinationSlug
	}

	key := listCacheKey(destinationSlug, liveOnly, category)
	if cached, found := s.cache.Get(key); found {
		return cached.([]types.Venue), nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		rows, err := s.repo.ListVenues(ctx, destinationSlug, liveOnly, category)
		if err != nil {
			return nil, err
		}
		list := make([]types.Venue, len(rows))
		for i, row := range rows {
			list[i] = MapVenueFromAPI(row)
		}
		s.cache.Set(key, list, cache.DefaultExpiration)
		return list, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load venues",
			slog.String("destinationSlug", destinationSlug), slog.Any("error", err))
		return nil, err
	}
	return result.([]types.Venue), nil
}

// GetVenueBySlug implements Service.
func (s *ServiceImpl) GetVenueBySlug(ctx context.Context, destinationSlug, slug string) (types.Venue, error) {
	if destinationSlug == "" {
		destinationSlug = DefaultDestinationSlug
	}
	row, err := s.repo.GetVenueBySlug(ctx, destinationSlug, slug)
	if err != nil {
		return types.Venue{}, err
	}
	return MapVenueFromAPI(row), nil
}

// QueryVenues implements Service.
func (s *ServiceImpl) QueryVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string, params url.Values, origin *types.LatLng) (ListResult, error) {
	list, err := s.ListVenues(ctx, destinationSlug, liveOnly, category)
	if err != nil {
		return ListResult{}, err
	}

	query := ParseListQuery(params)
	filtered := FilterVenues(list, query)

	var distances map[string]float64
	if query.Sort == types.SortNearest && origin != nil {
		distances = DistancesFrom(filtered, *origin)
	}
	filtered = SortVenues(filtered, query.Sort, distances)

	return ListResult{
		Venues: filtered,
		Total:  len(list),
		Query:  query,
	}, nil
}
