package venues

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahangamapass/venues-api/internal/types"
)

// MockVenueRepository is a mock implementation of Repository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) ListVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.RawVenueRow, error) {
	args := m.Called(ctx, destinationSlug, liveOnly, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RawVenueRow), args.Error(1)
}

func (m *MockVenueRepository) GetVenueBySlug(ctx context.Context, destinationSlug, slug string) (types.RawVenueRow, error) {
	args := m.Called(ctx, destinationSlug, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.RawVenueRow), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestListVenues_NormalizesAndCaches(t *testing.T) {
	repo := new(MockVenueRepository)
	svc := NewServiceImpl(repo, testLogger())

	rows := []types.RawVenueRow{
		{"id": 1, "name": "Cafe A", "live": true, "categories": []any{"Eat"}, "stars": "4.5", "reviews": "120"},
	}
	repo.On("ListVenues", mock.Anything, "ahangama", true, "").Return(rows, nil).Once()

	got, err := svc.ListVenues(context.Background(), "", true, "")
	require.NoError(t, err)
	require.Len(t, got, 1)

	v := got[0]
	assert.Equal(t, 1, v.ID)
	assert.Equal(t, "Cafe A", v.Name)
	assert.True(t, v.Live)
	assert.True(t, v.IsPassVenue)
	assert.Equal(t, "4.5", v.Stars)
	assert.Equal(t, "120", v.Reviews)
	assert.Equal(t, []string{"Eat"}, v.Categories)
	assert.Equal(t, types.PowerUnknown, v.PowerBackup)

	// second call is served from cache
	again, err := svc.ListVenues(context.Background(), "ahangama", true, "")
	require.NoError(t, err)
	assert.Equal(t, got, again)
	repo.AssertNumberOfCalls(t, "ListVenues", 1)
}

func TestListVenues_ErrorsAreNotCached(t *testing.T) {
	repo := new(MockVenueRepository)
	svc := NewServiceImpl(repo, testLogger())

	dbErr := errors.New("connection refused")
	repo.On("ListVenues", mock.Anything, "ahangama", true, "").Return(nil, dbErr).Once()

	_, err := svc.ListVenues(context.Background(), "ahangama", true, "")
	require.ErrorIs(t, err, dbErr)

	// a failed load leaves no stale entry behind; the next call hits the repo
	rows := []types.RawVenueRow{{"id": 1, "name": "Cafe A", "live": true}}
	repo.On("ListVenues", mock.Anything, "ahangama", true, "").Return(rows, nil).Once()

	got, err := svc.ListVenues(context.Background(), "ahangama", true, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestQueryVenues_FullPipeline(t *testing.T) {
	repo := new(MockVenueRepository)
	svc := NewServiceImpl(repo, testLogger())

	rows := []types.RawVenueRow{
		{"id": 1, "name": "Cafe A", "live": true, "categories": []any{"Eat"}, "stars": "4.5", "reviews": "120"},
		{"id": 2, "name": "Surf School", "live": true, "categories": []any{"Do"}, "staff_pick": true, "priority_score": 10},
		{"id": 3, "name": "Hidden Bar", "live": true, "is_pass_venue": false},
	}
	repo.On("ListVenues", mock.Anything, "ahangama", true, "").Return(rows, nil)

	result, err := svc.QueryVenues(context.Background(), "ahangama", true, "", url.Values{"pass": {"1"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Venues, 2, "pass filter drops the explicit opt-out")
	// curated order: priority score first
	assert.Equal(t, "Surf School", result.Venues[0].Name)
	assert.Equal(t, "Cafe A", result.Venues[1].Name)
	assert.True(t, result.Query.Pass)
}

func TestQueryVenues_NearestUsesOrigin(t *testing.T) {
	repo := new(MockVenueRepository)
	svc := NewServiceImpl(repo, testLogger())

	rows := []types.RawVenueRow{
		{"id": "far", "name": "Far", "live": true, "lat": 6.05, "lng": 80.45},
		{"id": "lost", "name": "No Position", "live": true},
		{"id": "near", "name": "Near", "live": true, "lat": 5.974, "lng": 80.363},
	}
	repo.On("ListVenues", mock.Anything, "ahangama", true, "").Return(rows, nil)

	origin := &types.LatLng{Lat: 5.973, Lng: 80.362}
	result, err := svc.QueryVenues(context.Background(), "ahangama", true, "", url.Values{"sort": {"nearest"}}, origin)
	require.NoError(t, err)
	require.Len(t, result.Venues, 3)
	assert.Equal(t, "Near", result.Venues[0].Name)
	assert.Equal(t, "Far", result.Venues[1].Name)
	assert.Equal(t, "No Position", result.Venues[2].Name)
}

func TestQueryVenues_NearestWithoutOriginKeepsOrder(t *testing.T) {
	repo := new(MockVenueRepository)
	svc := NewServiceImpl(repo, testLogger())

	rows := []types.RawVenueRow{
		{"id": 1, "name": "B", "live": true, "lat": 6.0, "lng": 80.4},
		{"id": 2, "name": "A", "live": true, "lat": 5.9, "lng": 80.3},
	}
	repo.On("ListVenues", mock.Anything, "ahangama", true, "").Return(rows, nil)

	result, err := svc.QueryVenues(context.Background(), "ahangama", true, "", url.Values{"sort": {"nearest"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "B", result.Venues[0].Name)
	assert.Equal(t, "A", result.Venues[1].Name)
}

func TestGetVenueBySlug(t *testing.T) {
	repo := new(MockVenueRepository)
	svc := NewServiceImpl(repo, testLogger())

	repo.On("GetVenueBySlug", mock.Anything, "ahangama", "cafe-a").
		Return(types.RawVenueRow{"id": 1, "name": "Cafe A", "slug": "cafe-a", "status": "live"}, nil)

	v, err := svc.GetVenueBySlug(context.Background(), "", "cafe-a")
	require.NoError(t, err)
	assert.Equal(t, "Cafe A", v.Name)
	assert.True(t, v.Live, "live derives from status")

	repo.On("GetVenueBySlug", mock.Anything, "ahangama", "missing").
		Return(nil, types.ErrNotFound)
	_, err = svc.GetVenueBySlug(context.Background(), "ahangama", "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
