package venues

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahangamapass/venues-api/internal/types"
)

func TestRepositoryListVenues(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, testLogger())

	rows := pgxmock.NewRows([]string{"id", "name", "live", "stars"}).
		AddRow(int64(1), "Cafe A", true, "4.5").
		AddRow(int64(2), "Cafe B", true, "4.0")

	mockPool.ExpectQuery(`SELECT .+ FROM venues WHERE destination_slug = \$1 AND live = \$2 ORDER BY name ASC`).
		WithArgs("ahangama", true).
		WillReturnRows(rows)

	got, err := repo.ListVenues(context.Background(), "ahangama", true, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cafe A", got[0]["name"])
	assert.Equal(t, int64(1), got[0]["id"])
	assert.Equal(t, "4.5", got[0]["stars"])

	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryListVenues_CategoryFilter(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, testLogger())

	mockPool.ExpectQuery(`SELECT .+ FROM venues WHERE destination_slug = \$1 AND \$2 = ANY \(categories\) AND live = \$3 ORDER BY name ASC`).
		WithArgs("ahangama", "Eat", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

	got, err := repo.ListVenues(context.Background(), "ahangama", true, "Eat")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryListVenues_NoLiveFilter(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, testLogger())

	mockPool.ExpectQuery(`SELECT .+ FROM venues WHERE destination_slug = \$1 ORDER BY name ASC`).
		WithArgs("ahangama").
		WillReturnRows(pgxmock.NewRows([]string{"id", "live"}).AddRow(int64(3), false))

	got, err := repo.ListVenues(context.Background(), "ahangama", false, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, false, got[0]["live"])

	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryListVenues_QueryError(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, testLogger())

	mockPool.ExpectQuery(`SELECT .+ FROM venues`).
		WithArgs("ahangama", true).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.ListVenues(context.Background(), "ahangama", true, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error fetching venues")
}

func TestRepositoryGetVenueBySlug(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, testLogger())

	mockPool.ExpectQuery(`SELECT .+ FROM venues WHERE destination_slug = \$1 AND slug = \$2 LIMIT 1`).
		WithArgs("ahangama", "cafe-a").
		WillReturnRows(pgxmock.NewRows([]string{"id", "slug", "name"}).AddRow(int64(1), "cafe-a", "Cafe A"))

	row, err := repo.GetVenueBySlug(context.Background(), "ahangama", "cafe-a")
	require.NoError(t, err)
	assert.Equal(t, "Cafe A", row["name"])

	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryGetVenueBySlug_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, testLogger())

	mockPool.ExpectQuery(`SELECT .+ FROM venues WHERE destination_slug = \$1 AND slug = \$2 LIMIT 1`).
		WithArgs("ahangama", "missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err = repo.GetVenueBySlug(context.Background(), "ahangama", "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
