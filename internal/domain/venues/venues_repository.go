package venues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahangamapass/venues-api/internal/types"
	"github.com/ahangamapass/venues-api/pkg/db"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the contract for venue retrieval. Rows come back in the
// raw key-value shape; the normalizer is the only component that types them.
type Repository interface {
	// ListVenues retrieves all venue rows for a destination, ordered by name.
	// category narrows to rows whose category collection contains it; liveOnly
	// keeps only rows with the live flag set.
	ListVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.RawVenueRow, error)

	// GetVenueBySlug retrieves one venue row by its URL slug within a
	// destination.
	GetVenueBySlug(ctx context.Context, destinationSlug, slug string) (types.RawVenueRow, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool db.Querier
}

func NewRepositoryImpl(pgxpool db.Querier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgxpool,
	}
}

var venueColumns = []string{
	"id",
	"destination_slug",
	"name",
	"slug",
	"status",
	"live",
	"categories",
	"best_for",
	"tags",
	"emoji",
	"editorial_tags",
	"stars",
	"reviews",
	"discount",
	"excerpt",
	"description",
	"card_perk",
	"how_to_claim",
	"restrictions",
	"offers",
	"area",
	"position",
	"lat",
	"lng",
	"logo",
	"image",
	"og_image",
	"map_url",
	"instagram_url",
	"whatsapp",
	"is_pass_venue",
	"staff_pick",
	"priority_score",
	"laptop_friendly",
	"power_backup",
	"updated_at",
	"created_at",
}

// ListVenues implements Repository.
func (r *RepositoryImpl) ListVenues(ctx context.Context, destinationSlug string, liveOnly bool, category string) ([]types.RawVenueRow, error) {
	ctx, span := otel.Tracer("VenueRepo").Start(ctx, "ListVenues", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "venues"),
		attribute.String("venue.destination", destinationSlug),
		attribute.Bool("venue.live_only", liveOnly),
	))
	defer span.End()

	l := r.logger.With(
		slog.String("method", "ListVenues"),
		slog.String("destinationSlug", destinationSlug),
		slog.Bool("liveOnly", liveOnly),
	)
	l.DebugContext(ctx, "Fetching venues for destination")

	builder := squirrel.Select(venueColumns...).
		PlaceholderFormat(squirrel.Dollar).
		From("venues").
		Where(squirrel.Eq{"destination_slug": destinationSlug}).
		OrderBy("name ASC")
	if category != "" {
		builder = builder.Where("? = ANY (categories)", category)
	}
	if liveOnly {
		builder = builder.Where(squirrel.Eq{"live": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "SQL build failed")
		return nil, fmt.Errorf("building venues query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query venues", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching venues: %w", err)
	}

	raw, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		l.ErrorContext(ctx, "Failed to collect venue rows", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row collection failed")
		return nil, fmt.Errorf("database error reading venues: %w", err)
	}

	out := make([]types.RawVenueRow, len(raw))
	for i, m := range raw {
		out[i] = types.RawVenueRow(m)
	}

	l.DebugContext(ctx, "Fetched venues successfully", slog.Int("count", len(out)))
	span.SetStatus(codes.Ok, "Venues fetched")
	return out, nil
}

// GetVenueBySlug implements Repository.
func (r *RepositoryImpl) GetVenueBySlug(ctx context.Context, destinationSlug, slug string) (types.RawVenueRow, error) {
	ctx, span := otel.Tracer("VenueRepo").Start(ctx, "GetVenueBySlug", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "venues"),
		attribute.String("venue.destination", destinationSlug),
		attribute.String("venue.slug", slug),
	))
	defer span.End()

	l := r.logger.With(
		slog.String("method", "GetVenueBySlug"),
		slog.String("destinationSlug", destinationSlug),
		slog.String("slug", slug),
	)
	l.DebugContext(ctx, "Fetching venue by slug")

	query, args, err := squirrel.Select(venueColumns...).
		PlaceholderFormat(squirrel.Dollar).
		From("venues").
		Where(squirrel.Eq{"destination_slug": destinationSlug, "slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "SQL build failed")
		return nil, fmt.Errorf("building venue query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query venue", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching venue: %w", err)
	}

	raw, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "Venue not found")
			span.SetStatus(codes.Error, "Venue not found")
			return nil, types.ErrNotFound
		}
		l.ErrorContext(ctx, "Failed to collect venue row", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row collection failed")
		return nil, fmt.Errorf("database error reading venue: %w", err)
	}

	span.SetStatus(codes.Ok, "Venue fetched")
	return types.RawVenueRow(raw), nil
}
