package partners

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahangamapass/venues-api/internal/types"
	"github.com/ahangamapass/venues-api/pkg/db"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the contract for partner signup persistence.
type Repository interface {
	// CreateSignup stores one signup submission.
	CreateSignup(ctx context.Context, signup types.PartnerSignup) error
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

// CreateSignup implements Repository.
func (r *RepositoryImpl) CreateSignup(ctx context.Context, signup types.PartnerSignup) error {
	ctx, span := otel.Tracer("PartnerRepo").Start(ctx, "CreateSignup", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "partner_signups"),
	))
	defer span.End()

	l := r.logger.With(
		slog.String("method", "CreateSignup"),
		slog.String("signupID", signup.ID.String()),
		slog.String("venueName", signup.VenueName),
	)
	l.DebugContext(ctx, "Storing partner signup")

	query := `
        INSERT INTO partner_signups (id, venue_name, contact_name, email, phone, whatsapp, category, offer, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.pgpool.Exec(ctx, query,
		signup.ID,
		signup.VenueName,
		signup.ContactName,
		signup.Email,
		signup.Phone,
		signup.WhatsApp,
		signup.Category,
		signup.Offer,
		signup.Message,
		signup.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			l.WarnContext(ctx, "Duplicate partner signup", slog.Any("error", err))
			span.SetStatus(codes.Error, "Duplicate signup")
			return fmt.Errorf("signup for %q already submitted: %w", signup.VenueName, types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to insert partner signup", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return fmt.Errorf("database error storing partner signup: %w", err)
	}

	l.InfoContext(ctx, "Partner signup stored successfully")
	span.SetStatus(codes.Ok, "Signup stored")
	return nil
}
