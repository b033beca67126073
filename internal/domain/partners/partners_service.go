package partners

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ahangamapass/venues-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for partner signups.
type Service interface {
	// SubmitSignup validates and stores a signup, then notifies the operator
	// and the submitter. The stored signup survives a notification failure,
	// but the failure is surfaced to the caller.
	SubmitSignup(ctx context.Context, params types.PartnerSignupParams) (types.PartnerSignup, error)
}

// ErrNotificationFailed wraps mail delivery failures after a successful store.
var ErrNotificationFailed = fmt.Errorf("signup stored but notification failed")

type ServiceImpl struct {
	logger        *slog.Logger
	repo          Repository
	mailer        Mailer
	validate      *validator.Validate
	operatorEmail string
}

func NewServiceImpl(repo Repository, mailer Mailer, operatorEmail string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:        logger,
		repo:          repo,
		mailer:        mailer,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		operatorEmail: operatorEmail,
	}
}

// SubmitSignup implements Service.
func (s *ServiceImpl) SubmitSignup(ctx context.Context, params types.PartnerSignupParams) (types.PartnerSignup, error) {
	l := s.logger.With(slog.String("method", "SubmitSignup"), slog.String("venueName", params.VenueName))

	if err := s.validate.Struct(params); err != nil {
		l.WarnContext(ctx, "Signup payload failed validation", slog.Any("error", err))
		return types.PartnerSignup{}, fmt.Errorf("%w: %s", types.ErrBadRequest, validationMessage(err))
	}

	signup := types.PartnerSignup{
		ID:          uuid.New(),
		VenueName:   params.VenueName,
		ContactName: params.ContactName,
		Email:       params.Email,
		Phone:       params.Phone,
		WhatsApp:    params.WhatsApp,
		Category:    params.Category,
		Offer:       params.Offer,
		Message:     params.Message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateSignup(ctx, signup); err != nil {
		return types.PartnerSignup{}, err
	}

	if err := s.notify(ctx, signup); err != nil {
		l.ErrorContext(ctx, "Signup stored but notification failed",
			slog.String("signupID", signup.ID.String()), slog.Any("error", err))
		return signup, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	l.InfoContext(ctx, "Partner signup submitted", slog.String("signupID", signup.ID.String()))
	return signup, nil
}

func (s *ServiceImpl) notify(ctx context.Context, signup types.PartnerSignup) error {
	operatorBody := fmt.Sprintf(
		"New partner signup\n\nVenue: %s\nContact: %s\nEmail: %s\nPhone: %s\nWhatsApp: %s\nCategory: %s\n\nOffer:\n%s\n\nMessage:\n%s\n",
		signup.VenueName, signup.ContactName, signup.Email, signup.Phone,
		signup.WhatsApp, signup.Category, signup.Offer, signup.Message,
	)
	if err := s.mailer.Send(ctx, s.operatorEmail, "New partner signup: "+signup.VenueName, operatorBody); err != nil {
		return err
	}

	submitterBody := fmt.Sprintf(
		"Hi %s,\n\nThanks for applying to join the Ahangama Pass with %s. We review every application by hand and will get back to you within a few days.\n\nThe Ahangama Pass team\n",
		signup.ContactName, signup.VenueName,
	)
	return s.mailer.Send(ctx, signup.Email, "We received your Ahangama Pass application", submitterBody)
}

// validationMessage flattens a validator error into a short user-facing hint.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("invalid field %q", verrs[0].Field())
	}
	return "invalid payload"
}
