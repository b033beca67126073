package types

import (
	"time"

	"github.com/google/uuid"
)

// PartnerSignupParams is the payload a prospective partner venue submits
// through the signup form.
type PartnerSignupParams struct {
	VenueName   string `json:"venue_name" validate:"required,min=2,max=120"`
	ContactName string `json:"contact_name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,min=6,max=32"`
	WhatsApp    string `json:"whatsapp" validate:"omitempty,min=6,max=32"`
	Category    string `json:"category" validate:"omitempty,max=60"`
	Offer       string `json:"offer" validate:"required,min=5,max=2000"`
	Message     string `json:"message" validate:"omitempty,max=4000"`
}

// PartnerSignup is a stored signup submission.
type PartnerSignup struct {
	ID          uuid.UUID `json:"id"`
	VenueName   string    `json:"venue_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	WhatsApp    string    `json:"whatsapp,omitempty"`
	Category    string    `json:"category,omitempty"`
	Offer       string    `json:"offer"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
