package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a maintenance worker assigned to a single property. The
// scope resolver maps a staff-role caller to their property by
// matching Email (stored lowercased) against the token email.
type Staff struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Position    string    `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
