package model

import (
	"strings"
	"time"
)

// Customer is the system-of-record customer entity
type Customer struct {
	ID            int64     `json:"id" bson:"_id"`
	FirstName     string    `json:"first_name" bson:"firstName"`
	LastName      string    `json:"last_name" bson:"lastName"`
	Email         string    `json:"email" bson:"email"`
	ContactNumber *string   `json:"contact_number" bson:"contactNumber"`
	CreatedAt     time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updatedAt"`
}

// NewCustomer is the payload for customer creation
type NewCustomer struct {
	FirstName     string  `json:"first_name" validate:"required,max=255"`
	LastName      string  `json:"last_name" validate:"required,max=255"`
	Email         string  `json:"email" validate:"required,max=255,email,email_dns"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
}

// PatchCustomer is the payload for partial customer update, any field
// left unset keeps its current value
type PatchCustomer struct {
	ID            int64   `json:"-"`
	FirstName     *string `json:"first_name" validate:"omitempty,max=255"`
	LastName      *string `json:"last_name" validate:"omitempty,max=255"`
	Email         *string `json:"email" validate:"omitempty,max=255,email,email_dns"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
}

// MergePatch applies present patch fields on top of the current state
func (c Customer) MergePatch(patch PatchCustomer) Customer {
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}

	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}

	if patch.Email != nil {
		c.Email = NormalizeEmail(*patch.Email)
	}

	if patch.ContactNumber != nil {
		s := *patch.ContactNumber
		c.ContactNumber = &s
	}
	return c
}

// NormalizeEmail lower-cases and trims an email address. Uniqueness is
// therefore case-insensitive regardless of the store's collation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
