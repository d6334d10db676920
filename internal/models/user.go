package models

import "time"

// User is an identity record. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile holds the sensitive fields owned by exactly one user.
type Profile struct {
	FullName   string `json:"fullName"`
	CreditCard string `json:"creditCard"`
	SSN        string `json:"ssn"`
}

// AccountProfile is a user joined with its profile, as returned by lookups.
type AccountProfile struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	CreditCard string `json:"creditCard"`
	SSN        string `json:"ssn"`
}

// UserSummary is the non-sensitive projection returned by email search.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// DefaultProfile returns the placeholder profile created alongside every
// new registration.
func DefaultProfile() Profile {
	return Profile{
		FullName:   "New User",
		CreditCard: "0000-0000-0000-0000",
		SSN:        "000-00-0000",
	}
}
