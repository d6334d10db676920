package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs validation rules for registration payloads.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both fields but deliberately skips format checks so a
// malformed email still produces the same generic credentials failure.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type SearchRequest struct {
	Query string `json:"query"`
}

// Validate bounds the search term. The vulnerable endpoint skips even this.
func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required, validation.Length(1, 255)),
	)
}

// LoginUser is the user payload embedded in a successful login response.
type LoginUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// ProfileResponse masks the card number and omits the SSN entirely.
type ProfileResponse struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	LastFourDigits string `json:"lastFourDigits"`
}
