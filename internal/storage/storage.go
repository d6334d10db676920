package storage

import (
	"context"
	"errors"

	"github.com/tkowalczyk/owasp-demo-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by handlers.
type UserStore interface {
	// CreateUser inserts the user and its profile as one atomic unit.
	CreateUser(ctx context.Context, email, passwordHash string, profile models.Profile) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindProfileByUserID serves the authenticated self-lookup.
	FindProfileByUserID(ctx context.Context, userID int64) (models.AccountProfile, error)
	// FindUserWithProfileByID looks up by a caller-supplied id with no
	// ownership check. It exists only for the IDOR contrast endpoint.
	FindUserWithProfileByID(ctx context.Context, id int64) (models.AccountProfile, error)
	// SearchByEmail matches emails with a parameterized LIKE.
	SearchByEmail(ctx context.Context, query string) ([]models.UserSummary, error)
	// SearchByEmailUnsafe interpolates the query into SQL verbatim. It is
	// the SQL injection demonstration and must never back a real endpoint.
	SearchByEmailUnsafe(ctx context.Context, query string) ([]models.UserSummary, error)
}
