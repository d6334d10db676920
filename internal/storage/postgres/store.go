package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tkowalczyk/owasp-demo-be/internal/auth"
	"github.com/tkowalczyk/owasp-demo-be/internal/models"
	"github.com/tkowalczyk/owasp-demo-be/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store provides Postgres-backed persistence for users and profiles.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new Store, runs migrations, and seeds sample data.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.seed(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
			full_name TEXT NOT NULL,
			credit_card TEXT NOT NULL,
			ssn TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// seed inserts the demo accounts the walkthrough relies on, once.
func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		email, password string
		profile         models.Profile
	}{
		{"user1@example.com", "password1",
			models.Profile{FullName: "John Doe", CreditCard: "4111-1111-1111-1111", SSN: "123-45-6789"}},
		{"user2@example.com", "password2",
			models.Profile{FullName: "Jane Smith", CreditCard: "4242-4242-4242-4242", SSN: "987-65-4321"}},
		{"user3@example.com", "password3",
			models.Profile{FullName: "Bob Johnson", CreditCard: "5555-5555-5555-5555", SSN: "111-22-3333"}},
	}
	for _, sample := range samples {
		hash, err := auth.HashPassword(sample.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := s.CreateUser(ctx, sample.email, hash, sample.profile); err != nil {
			return fmt.Errorf("seed %s: %w", sample.email, err)
		}
	}
	return nil
}

// CreateUser inserts the user row and its profile row inside one transaction
// so a profile failure never leaves an orphan account.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, profile models.Profile) (models.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var user models.User
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2)
		 RETURNING id, email, password_hash, created_at`,
		email, passwordHash,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_profiles (user_id, full_name, credit_card, ssn) VALUES ($1, $2, $3, $4)`,
		user.ID, profile.FullName, profile.CreditCard, profile.SSN,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.User{}, fmt.Errorf("commit: %w", err)
	}
	return user, nil
}

// FindByEmail fetches a user by its exact email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindProfileByUserID joins the user with its profile for the self-lookup.
func (s *Store) FindProfileByUserID(ctx context.Context, userID int64) (models.AccountProfile, error) {
	return s.findAccountProfile(ctx, userID)
}

// FindUserWithProfileByID is identical to FindProfileByUserID except the id
// comes straight from the client. Kept separate so the contrast endpoint is
// obvious at the call site.
func (s *Store) FindUserWithProfileByID(ctx context.Context, id int64) (models.AccountProfile, error) {
	return s.findAccountProfile(ctx, id)
}

func (s *Store) findAccountProfile(ctx context.Context, id int64) (models.AccountProfile, error) {
	var ap models.AccountProfile
	err := s.pool.QueryRow(ctx,
		`SELECT u.id, u.email, p.full_name, p.credit_card, p.ssn
		 FROM users u JOIN user_profiles p ON u.id = p.user_id
		 WHERE u.id = $1`,
		id,
	).Scan(&ap.ID, &ap.Email, &ap.FullName, &ap.CreditCard, &ap.SSN)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AccountProfile{}, storage.ErrNotFound
		}
		return models.AccountProfile{}, err
	}
	return ap, nil
}

// SearchByEmail matches emails with a parameterized LIKE.
func (s *Store) SearchByEmail(ctx context.Context, query string) ([]models.UserSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email FROM users WHERE email LIKE $1 ORDER BY id`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

// SearchByEmailUnsafe builds the statement by string concatenation.
// VULNERABLE: this is the SQL injection demonstration; a query such as
// ' OR '1'='1 matches every row.
func (s *Store) SearchByEmailUnsafe(ctx context.Context, query string) ([]models.UserSummary, error) {
	stmt := fmt.Sprintf(`SELECT id, email FROM users WHERE email LIKE '%%%s%%' ORDER BY id`, query)
	rows, err := s.pool.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]models.UserSummary, error) {
	defer rows.Close()
	results := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Email); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}
