package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/tkowalczyk/owasp-demo-be/internal/models"
	"github.com/tkowalczyk/owasp-demo-be/internal/storage"
)

// fakeStore is an in-memory storage.UserStore for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[string]models.User // keyed by email
	profiles map[int64]models.Profile

	failCreate error // injected fault for the 500 paths
}

var _ storage.UserStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		users:    map[string]models.User{},
		profiles: map[int64]models.Profile{},
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, email, passwordHash string, profile models.Profile) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return models.User{}, f.failCreate
	}
	if _, ok := f.users[email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	user := models.User{ID: f.nextID, Email: email, PasswordHash: passwordHash}
	f.nextID++
	f.users[email] = user
	f.profiles[user.ID] = profile
	return user, nil
}

func (f *fakeStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) FindProfileByUserID(ctx context.Context, userID int64) (models.AccountProfile, error) {
	return f.lookup(userID)
}

func (f *fakeStore) FindUserWithProfileByID(ctx context.Context, id int64) (models.AccountProfile, error) {
	return f.lookup(id)
}

func (f *fakeStore) lookup(id int64) (models.AccountProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok {
		return models.AccountProfile{}, storage.ErrNotFound
	}
	for _, user := range f.users {
		if user.ID == id {
			return models.AccountProfile{
				ID:         id,
				Email:      user.Email,
				FullName:   profile.FullName,
				CreditCard: profile.CreditCard,
				SSN:        profile.SSN,
			}, nil
		}
	}
	return models.AccountProfile{}, storage.ErrNotFound
}

func (f *fakeStore) SearchByEmail(ctx context.Context, query string) ([]models.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := []models.UserSummary{}
	for email, user := range f.users {
		if strings.Contains(email, query) {
			results = append(results, models.UserSummary{ID: user.ID, Email: email})
		}
	}
	return results, nil
}

func (f *fakeStore) SearchByEmailUnsafe(ctx context.Context, query string) ([]models.UserSummary, error) {
	// The fake has no SQL to inject into; mimic the tautology bypass so the
	// contrast endpoint stays exercisable in tests.
	if strings.Contains(query, "' OR '1'='1") {
		f.mu.Lock()
		defer f.mu.Unlock()
		results := []models.UserSummary{}
		for email, user := range f.users {
			results = append(results, models.UserSummary{ID: user.ID, Email: email})
		}
		return results, nil
	}
	return f.SearchByEmail(ctx, query)
}
