package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/google/uuid"
)

// memoryAccountRepository implements repository.AccountRepository over a
// process-memory map. All account data lives for the lifetime of the
// process only.
type memoryAccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byLogin map[string]string // login -> id
}

// NewAccountRepository creates an in-memory account repository, optionally
// pre-populated with seed accounts. Seed accounts come with their IDs and
// password hashes already set.
func NewAccountRepository(seed []domain.Account) repository.AccountRepository {
	r := &memoryAccountRepository{
		byID:    make(map[string]domain.Account),
		byLogin: make(map[string]string),
	}
	for _, a := range seed {
		r.byID[a.ID] = a
		r.byLogin[a.Login] = a.ID
	}
	return r
}

// Create stores a new account. The login must not already be taken.
func (r *memoryAccountRepository) Create(ctx context.Context, account *domain.Account) (string, error) {
	if account.Login == "" {
		return "", errors.New("account login is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[account.Login]; taken {
		return "", repository.ErrAlreadyExists
	}

	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()

	r.byID[account.ID] = *account
	r.byLogin[account.Login] = account.ID
	return account.ID, nil
}

// GetByLogin retrieves an account by its exact login.
func (r *memoryAccountRepository) GetByLogin(ctx context.Context, login string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[login]
	if !ok {
		return nil, repository.ErrNotFound
	}
	account := r.byID[id]
	return &account, nil
}

// GetByID retrieves an account by its ID.
func (r *memoryAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &account, nil
}
