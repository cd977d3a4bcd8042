package identity

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by lowercase email
}

// NewMemoryRepository builds an in-memory account store for development and
// testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(account.Email)
	if _, exists := r.accounts[key]; exists {
		return ErrEmailTaken
	}
	r.accounts[key] = account
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[strings.ToLower(email)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

func (r *memoryRepository) Update(_ context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, existing := range r.accounts {
		if existing.ID == account.ID {
			account.Email = existing.Email
			account.UpdatedAt = time.Now().UTC()
			r.accounts[key] = account
			return nil
		}
	}
	return ErrAccountNotFound
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, account := range r.accounts {
		if account.ID == id {
			delete(r.accounts, key)
			return nil
		}
	}
	return ErrAccountNotFound
}
