package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/fieldworks/auth-core/internal/core/domain"
	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Ensure MockAccountStore implements AccountStore
var _ driven.AccountStore = (*MockAccountStore)(nil)

// MockAccountStore is an in-memory AccountStore for testing
type MockAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	byEmail  map[string]*domain.Account

	// GetCalls counts lookups, letting tests assert that a rejected
	// request never reached the store
	GetCalls int
}

// NewMockAccountStore creates a new MockAccountStore
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]*domain.Account),
	}
}

func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[account.Email]; ok {
		return domain.ErrEmailTaken
	}
	cp := *account
	m.accounts[account.ID] = &cp
	m.byEmail[account.Email] = &cp
	return nil
}

func (m *MockAccountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (m *MockAccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Account
	for _, account := range m.accounts {
		cp := *account
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockAccountStore) Update(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if other, ok := m.byEmail[account.Email]; ok && other.ID != account.ID {
		return domain.ErrEmailTaken
	}
	delete(m.byEmail, existing.Email)
	cp := *account
	m.accounts[account.ID] = &cp
	m.byEmail[account.Email] = &cp
	return nil
}

func (m *MockAccountStore) SetRefreshToken(ctx context.Context, id string, token *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.RefreshToken = token
	return nil
}

func (m *MockAccountStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.byEmail, account.Email)
	delete(m.accounts, id)
	return nil
}

// Helper methods for testing

func (m *MockAccountStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// StoredRefreshToken returns the raw refresh token column for an
// account, bypassing sanitization, so tests can observe rotation.
func (m *MockAccountStore) StoredRefreshToken(id string) *string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil
	}
	return account.RefreshToken
}
