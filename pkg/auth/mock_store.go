package auth

import (
	"sync"
)

// MockStore is an in-memory CredentialStore for tests
type MockStore struct {
	creds map[string]*Credential
	mu    sync.RWMutex

	// Error injection
	StoreError    error
	RetrieveError error
	ListError     error
	DeleteError   error
}

// NewMockStore creates a new mock credential store
func NewMockStore() *MockStore {
	return &MockStore{
		creds: make(map[string]*Credential),
	}
}

func (m *MockStore) Store(cred *Credential) error {
	if m.StoreError != nil {
		return m.StoreError
	}
	if cred == nil || cred.AccountID == "" {
		return ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c := *cred
	m.creds[cred.AccountID] = &c
	return nil
}

func (m *MockStore) Retrieve(accountID string) (*Credential, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}
	if accountID == "" {
		return nil, ErrInvalidCredentials
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	cred, ok := m.creds[accountID]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	c := *cred
	return &c, nil
}

func (m *MockStore) List() ([]*Credential, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*Credential, 0, len(m.creds))
	for _, cred := range m.creds {
		c := *cred
		result = append(result, &c)
	}
	return result, nil
}

func (m *MockStore) Delete(accountID string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if accountID == "" {
		return ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creds[accountID]; !ok {
		return ErrCredentialsNotFound
	}
	delete(m.creds, accountID)
	return nil
}

func (m *MockStore) Exists(accountID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.creds[accountID]
	return ok
}

// Count returns the number of stored credentials
func (m *MockStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.creds)
}

// NewMockManager creates a Manager over a single MockStore
func NewMockManager() (*Manager, *MockStore) {
	store := NewMockStore()
	return NewManagerWithStores(store), store
}
