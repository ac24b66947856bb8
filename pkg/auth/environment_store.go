package auth

import (
	"os"
	"time"
)

const (
	envAccessToken = "IG_ACCESS_TOKEN"
	envAccountID   = "IG_USER_ID"
)

// EnvironmentStore is a read-only CredentialStore over IG_ACCESS_TOKEN and
// IG_USER_ID
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment token. When IG_USER_ID is set it must
// match accountID.
func (e *EnvironmentStore) Retrieve(accountID string) (*Credential, error) {
	token := os.Getenv(envAccessToken)
	if token == "" {
		return nil, ErrCredentialsNotFound
	}

	envAccount := os.Getenv(envAccountID)
	if envAccount != "" && accountID != "" && envAccount != accountID {
		return nil, ErrCredentialsNotFound
	}
	if accountID == "" {
		accountID = envAccount
	}

	return &Credential{
		AccountID:    accountID,
		AccessToken:  token,
		LastModified: time.Now(),
	}, nil
}

// List returns the environment credential when one is set
func (e *EnvironmentStore) List() ([]*Credential, error) {
	cred, err := e.Retrieve("")
	if err != nil {
		return []*Credential{}, nil
	}
	return []*Credential{cred}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(accountID string) error {
	return ErrStoreUnavailable
}

// Exists checks if an environment token applies to accountID
func (e *EnvironmentStore) Exists(accountID string) bool {
	_, err := e.Retrieve(accountID)
	return err == nil
}
