package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "iggallery"
	keyringPrefix  = "graph_token_"

	// keyringIndex holds the account IDs with a stored token
	keyringIndex = "accounts"
)

// KeyringStore implements CredentialStore using the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a keyring-based store after checking that the
// keychain accepts writes
func NewKeyringStore() (*KeyringStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// Store saves the credential in the keychain
func (k *KeyringStore) Store(cred *Credential) error {
	if cred == nil || cred.AccountID == "" {
		return ErrInvalidCredentials
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := keyring.Set(keyringService, keyringPrefix+cred.AccountID, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}

	accounts, err := k.accounts()
	if err != nil {
		return err
	}
	for _, id := range accounts {
		if id == cred.AccountID {
			return nil
		}
	}
	return k.saveAccounts(append(accounts, cred.AccountID))
}

// Retrieve gets the credential from the keychain
func (k *KeyringStore) Retrieve(accountID string) (*Credential, error) {
	if accountID == "" {
		return nil, ErrInvalidCredentials
	}

	data, err := keyring.Get(keyringService, keyringPrefix+accountID)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}
	return &cred, nil
}

// List returns the credentials named in the account index. go-keyring
// cannot enumerate entries itself.
func (k *KeyringStore) List() ([]*Credential, error) {
	accounts, err := k.accounts()
	if err != nil {
		return nil, err
	}

	creds := make([]*Credential, 0, len(accounts))
	for _, id := range accounts {
		cred, err := k.Retrieve(id)
		if err != nil {
			continue
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

// Delete removes the credential from the keychain
func (k *KeyringStore) Delete(accountID string) error {
	if accountID == "" {
		return ErrInvalidCredentials
	}

	err := keyring.Delete(keyringService, keyringPrefix+accountID)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}

	accounts, err := k.accounts()
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, id := range accounts {
		if id != accountID {
			kept = append(kept, id)
		}
	}
	return k.saveAccounts(kept)
}

// Exists checks if the keychain holds a credential for accountID
func (k *KeyringStore) Exists(accountID string) bool {
	if accountID == "" {
		return false
	}
	_, err := keyring.Get(keyringService, keyringPrefix+accountID)
	return err == nil
}

func (k *KeyringStore) accounts() ([]string, error) {
	data, err := keyring.Get(keyringService, keyringIndex)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read keyring index: %w", err)
	}

	var accounts []string
	if err := json.Unmarshal([]byte(data), &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse keyring index: %w", err)
	}
	return accounts, nil
}

func (k *KeyringStore) saveAccounts(accounts []string) error {
	if len(accounts) == 0 {
		err := keyring.Delete(keyringService, keyringIndex)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to update keyring index: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal keyring index: %w", err)
	}
	if err := keyring.Set(keyringService, keyringIndex, string(data)); err != nil {
		return fmt.Errorf("failed to update keyring index: %w", err)
	}
	return nil
}
