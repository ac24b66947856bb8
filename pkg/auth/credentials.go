package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"iggallery/pkg/config"
)

// Credential is a Graph API access token stored for one account
type Credential struct {
	AccountID    string    `json:"account_id"`
	AccessToken  string    `json:"access_token"`
	LastModified time.Time `json:"last_modified"`
}

// CredentialStore is the interface for storing and retrieving credentials
type CredentialStore interface {
	// Store saves the token for an account
	Store(cred *Credential) error

	// Retrieve gets the token for a specific account
	Retrieve(accountID string) (*Credential, error)

	// List returns all stored credentials
	List() ([]*Credential, error)

	// Delete removes the token for an account
	Delete(accountID string) error

	// Exists checks if a token exists for an account
	Exists(accountID string) bool
}

// Manager handles credential storage with fallback mechanisms
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a credential manager backed by the system keychain when
// it is available, an encrypted file and the environment
func NewManager() (*Manager, error) {
	var stores []CredentialStore

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a Manager that tries stores in order
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the credential in the first store that accepts it
func (m *Manager) Store(cred *Credential) error {
	if cred == nil || cred.AccountID == "" {
		return errors.New("account ID is required")
	}
	if cred.AccessToken == "" {
		return errors.New("access token is required")
	}

	cred.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		err := store.Store(cred)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve gets the credential from the first store that has it
func (m *Manager) Retrieve(accountID string) (*Credential, error) {
	for _, store := range m.stores {
		if cred, err := store.Retrieve(accountID); err == nil && cred != nil {
			return cred, nil
		}
	}
	return nil, fmt.Errorf("%w for account: %s", ErrCredentialsNotFound, accountID)
}

// ResolveToken fills cfg.AccessToken from the stores when the configuration
// does not carry one. A configured token always wins.
func (m *Manager) ResolveToken(cfg *config.GraphConfig) error {
	if cfg.AccessToken != "" {
		return nil
	}
	if cfg.AccountID == "" {
		return errors.New("account ID is required to look up a stored token")
	}

	cred, err := m.Retrieve(cfg.AccountID)
	if err != nil {
		return err
	}
	cfg.AccessToken = cred.AccessToken
	return nil
}

// List returns the credentials of all stores, newest version per account,
// sorted by account ID
func (m *Manager) List() ([]*Credential, error) {
	byAccount := make(map[string]*Credential)

	for _, store := range m.stores {
		creds, err := store.List()
		if err != nil {
			continue
		}
		for _, cred := range creds {
			if existing, ok := byAccount[cred.AccountID]; !ok || cred.LastModified.After(existing.LastModified) {
				byAccount[cred.AccountID] = cred
			}
		}
	}

	result := make([]*Credential, 0, len(byAccount))
	for _, cred := range byAccount {
		result = append(result, cred)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AccountID < result[j].AccountID
	})
	return result, nil
}

// Delete removes the credential from every store
func (m *Manager) Delete(accountID string) error {
	var deleted bool
	var lastErr error

	for _, store := range m.stores {
		if err := store.Delete(accountID); err == nil {
			deleted = true
		} else {
			lastErr = err
		}
	}

	if deleted {
		return nil
	}
	if lastErr != nil && !errors.Is(lastErr, ErrCredentialsNotFound) && !errors.Is(lastErr, ErrStoreUnavailable) {
		return fmt.Errorf("failed to delete credentials: %w", lastErr)
	}
	return fmt.Errorf("%w for account: %s", ErrCredentialsNotFound, accountID)
}

// getConfigDir returns the per-user configuration directory
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "iggallery")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "iggallery")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "iggallery")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "iggallery")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// SanitizeCredential returns a copy with the token masked
func SanitizeCredential(cred *Credential) *Credential {
	if cred == nil {
		return nil
	}

	return &Credential{
		AccountID:    cred.AccountID,
		AccessToken:  config.MaskSecret(cred.AccessToken),
		LastModified: cred.LastModified,
	}
}

var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
