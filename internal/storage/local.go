package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jlindgren/wayfarer/internal/domain"
	"github.com/jlindgren/wayfarer/internal/logger"
)

const (
	configDir       = ".wayfarer"
	credentialsFile = "credentials.json"
)

type credentials struct {
	Token string `json:"token"`
}

// LocalStore keeps the session token in a JSON file under the user's home
// directory. Single slot, overwrite semantics.
type LocalStore struct {
	path string
	mu   sync.Mutex
}

func NewLocalStore() (*LocalStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	path := filepath.Join(homeDir, configDir, credentialsFile)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return &LocalStore{path: path}, nil
}

func (s *LocalStore) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Log("No stored credentials at %s", s.path)
			return "", nil
		}
		logger.LogError("CRED_READ", err)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		logger.LogError("CRED_UNMARSHAL", err)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	logger.Log("Credentials loaded from %s", s.path)
	return creds.Token, nil
}

func (s *LocalStore) Write(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(credentials{Token: token}, "", "  ")
	if err != nil {
		logger.LogError("CRED_MARSHAL", err)
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		logger.LogError("CRED_WRITE", err)
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	logger.Log("Credentials saved to %s", s.path)
	return nil
}

func (s *LocalStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.LogError("CRED_CLEAR", err)
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	logger.Log("Credentials cleared")
	return nil
}

// Unavailable is the store used when local storage cannot be set up at all.
// Every operation fails with ErrStorageUnavailable; the session layer treats
// that as an absent credential.
func Unavailable(cause error) domain.CredentialStore {
	return unavailableStore{cause: cause}
}

type unavailableStore struct {
	cause error
}

func (s unavailableStore) Read() (string, error) {
	return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, s.cause)
}

func (s unavailableStore) Write(string) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, s.cause)
}

func (s unavailableStore) Clear() error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, s.cause)
}
