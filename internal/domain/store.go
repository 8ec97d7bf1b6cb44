package domain

// CredentialStore persists the single session token across restarts.
// Read returns "" when no token is stored.
type CredentialStore interface {
	Read() (string, error)

	Write(token string) error

	Clear() error
}
