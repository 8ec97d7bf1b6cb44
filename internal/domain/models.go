package domain

type SessionState int

const (
	StateUnknown SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

type Trip struct {
	ID       string
	Name     string
	Location string
	Image    string
	Rating   float64
}

type Profile struct {
	Name  string
	Email string
}

// AuthResult is the backend's answer to a login or signup request.
// A successful signup may come back without a token, meaning the account
// exists but the user still has to log in.
type AuthResult struct {
	Success bool
	Token   string
	Message string
}
