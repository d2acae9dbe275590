package model

// State is the identity session state
type State int

const (
	StateLoggedOut State = iota
	StateAwaitingName
	StateAwaitingProviderLogin
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingProviderLogin:
		return "awaiting_provider_login"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}
