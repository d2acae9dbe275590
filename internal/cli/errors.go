package cli

import (
	"errors"

	"github.com/mcoot/haunt/internal/model"
)

// Error codes
const (
	CodeUsage              = "USAGE"
	CodeNotLoggedIn        = "NOT_LOGGED_IN"
	CodeNameRequired       = "NAME_REQUIRED"
	CodeInvalidNameLength  = "INVALID_NAME_LENGTH"
	CodeNameUnavailable    = "NAME_UNAVAILABLE"
	CodeInvalidState       = "INVALID_STATE"
	CodeProviderLoginFail  = "PROVIDER_LOGIN_FAILED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Exit codes
const (
	exitFailure     = 1
	exitUsage       = 2
	exitNotLoggedIn = 3
)

var (
	errUsage        = errors.New("invalid usage")
	errNotLoggedIn  = errors.New("not logged in")
	errNameRequired = errors.New("provider account has no player yet: --name is required")
)

// CLIError is the user facing form of an error
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	exit    int
}

// Error implements error interface
func (e *CLIError) Error() string {
	return e.Message
}

// toCLIError maps domain errors to codes and exit statuses
func toCLIError(err error) *CLIError {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case errors.Is(err, errUsage):
		return &CLIError{CodeUsage, err.Error(), exitUsage}
	case errors.Is(err, errNotLoggedIn):
		return &CLIError{CodeNotLoggedIn, "Not logged in", exitNotLoggedIn}
	case errors.Is(err, errNameRequired):
		return &CLIError{CodeNameRequired, err.Error(), exitUsage}
	case errors.Is(err, model.ErrInvalidNameLength):
		return &CLIError{CodeInvalidNameLength, err.Error(), exitFailure}
	case errors.Is(err, model.ErrNameUnavailable):
		return &CLIError{CodeNameUnavailable, err.Error(), exitFailure}
	case errors.Is(err, model.ErrInvalidState):
		return &CLIError{CodeInvalidState, err.Error(), exitFailure}
	case errors.Is(err, model.ErrProviderLoginFailed):
		return &CLIError{CodeProviderLoginFail, err.Error(), exitFailure}
	case errors.Is(err, model.ErrStorageUnavailable):
		return &CLIError{CodeStorageUnavailable, err.Error(), exitFailure}
	default:
		return &CLIError{CodeInternalError, err.Error(), exitFailure}
	}
}

func exitCode(err error) int {
	return toCLIError(err).exit
}
