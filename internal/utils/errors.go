package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrNotAdmin           = errors.New("NOT_ADMIN")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound   = errors.New("CATEGORY_NOT_FOUND")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
	ErrInvalidTransition  = errors.New("INVALID_TRANSITION")
	ErrCategoryInUse      = errors.New("CATEGORY_IN_USE")
)

// ValidationError collects human-readable form validation messages. It
// is surfaced to the user as a list without contacting the database.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return e.Messages[0]
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
