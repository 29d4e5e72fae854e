package entity

import (
	"errors"
	"fmt"
)

// Not-found class errors. These map to a 404 at the HTTP boundary when they
// reach it directly; validation wraps catalog misses into an invalid request.
var (
	ErrListingNotFound  = errors.New("unable to find listing")
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrMarketNotFound   = errors.New("market not found")
)

// InvalidRequestError is a caller-input fault carrying a human-readable
// message, surfaced as a 422 at the HTTP boundary.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return e.Message
}

func NewInvalidRequest(format string, args ...any) *InvalidRequestError {
	return &InvalidRequestError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidRequest reports whether err is (or wraps) an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	var ire *InvalidRequestError
	return errors.As(err, &ire)
}
