package homework

import (
	"errors"
	"fmt"
)

var (
	ErrNoStatus    = errors.New("no status")
	ErrNoHomeworks = errors.New("no homeworks list in response")
)

// TransportError is a failed network call to the homework API or to Telegram.
type TransportError struct {
	Op  string // "fetch" or "send"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a response body that could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError rejects a whole batch of records.
type ValidationError struct {
	Status Status
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%v: %q", e.Err, string(e.Status))
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Kind names the error variant for logs and metrics.
func Kind(err error) string {
	var (
		transportErr  *TransportError
		decodeErr     *DecodeError
		validationErr *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &validationErr):
		return "validation"
	default:
		return "unknown"
	}
}
