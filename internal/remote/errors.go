package remote

import (
	"errors"
	"fmt"
)

// NetworkError is a transport failure: the request could not be sent, the
// connection broke, or the server answered with a non-2xx status.
type NetworkError struct {
	Op     string
	Status int // 0 when no response was received
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: http status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is a response body that is not JSON or does not fit the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("%s: decode: %v", e.Op, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusFailed is the operator-facing text for any sync failure.
const StatusFailed = "failed"

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// StatusText maps err to the short status line. Both error kinds read the same.
func StatusText(err error) string {
	if err == nil {
		return "ok"
	}
	return StatusFailed
}
