package nomis

import (
	"errors"
	"fmt"
	"net"
)

// NetworkError reports a fetch that never got a response: refused
// connection, DNS failure, timeout.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error contacting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the fetch ran out of time.
func (e *NetworkError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// RemoteError reports a response the client cannot use: a non-2xx status,
// or a 2xx body that does not decode as a table.
type RemoteError struct {
	URL        string
	StatusCode int
	Body       string // first bytes of the body
	Err        error  // decode failure, nil for status errors
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unusable response from %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error { return e.Err }
