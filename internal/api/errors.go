package api

import "fmt"

// RemoteError is a non-2xx response from the PAM service. Body carries the
// response body verbatim so operator-facing messages from the service are
// never swallowed.
type RemoteError struct {
	Op     string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.Status, e.Body)
}

// DecodeError is a 2xx response whose body did not match the expected shape.
// The call reached the service and succeeded there; only decoding failed.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError is a failure to complete the HTTP exchange at all:
// connection refused, DNS, timeout. Requests are never retried, so for write
// operations the outcome on the server is unknown.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports invalid caller-supplied parameters. It is returned
// before any network traffic happens.
type ValidationError struct {
	Op  string
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}
