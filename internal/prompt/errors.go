package prompt

import "fmt"

// TransportError means the completion service could not be reached or
// rejected the request (network, auth, quota)
type TransportError struct {
	Action Action
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion failed [%s]: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means the service answered but the reply is not JSON of the
// expected shape. Message keeps the raw reply.
type ParseError struct {
	Action  Action
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Action, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
