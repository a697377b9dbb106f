package deepseek

import "fmt"

// TransportError indicates the connection could not be established or timed
// out before a response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("deepseek api connection error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError indicates a non-success HTTP status from the API. The response
// body is surfaced verbatim to aid diagnosis.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("deepseek api HTTP %d: %s", e.StatusCode, e.Body)
}

// ParseError indicates the response body was not valid JSON, lacked the
// expected content field, or carried empty content. Body holds the raw
// response for diagnosis.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse deepseek response: %v: %s", e.Err, e.Body)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
