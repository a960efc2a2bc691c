package lister

import (
	"errors"
	"fmt"
	"time"
)

var ErrResponseTooLarge = errors.New("models response too large")

// DiscoveryError wraps a failed list models call with context
type DiscoveryError struct {
	Err        error
	HostURL    string
	Client     string
	Operation  string
	StatusCode int
	Latency    time.Duration
}

func (e *DiscoveryError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("list models %s failed for %s (client: %s, status: %d, latency: %v): %v",
			e.Operation, e.HostURL, e.Client, e.StatusCode, e.Latency, e.Err)
	}
	return fmt.Sprintf("list models %s failed for %s (client: %s, latency: %v): %v",
		e.Operation, e.HostURL, e.Client, e.Latency, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

func NewDiscoveryError(hostURL, client, operation string, statusCode int, latency time.Duration, err error) *DiscoveryError {
	return &DiscoveryError{
		HostURL:    hostURL,
		Client:     client,
		Operation:  operation,
		StatusCode: statusCode,
		Latency:    latency,
		Err:        err,
	}
}

// ParseError indicates the models response could not be understood
type ParseError struct {
	Err    error
	Format string
	Data   []byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NetworkError indicates a network-level failure
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnreachable reports whether err means the server could not be contacted at
// all, as opposed to answering with something we didn't like.
func IsUnreachable(err error) bool {
	var networkError *NetworkError
	return errors.As(err, &networkError)
}
