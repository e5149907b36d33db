// Package gitload provides sentinel errors for request execution.
// All errors can be checked using errors.Is() for programmatic handling.
package gitload

import (
	"errors"
	"fmt"

	"github.com/loadworks/gitload/internal/auth"
)

// Common sentinel errors that can be checked with errors.Is().
// Every failure a request can hit falls into exactly one of these categories;
// all of them are caught at the request boundary and become a Fail response.

// ErrUnsupportedScheme is returned when a remote URL carries a scheme outside
// {ssh, http, https}. It is detected lazily, per request, before any network
// call is attempted.
var ErrUnsupportedScheme = auth.ErrUnsupportedScheme

// ErrWorkspace is returned when local filesystem preparation fails
// (permissions, partial delete, disk exhaustion, malformed repository path).
var ErrWorkspace = errors.New("workspace preparation failed")

// ErrCommitGeneration is returned when a synthetic commit cannot be produced
// within the declared bounds.
var ErrCommitGeneration = errors.New("commit generation failed")

// ErrTransport is returned when a network operation (clone, fetch, pull,
// push) fails, including authentication failures and remote rejections.
var ErrTransport = errors.New("transport operation failed")

// ErrInvalidRequest is returned by the Invalid request variant, always.
var ErrInvalidRequest = errors.New("invalid request type")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// classify pairs a taxonomy sentinel with the underlying cause so that
// errors.Is matches either one.
func classify(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
