// internal/errs/errs.go
//
// Error taxonomy shared by the dictionary core and its callers.
//
//   - ConfigError:        fatal, startup only (bad reference chain, missing file).
//   - InvalidInputError:  per-request rejection of a word; carries a user-facing reason.
//   - EmptyWordlistError: coverage requested for a version with no loaded words.
//   - ErrUnknownVersion:  a version label that is not in the reference map.
//
// Callers match with errors.Is / errors.As; the HTTP layer maps each kind to a status.

package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every *ConfigError via errors.Is.
	ErrConfig = errors.New("configuration error")

	// ErrUnknownVersion is returned when a label is not a key of the reference map.
	ErrUnknownVersion = errors.New("unknown version")
)

// ConfigError reports a malformed or missing startup input.
type ConfigError struct {
	Op   string // what was being done, e.g. "resolve", "read"
	Path string // file or version label involved, if any
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConfig) match any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// NewConfig wraps err as a ConfigError.
func NewConfig(op, path string, err error) error {
	return &ConfigError{Op: op, Path: path, Err: err}
}

// InvalidInputError rejects a word that fails validation.
type InvalidInputError struct {
	Word   string // normalized word (may be empty)
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Word, e.Reason)
}

// EmptyWordlistError is returned by coverage for a version with zero words.
type EmptyWordlistError struct {
	Version string
}

func (e *EmptyWordlistError) Error() string {
	return fmt.Sprintf("wordlist for version %s is empty", e.Version)
}
