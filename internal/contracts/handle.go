package contracts

import (
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors shared across pipeline stages.
var (
	// ErrInvalidHandle means the author handle failed validation before
	// any pipeline stage ran.
	ErrInvalidHandle = errors.New("invalid author handle")

	// ErrNoTrades means zero trades survived aggregation. A scorecard
	// with no valid trade data is a hard error, not a degraded result.
	ErrNoTrades = errors.New("no trades with valid market data")

	// ErrNotFound means no scorecard exists for the requested handle.
	ErrNotFound = errors.New("scorecard not found")
)

// handlePattern matches valid author handles: 1-15 alphanumeric or
// underscore characters.
var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,15}$`)

// NormalizeHandle strips a leading @ and validates the handle. The
// returned handle preserves the author's casing; storage keys are
// lower-cased separately by the store.
func NormalizeHandle(handle string) (string, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if !handlePattern.MatchString(cleaned) {
		return "", ErrInvalidHandle
	}
	return cleaned, nil
}

// StorageKey returns the persistence key for a handle.
func StorageKey(handle string) string {
	return strings.ToLower(handle)
}
