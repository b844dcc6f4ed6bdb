// Package protoerr defines the sentinel errors shared by the group
// protocol handlers. Callers match with errors.Is; handlers wrap these
// with context via fmt.Errorf and %w.
package protoerr

import "errors"

var (
	// ErrInvalidMessage marks a structurally broken inbound message:
	// missing sender, missing timestamp, or a kind that cannot address the
	// declared target group. Dropped after logging, never retried.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidGroupUpdate marks an authorization failure or a missing
	// precondition for a group mutation (non-admin sender, self-removal via
	// the remove path, disbanded group).
	ErrInvalidGroupUpdate = errors.New("invalid group update")

	// ErrNoKeyPair means required key material is absent.
	ErrNoKeyPair = errors.New("no key pair")

	// ErrNotFound means a required database row is absent, such as a local
	// operation naming a group this client has never seen.
	ErrNotFound = errors.New("not found")
)
