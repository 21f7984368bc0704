// Package api talks to the PrivateMe backend over HTTP/JSON.
package api

import "context"

// Gateway is the remote blob store contract consumed by the sync layer.
// Payloads are opaque; keys are scoped to (owner, noteID) and pushes are
// idempotent overwrites.
type Gateway interface {
	// Push uploads the payload under the (owner, noteID) key. Transient
	// failures surface as common.ErrRemote and are safe to retry.
	Push(ctx context.Context, owner, noteID, payload string) error

	// Pull retrieves the previously pushed payload, common.ErrNotFound if
	// nothing was ever pushed for that key, common.ErrRemote otherwise.
	Pull(ctx context.Context, owner, noteID string) (string, error)

	// HealthCheck is a best-effort liveness probe. It only gates whether
	// a sync pass is attempted, never correctness.
	HealthCheck(ctx context.Context) error
}
