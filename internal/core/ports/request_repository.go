// Package ports defines the contracts between the core and infrastructure.
// These interfaces enable dependency inversion and testability; the postgres
// adapters implement them for production and the inmem adapters for tests.
package ports

import (
	"context"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for the DeliveryRequest
// aggregate. Besides plain storage it carries the atomic conditional status
// write that the whole lifecycle's concurrency control rests on.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	Add(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Get retrieves a request by its unique identifier.
	// Returns NotFoundError when no such request exists.
	Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error)

	// CompareAndSwapStatus transitions the request's status to next only if
	// the PERSISTED status still matches one of expected at write time.
	//
	// This is the compare-and-swap primitive: the condition is evaluated by
	// the storage engine against the current row, not against whatever an
	// earlier read returned. If no row matches (already transitioned, or the
	// id does not exist in the expected state) the write affects zero rows
	// and a ConflictError is returned — regardless of what the caller read
	// before.
	//
	// Callers run it inside a unit of work so the status flip commits or
	// rolls back together with the rest of the operation's effects.
	CompareAndSwapStatus(
		ctx context.Context,
		id kernel.UUID,
		next request.Status,
		expected ...request.Status,
	) error
}
