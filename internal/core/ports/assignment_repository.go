package ports

import (
	"context"

	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for Assignment
// entities. At most one assignment exists per delivery request; the adapter
// enforces that with a uniqueness constraint so a duplicate insert surfaces
// as ConflictError rather than a second binding.
type AssignmentRepository interface {
	// Add persists a new assignment. Inserting a second assignment for the
	// same delivery request returns ConflictError.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment (completion stamp).
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// GetByRequestID retrieves the assignment bound to a delivery request.
	// Returns NotFoundError when the request was never accepted.
	GetByRequestID(ctx context.Context, deliveryRequestID kernel.UUID) (*assignment.Assignment, error)
}
