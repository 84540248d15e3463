package requestrepo

import (
	"context"
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM delivery request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("delivery request already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery request by ID.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("delivery request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompareAndSwapStatus flips the request's status to next only if the stored
// row still carries one of the expected statuses. The condition runs inside
// the UPDATE itself, so under any number of concurrent callers the database
// serializes the writes and exactly one matches the expected state; everyone
// else affects zero rows and gets ConflictError.
func (r *GormRequestRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	next request.Status,
	expected ...request.Status,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if len(expected) == 0 {
		return errs.NewValidationError("expected statuses")
	}

	expectedInts := make([]int, 0, len(expected))
	for _, status := range expected {
		if err := status.Validate(); err != nil {
			return err
		}
		expectedInts = append(expectedInts, int(status))
	}

	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND status IN ?", id.Bytes(), expectedInts).
		Update("status", int(next))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("request status changed concurrently")
	}

	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// kernelUUID converts a raw database UUID to the domain value object.
func kernelUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}
