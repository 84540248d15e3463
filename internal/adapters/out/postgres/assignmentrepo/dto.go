// Package assignmentrepo provides data transfer objects and mapping
// functions for assignment persistence. The unique index on the delivery
// request id enforces at most one assignment per request at the storage
// level.
package assignmentrepo

import (
	"time"

	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryRequestID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DeliveryPersonID  uuid.UUID `gorm:"type:uuid;index"`
	AcceptedAt        time.Time
	CompletedAt       *time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment entity to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                aggregate.ID().Bytes(),
		DeliveryRequestID: aggregate.DeliveryRequestID().Bytes(),
		DeliveryPersonID:  aggregate.DeliveryPersonID().Bytes(),
		AcceptedAt:        aggregate.AcceptedAt(),
		CompletedAt:       aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO back to an assignment entity.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryRequestID, err := kernel.UUIDFromBytes(dto.DeliveryRequestID[:])
	if err != nil {
		return nil, err
	}

	deliveryPersonID, err := kernel.UUIDFromBytes(dto.DeliveryPersonID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id,
		deliveryRequestID,
		deliveryPersonID,
		dto.AcceptedAt,
		dto.CompletedAt,
	)
}
