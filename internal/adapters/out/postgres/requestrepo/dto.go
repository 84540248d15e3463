// Package requestrepo provides data transfer objects and mapping functions
// for delivery request persistence. It implements the repository pattern for
// the delivery request aggregate, including the conditional status write the
// lifecycle's concurrency control depends on.
package requestrepo

import (
	"time"

	"carrycampus/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting delivery
// request aggregates. Status is indexed because the open-request feed and
// every conditional status write filter on it.
type RequestDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID    uuid.UUID `gorm:"type:uuid;index"`
	PickupLocation string
	DropLocation   string
	RewardAmount   int
	ParcelWeight   string
	ParcelType     string
	ExpectedTime   string
	Status         int `gorm:"index"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for delivery request entities.
func (RequestDTO) TableName() string {
	return "delivery_requests"
}

// fromDomain converts a delivery request aggregate to its database representation.
func fromDomain(aggregate *request.DeliveryRequest) RequestDTO {
	return RequestDTO{
		ID:             aggregate.ID().Bytes(),
		RequesterID:    aggregate.RequesterID().Bytes(),
		PickupLocation: aggregate.PickupLocation(),
		DropLocation:   aggregate.DropLocation(),
		RewardAmount:   aggregate.RewardAmount(),
		ParcelWeight:   aggregate.ParcelWeight(),
		ParcelType:     aggregate.ParcelType(),
		ExpectedTime:   aggregate.ExpectedTime(),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back to a delivery request aggregate.
func toDomain(dto RequestDTO) (*request.DeliveryRequest, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}

	requesterID, err := kernelUUID(dto.RequesterID)
	if err != nil {
		return nil, err
	}

	return request.RestoreDeliveryRequest(
		id,
		requesterID,
		dto.PickupLocation,
		dto.DropLocation,
		dto.RewardAmount,
		dto.ParcelWeight,
		dto.ParcelType,
		dto.ExpectedTime,
		request.Status(dto.Status),
		dto.CreatedAt,
	)
}
