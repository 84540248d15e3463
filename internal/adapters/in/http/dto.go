package http

import (
	"time"

	"carrycampus/internal/core/application/usecases/queries"
	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/core/domain/model/request"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateRequestBody is the payload for posting a new delivery request.
// PickupLocation and RewardAmount are optional; the aggregate applies
// defaults for both.
type CreateRequestBody struct {
	PickupLocation string `json:"pickup_location"`
	DropLocation   string `json:"drop_location"`
	RewardAmount   int    `json:"reward_amount"`
	ParcelWeight   string `json:"parcel_weight"`
	ParcelType     string `json:"parcel_type"`
	ExpectedTime   string `json:"expected_time"`
}

// UpdateStatusBody is the payload for advancing a request's status.
type UpdateStatusBody struct {
	Status string `json:"status"`
}

// RequestResponse is the representation of a delivery request.
type RequestResponse struct {
	ID             string    `json:"id"`
	RequesterID    string    `json:"requester_id"`
	PickupLocation string    `json:"pickup_location"`
	DropLocation   string    `json:"drop_location"`
	RewardAmount   int       `json:"reward_amount"`
	ParcelWeight   string    `json:"parcel_weight,omitempty"`
	ParcelType     string    `json:"parcel_type,omitempty"`
	ExpectedTime   string    `json:"expected_time,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func requestResponseFrom(req *request.DeliveryRequest) RequestResponse {
	return RequestResponse{
		ID:             req.ID().String(),
		RequesterID:    req.RequesterID().String(),
		PickupLocation: req.PickupLocation(),
		DropLocation:   req.DropLocation(),
		RewardAmount:   req.RewardAmount(),
		ParcelWeight:   req.ParcelWeight(),
		ParcelType:     req.ParcelType(),
		ExpectedTime:   req.ExpectedTime(),
		Status:         req.Status().String(),
		CreatedAt:      req.CreatedAt(),
	}
}

// AssignmentResponse is the representation of an accepted delivery.
type AssignmentResponse struct {
	ID                string     `json:"id"`
	DeliveryRequestID string     `json:"delivery_request_id"`
	DeliveryPersonID  string     `json:"delivery_person_id"`
	AcceptedAt        time.Time  `json:"accepted_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func assignmentResponseFrom(asg *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                asg.ID().String(),
		DeliveryRequestID: asg.DeliveryRequestID().String(),
		DeliveryPersonID:  asg.DeliveryPersonID().String(),
		AcceptedAt:        asg.AcceptedAt(),
		CompletedAt:       asg.CompletedAt(),
	}
}

// OpenRequestResponse is one row of the open-request feed.
type OpenRequestResponse struct {
	ID               string    `json:"id"`
	RequesterID      string    `json:"requester_id"`
	RequesterName    string    `json:"requester_name,omitempty"`
	RequesterContact string    `json:"requester_contact,omitempty"`
	PickupLocation   string    `json:"pickup_location"`
	DropLocation     string    `json:"drop_location"`
	RewardAmount     int       `json:"reward_amount"`
	ParcelWeight     string    `json:"parcel_weight,omitempty"`
	ParcelType       string    `json:"parcel_type,omitempty"`
	ExpectedTime     string    `json:"expected_time,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func openRequestResponseFrom(row queries.GetOpenRequestsQueryResponse) OpenRequestResponse {
	return OpenRequestResponse{
		ID:               row.ID.String(),
		RequesterID:      row.RequesterID.String(),
		RequesterName:    row.RequesterName,
		RequesterContact: row.RequesterContact,
		PickupLocation:   row.PickupLocation,
		DropLocation:     row.DropLocation,
		RewardAmount:     row.RewardAmount,
		ParcelWeight:     row.ParcelWeight,
		ParcelType:       row.ParcelType,
		ExpectedTime:     row.ExpectedTime,
		CreatedAt:        row.CreatedAt,
	}
}

// MyRequestResponse is one of the caller's posted requests.
type MyRequestResponse struct {
	ID             string    `json:"id"`
	PickupLocation string    `json:"pickup_location"`
	DropLocation   string    `json:"drop_location"`
	RewardAmount   int       `json:"reward_amount"`
	ParcelWeight   string    `json:"parcel_weight,omitempty"`
	ParcelType     string    `json:"parcel_type,omitempty"`
	ExpectedTime   string    `json:"expected_time,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func myRequestResponseFrom(row queries.GetMyRequestsQueryResponse) MyRequestResponse {
	return MyRequestResponse{
		ID:             row.ID.String(),
		PickupLocation: row.PickupLocation,
		DropLocation:   row.DropLocation,
		RewardAmount:   row.RewardAmount,
		ParcelWeight:   row.ParcelWeight,
		ParcelType:     row.ParcelType,
		ExpectedTime:   row.ExpectedTime,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
	}
}

// MyDeliveryResponse is one delivery the caller has accepted.
type MyDeliveryResponse struct {
	RequestID        string     `json:"request_id"`
	RequesterID      string     `json:"requester_id"`
	RequesterName    string     `json:"requester_name,omitempty"`
	RequesterContact string     `json:"requester_contact,omitempty"`
	PickupLocation   string     `json:"pickup_location"`
	DropLocation     string     `json:"drop_location"`
	RewardAmount     int        `json:"reward_amount"`
	ParcelWeight     string     `json:"parcel_weight,omitempty"`
	ParcelType       string     `json:"parcel_type,omitempty"`
	ExpectedTime     string     `json:"expected_time,omitempty"`
	Status           string     `json:"status"`
	AcceptedAt       time.Time  `json:"accepted_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func myDeliveryResponseFrom(row queries.GetMyDeliveriesQueryResponse) MyDeliveryResponse {
	return MyDeliveryResponse{
		RequestID:        row.RequestID.String(),
		RequesterID:      row.RequesterID.String(),
		RequesterName:    row.RequesterName,
		RequesterContact: row.RequesterContact,
		PickupLocation:   row.PickupLocation,
		DropLocation:     row.DropLocation,
		RewardAmount:     row.RewardAmount,
		ParcelWeight:     row.ParcelWeight,
		ParcelType:       row.ParcelType,
		ExpectedTime:     row.ExpectedTime,
		Status:           row.Status,
		AcceptedAt:       row.AcceptedAt,
		CompletedAt:      row.CompletedAt,
	}
}

// WalletResponse is the caller's wallet.
type WalletResponse struct {
	UserID        string     `json:"user_id"`
	Balance       int        `json:"balance"`
	TotalEarnings int        `json:"total_earnings"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	ID                string    `json:"id"`
	DeliveryRequestID string    `json:"delivery_request_id"`
	PaidBy            string    `json:"paid_by"`
	PaidTo            string    `json:"paid_to"`
	Amount            int       `json:"amount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

func transactionResponseFrom(row queries.GetTransactionsQueryResponse) TransactionResponse {
	return TransactionResponse{
		ID:                row.ID.String(),
		DeliveryRequestID: row.DeliveryRequestID.String(),
		PaidBy:            row.PaidBy.String(),
		PaidTo:            row.PaidTo.String(),
		Amount:            row.Amount,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
	}
}

func transactionResponseFromDomain(tx *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                tx.ID().String(),
		DeliveryRequestID: tx.DeliveryRequestID().String(),
		PaidBy:            tx.PaidBy().String(),
		PaidTo:            tx.PaidTo().String(),
		Amount:            tx.Amount(),
		Status:            tx.Status().String(),
		CreatedAt:         tx.CreatedAt(),
	}
}
