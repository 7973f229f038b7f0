package response

import (
	"time"

	"inventory-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	VariantID   *uuid.UUID `json:"variantId,omitempty"`
	Quantity    int32      `json:"quantity"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	SessionID   *string    `json:"sessionId,omitempty"`
	Status      string     `json:"status"`
	OrderID     *string    `json:"orderId,omitempty"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func FromReservationView(rm *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, rm); err != nil {
		return nil, err
	}
	return &resp, nil
}

type ReserveResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
}

type ReleaseResponse struct {
	Released bool `json:"released"`
}

type CompleteResponse struct {
	Completed bool `json:"completed"`
}

type CartReserveResponse struct {
	ReservationIDs []uuid.UUID `json:"reservationIds"`
}

type CartCancelResponse struct {
	Released int `json:"released"`
}

type CleanupResponse struct {
	Expired int `json:"expired"`
}
