package request

import (
	"time"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveRequest struct {
	ProductID  *uuid.UUID `json:"productId,omitempty"`
	VariantID  *uuid.UUID `json:"variantId,omitempty"`
	Quantity   int        `json:"quantity"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	SessionID  *string    `json:"sessionId,omitempty"`
	TTLSeconds *int64     `json:"ttlSeconds,omitempty"`
}

func (r ReserveRequest) ToParams() (commands.ReserveParams, error) {
	target, err := reservation.NewTarget(r.ProductID, r.VariantID)
	if err != nil {
		return commands.ReserveParams{}, err
	}
	holder, err := reservation.NewHolder(r.UserID, r.SessionID)
	if err != nil {
		return commands.ReserveParams{}, err
	}
	ttl, err := ttlFromSeconds(r.TTLSeconds)
	if err != nil {
		return commands.ReserveParams{}, err
	}
	return commands.ReserveParams{
		Target:   target,
		Quantity: r.Quantity,
		Holder:   holder,
		TTL:      ttl,
	}, nil
}

type ReleaseRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CompleteRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

type LineItemRequest struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	Quantity  int        `json:"quantity"`
}

func (r LineItemRequest) ToDomain() (reservation.LineItem, error) {
	target, err := reservation.NewTarget(r.ProductID, r.VariantID)
	if err != nil {
		return reservation.LineItem{}, err
	}
	return reservation.LineItem{Target: target, Quantity: r.Quantity}, nil
}

func LineItemsToDomain(items []LineItemRequest) ([]reservation.LineItem, error) {
	out := make([]reservation.LineItem, 0, len(items))
	for _, item := range items {
		li, err := item.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, li)
	}
	return out, nil
}

type ReserveCartRequest struct {
	Items      []LineItemRequest `json:"items" binding:"required"`
	UserID     *uuid.UUID        `json:"userId,omitempty"`
	SessionID  *string           `json:"sessionId,omitempty"`
	TTLSeconds *int64            `json:"ttlSeconds,omitempty"`
}

func (r ReserveCartRequest) Holder() (reservation.Holder, error) {
	return reservation.NewHolder(r.UserID, r.SessionID)
}

func (r ReserveCartRequest) TTL() (*time.Duration, error) {
	return ttlFromSeconds(r.TTLSeconds)
}

type CompleteCartRequest struct {
	ReservationIDs []uuid.UUID `json:"reservationIds" binding:"required"`
	OrderID        string      `json:"orderId" binding:"required"`
}

type CancelCartRequest struct {
	ReservationIDs []uuid.UUID `json:"reservationIds" binding:"required"`
}

type CheckAvailabilityRequest struct {
	Items []LineItemRequest `json:"items" binding:"required"`
}

// ttlFromSeconds range-checks before converting; seconds times 1e9 overflows
// int64 for inputs a client can easily send.
func ttlFromSeconds(secs *int64) (*time.Duration, error) {
	if secs == nil {
		return nil, nil
	}
	if *secs < 0 || *secs > int64(reservation.MaxTTL/time.Second) {
		return nil, reservation.ErrInvalidTTL
	}
	ttl := time.Duration(*secs) * time.Second
	return &ttl, nil
}
