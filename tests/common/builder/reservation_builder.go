//go:build unit || e2e

package builder

import (
	"time"

	"inventory-reservation/internal/domain/reservation"
	reqdto "inventory-reservation/internal/handler/dto/request"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	ProductID   *uuid.UUID
	VariantID   *uuid.UUID
	Quantity    int
	UserID      *uuid.UUID
	SessionID   *string
	Status      reservation.Status
	OrderID     *string
	TTL         time.Duration
	CreatedAt   time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	productID := uuid.New()
	userID := uuid.New()
	return &ReservationBuilder{
		ID:        uuid.New(),
		ProductID: &productID,
		Quantity:  2,
		UserID:    &userID,
		Status:    reservation.StatusActive,
		TTL:       reservation.DefaultTTL,
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) ForVariant() *ReservationBuilder {
	variantID := uuid.New()
	b.ProductID = nil
	b.VariantID = &variantID
	return b
}

func (b *ReservationBuilder) ForSession(sessionID string) *ReservationBuilder {
	b.UserID = nil
	b.SessionID = &sessionID
	return b
}

func (b *ReservationBuilder) Completed(orderID string) *ReservationBuilder {
	at := b.CreatedAt.Add(time.Minute)
	b.Status = reservation.StatusCompleted
	b.OrderID = &orderID
	b.CompletedAt = &at
	return b
}

func (b *ReservationBuilder) Released(status reservation.Status) *ReservationBuilder {
	at := b.CreatedAt.Add(time.Minute)
	b.Status = status
	b.CancelledAt = &at
	return b
}

func (b *ReservationBuilder) ExpiresAt() time.Time {
	return b.CreatedAt.Add(b.TTL)
}

func (b *ReservationBuilder) Target() reservation.Target {
	t, err := reservation.NewTarget(b.ProductID, b.VariantID)
	if err != nil {
		panic(err)
	}
	return t
}

func (b *ReservationBuilder) Holder() reservation.Holder {
	h, err := reservation.NewHolder(b.UserID, b.SessionID)
	if err != nil {
		panic(err)
	}
	return h
}

// BuildDomain reconstructs the aggregate in whatever state the builder holds.
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	q, err := reservation.NewQuantity(b.Quantity)
	if err != nil {
		panic(err)
	}
	var orderID *reservation.OrderID
	if b.OrderID != nil {
		oid, err := reservation.NewOrderID(*b.OrderID)
		if err != nil {
			panic(err)
		}
		orderID = &oid
	}
	updatedAt := b.CreatedAt
	if b.CompletedAt != nil {
		updatedAt = *b.CompletedAt
	}
	if b.CancelledAt != nil {
		updatedAt = *b.CancelledAt
	}
	return reservation.ReconstructReservation(
		b.ID, b.Target(), q, b.Holder(), b.Status, orderID,
		b.ExpiresAt(), b.CompletedAt, b.CancelledAt, b.CreatedAt, updatedAt,
	)
}

func (b *ReservationBuilder) BuildInfra() sqlc.StockReservations {
	res := b.BuildDomain()
	return sqlc.StockReservations{
		ID:          b.ID,
		ProductID:   uuidPtrToPgtype(b.ProductID),
		VariantID:   uuidPtrToPgtype(b.VariantID),
		Quantity:    int32(b.Quantity),
		UserID:      uuidPtrToPgtype(b.UserID),
		SessionID:   stringPtrToPgtype(b.SessionID),
		Status:      string(b.Status),
		OrderID:     stringPtrToPgtype(b.OrderID),
		ExpiresAt:   pgtype.Timestamptz{Time: res.ExpiresAt(), Valid: true},
		CompletedAt: timePtrToPgtype(b.CompletedAt),
		CancelledAt: timePtrToPgtype(b.CancelledAt),
		CreatedAt:   pgtype.Timestamptz{Time: res.CreatedAt(), Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: res.UpdatedAt(), Valid: true},
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	res := b.BuildDomain()
	return &queries.ReservationView{
		ID:          b.ID,
		ProductID:   b.ProductID,
		VariantID:   b.VariantID,
		Quantity:    int32(b.Quantity),
		UserID:      b.UserID,
		SessionID:   b.SessionID,
		Status:      string(b.Status),
		OrderID:     b.OrderID,
		ExpiresAt:   res.ExpiresAt(),
		CompletedAt: b.CompletedAt,
		CancelledAt: b.CancelledAt,
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}
}

func (b *ReservationBuilder) BuildReserveRequestDTO() reqdto.ReserveRequest {
	ttl := int64(b.TTL / time.Second)
	return reqdto.ReserveRequest{
		ProductID:  b.ProductID,
		VariantID:  b.VariantID,
		Quantity:   b.Quantity,
		UserID:     b.UserID,
		SessionID:  b.SessionID,
		TTLSeconds: &ttl,
	}
}

func uuidPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func stringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func timePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
