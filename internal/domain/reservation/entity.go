package reservation

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTTL = 15 * time.Minute
	// MaxTTL bounds the checkout window. Longer holds are stock that never
	// comes back on its own.
	MaxTTL = 24 * time.Hour
)

type Reservation struct {
	id          uuid.UUID
	target      Target
	quantity    Quantity
	holder      Holder
	status      Status
	orderID     *OrderID
	expiresAt   time.Time
	completedAt *time.Time
	cancelledAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(target Target, quantity int, holder Holder, ttl time.Duration, now time.Time) (*Reservation, error) {
	t, err := ValidTarget(target)
	if err != nil {
		return nil, err
	}
	h, err := ValidHolder(holder)
	if err != nil {
		return nil, err
	}
	q, err := NewQuantity(quantity)
	if err != nil {
		return nil, err
	}
	if ttl < 0 || ttl > MaxTTL {
		return nil, ErrInvalidTTL
	}

	return &Reservation{
		id:        uuid.New(),
		target:    t,
		quantity:  q,
		holder:    h,
		status:    StatusActive,
		expiresAt: now.Add(ttl),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	target Target,
	quantity Quantity,
	holder Holder,
	status Status,
	orderID *OrderID,
	expiresAt time.Time,
	completedAt, cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		target:      target,
		quantity:    quantity,
		holder:      holder,
		status:      status,
		orderID:     orderID,
		expiresAt:   expiresAt,
		completedAt: completedAt,
		cancelledAt: cancelledAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Lapsed reports whether the checkout window is over at now. A zero TTL
// reservation is lapsed from the moment it is created.
func (r *Reservation) Lapsed(now time.Time) bool {
	return !now.Before(r.expiresAt)
}

// Holds reports whether the reservation still counts against availability.
func (r *Reservation) Holds(now time.Time) bool {
	return r.status == StatusActive && !r.Lapsed(now)
}

// Complete moves an active reservation to completed. Completing an already
// completed reservation with the same order id reports replayed=true and
// changes nothing.
func (r *Reservation) Complete(orderID OrderID, now time.Time) (replayed bool, err error) {
	if orderID.IsZero() {
		return false, ErrInvalidOrderID
	}
	if r.status == StatusCompleted && r.orderID != nil && *r.orderID == orderID {
		return true, nil
	}
	if r.status != StatusActive {
		return false, NewInvalidStateError(r.id, r.status, "complete")
	}
	if r.Lapsed(now) {
		return false, NewInvalidStateError(r.id, StatusExpired, "complete")
	}

	r.status = StatusCompleted
	r.orderID = &orderID
	r.completedAt = &now
	r.updatedAt = now
	return false, nil
}

// Release moves an active reservation to the reason's terminal status and
// reports whether anything changed.
func (r *Reservation) Release(reason ReleaseReason, now time.Time) bool {
	if r.status != StatusActive {
		return false
	}
	r.status = reason.Status()
	r.cancelledAt = &now
	r.updatedAt = now
	return true
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) Target() Target          { return r.target }
func (r *Reservation) Quantity() Quantity      { return r.quantity }
func (r *Reservation) Holder() Holder          { return r.holder }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) OrderID() *OrderID       { return r.orderID }
func (r *Reservation) ExpiresAt() time.Time    { return r.expiresAt }
func (r *Reservation) CompletedAt() *time.Time { return r.completedAt }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
