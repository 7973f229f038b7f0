package reservation

import (
	"fmt"

	"inventory-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Caller bugs. Never retried.
var (
	ErrInvalidArgument      = errs.New("invalid argument")
	ErrInvalidTarget        = errs.Mark(errs.New("exactly one of product or variant must be set"), ErrInvalidArgument)
	ErrInvalidHolder        = errs.Mark(errs.New("exactly one of user or session must be set"), ErrInvalidArgument)
	ErrInvalidQuantity      = errs.Mark(errs.New("quantity must be positive"), ErrInvalidArgument)
	ErrInvalidTTL           = errs.Mark(errs.New("ttl must be between 0 and 24h"), ErrInvalidArgument)
	ErrInvalidOrderID       = errs.Mark(errs.New("order id is required"), ErrInvalidArgument)
	ErrInvalidReleaseReason = errs.Mark(errs.New("release reason must be cancelled or expired"), ErrInvalidArgument)
	ErrEmptyCart            = errs.Mark(errs.New("cart has no items"), ErrInvalidArgument)
)

var (
	ErrInsufficientStock   = errs.New("insufficient stock")
	ErrInvalidState        = errs.New("invalid reservation state")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrTargetNotFound      = errs.New("product or variant not found")
	// ErrStockShortfall: catalog stock was lowered under an active hold, so
	// completion cannot succeed until stock is restored.
	ErrStockShortfall = errs.New("catalog stock no longer covers the reservation")
)

type InsufficientStockError struct {
	Target    Target
	Requested int
	Available int
}

func NewInsufficientStockError(target Target, requested, available int) error {
	return errs.Mark(&InsufficientStockError{Target: target, Requested: requested, Available: available}, ErrInsufficientStock)
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Target, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type InvalidStateError struct {
	ReservationID uuid.UUID
	Status        Status
	Operation     string
}

func NewInvalidStateError(id uuid.UUID, status Status, op string) error {
	return errs.Mark(&InvalidStateError{ReservationID: id, Status: status, Operation: op}, ErrInvalidState)
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s reservation %s in status %s", e.Operation, e.ReservationID, e.Status)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
