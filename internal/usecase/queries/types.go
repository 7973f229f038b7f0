package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	Quantity    int32      `json:"quantity"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	SessionID   *string    `json:"session_id,omitempty"`
	Status      string     `json:"status"`
	OrderID     *string    `json:"order_id,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AvailabilityView is the stock picture of a single product or variant
type AvailabilityView struct {
	TargetKind string    `json:"target_kind"`
	TargetID   uuid.UUID `json:"target_id"`
	TotalStock int       `json:"total_stock"`
	Held       int       `json:"held"`
	Available  int       `json:"available"`
}

type UnavailableItem struct {
	TargetKind string    `json:"target_kind"`
	TargetID   uuid.UUID `json:"target_id"`
	Requested  int       `json:"requested"`
	Available  int       `json:"available"`
}

// AvailabilityReport answers a cart pre-flight. UnavailableItems is empty when
// Available is true.
type AvailabilityReport struct {
	Available        bool              `json:"available"`
	UnavailableItems []UnavailableItem `json:"unavailable_items"`
}
