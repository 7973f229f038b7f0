//go:build e2e

package reservation_test

import (
	"inventory-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

func productTarget(id uuid.UUID) reservation.Target { return reservation.Product(id) }

func variantTarget(id uuid.UUID) reservation.Target { return reservation.Variant(id) }
