package converter

import (
	"inventory-reservation/internal/domain/reservation"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/errs"
	"inventory-reservation/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	productID, variantID := reservation.TargetIDs(res.Target())
	userID, sessionID := reservation.HolderIDs(res.Holder())

	return sqlc.CreateReservationParams{
		ID:        res.ID(),
		ProductID: pgconv.UUIDPtrToPgtype(productID),
		VariantID: pgconv.UUIDPtrToPgtype(variantID),
		Quantity:  int32(res.Quantity().Value()),
		UserID:    pgconv.UUIDPtrToPgtype(userID),
		SessionID: pgconv.StringPtrToPgtype(sessionID),
		ExpiresAt: pgconv.TimeToPgtype(res.ExpiresAt()),
		CreatedAt: pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

// ReservationFromInfra rebuilds the aggregate. A row that breaks the table
// constraints is reported rather than silently patched.
func ReservationFromInfra(row sqlc.StockReservations) (*reservation.Reservation, error) {
	target, err := reservation.NewTarget(
		pgconv.UUIDPtrFromPgtype(row.ProductID),
		pgconv.UUIDPtrFromPgtype(row.VariantID),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s", row.ID)
	}

	holder, err := reservation.NewHolder(
		pgconv.UUIDPtrFromPgtype(row.UserID),
		pgconv.StringPtrFromPgtype(row.SessionID),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s", row.ID)
	}

	quantity, err := reservation.NewQuantity(int(row.Quantity))
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s", row.ID)
	}

	status := reservation.Status(row.Status)
	if !status.IsValid() {
		return nil, errs.Newf("reservation %s has unknown status %q", row.ID, row.Status)
	}

	var orderID *reservation.OrderID
	if row.OrderID.Valid {
		oid, oerr := reservation.NewOrderID(row.OrderID.String)
		if oerr != nil {
			return nil, errs.Wrapf(oerr, "reservation %s", row.ID)
		}
		orderID = &oid
	}

	return reservation.ReconstructReservation(
		row.ID,
		target,
		quantity,
		holder,
		status,
		orderID,
		pgconv.TimeFromPgtype(row.ExpiresAt),
		pgconv.TimePtrFromPgtype(row.CompletedAt),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
