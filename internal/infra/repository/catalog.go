package repository

import (
	"context"

	"inventory-reservation/internal/domain/reservation"
	"inventory-reservation/internal/infra"
	sqlc "inventory-reservation/internal/infra/sqlc/generated"
	"inventory-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	LockProductStock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int32, error)
	LockVariantStock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int32, error)
	GetProductStock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int32, error)
	GetVariantStock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int32, error)
	DecrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementProductStockParams) (int64, error)
	DecrementVariantStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementVariantStockParams) (int64, error)
}

type CatalogRepository struct {
	queries CatalogQueries
	db      sqlc.DBTX
}

func NewCatalogRepository(queries CatalogQueries, db sqlc.DBTX) *CatalogRepository {
	return &CatalogRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CatalogRepository) LockStock(ctx context.Context, tx sqlc.DBTX, target reservation.Target) (int, error) {
	var (
		stock int32
		err   error
	)
	switch target.Kind() {
	case reservation.TargetProduct:
		stock, err = r.queries.LockProductStock(ctx, tx, target.ID())
	case reservation.TargetVariant:
		stock, err = r.queries.LockVariantStock(ctx, tx, target.ID())
	default:
		return 0, reservation.ErrInvalidTarget
	}
	return stockResult(stock, err, "failed to lock stock")
}

func (r *CatalogRepository) GetStock(ctx context.Context, tx sqlc.DBTX, target reservation.Target) (int, error) {
	var (
		stock int32
		err   error
	)
	switch target.Kind() {
	case reservation.TargetProduct:
		stock, err = r.queries.GetProductStock(ctx, tx, target.ID())
	case reservation.TargetVariant:
		stock, err = r.queries.GetVariantStock(ctx, tx, target.ID())
	default:
		return 0, reservation.ErrInvalidTarget
	}
	return stockResult(stock, err, "failed to read stock")
}

// DecrementStock never takes stock below zero; a short row is a conflict.
func (r *CatalogRepository) DecrementStock(ctx context.Context, tx sqlc.DBTX, target reservation.Target, quantity int) error {
	var (
		affected int64
		err      error
	)
	// #nosec G115 -- quantity was validated against an int32 stock column
	q := int32(quantity)
	switch target.Kind() {
	case reservation.TargetProduct:
		affected, err = r.queries.DecrementProductStock(ctx, tx, sqlc.DecrementProductStockParams{Quantity: q, ID: target.ID()})
	case reservation.TargetVariant:
		affected, err = r.queries.DecrementVariantStock(ctx, tx, sqlc.DecrementVariantStockParams{Quantity: q, ID: target.ID()})
	default:
		return reservation.ErrInvalidTarget
	}
	if err != nil {
		return infra.WrapRepoErr("failed to decrement stock", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("stock row missing or below requested quantity", nil, infra.KindConflict)
	}
	return nil
}

func stockResult(stock int32, err error, msg string) (int, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("product or variant not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr(msg, err)
	}
	return int(stock), nil
}
