//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"inventory-reservation/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateProduct(t *testing.T, db DBLike, name string, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, stock) VALUES ($1, $2, $3)", id, name, stock)
	require.NoError(t, err)
	return id
}

func CreateVariant(t *testing.T, db DBLike, productID uuid.UUID, name string, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO product_variants (id, product_id, name, stock) VALUES ($1, $2, $3, $4)", id, productID, name, stock)
	require.NoError(t, err)
	return id
}

// StockOf reads the catalog stock of a product or variant directly.
func StockOf(t *testing.T, db DBLike, target reservation.Target) int {
	t.Helper()

	table := "products"
	if target.Kind() == reservation.TargetVariant {
		table = "product_variants"
	}
	var stock int
	err := db.QueryRow(context.Background(), "SELECT stock FROM "+table+" WHERE id = $1", target.ID()).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func ReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM stock_reservations WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// CountReservations counts rows for a target in the given status.
func CountReservations(t *testing.T, db DBLike, target reservation.Target, status reservation.Status) int {
	t.Helper()

	column := "product_id"
	if target.Kind() == reservation.TargetVariant {
		column = "variant_id"
	}
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM stock_reservations WHERE "+column+" = $1 AND status = $2",
		target.ID(), string(status)).Scan(&n)
	require.NoError(t, err)
	return n
}

// BackdateReservation moves expires_at into the past so the row counts as lapsed.
func BackdateReservation(t *testing.T, db DBLike, id uuid.UUID, by time.Duration) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE stock_reservations SET expires_at = expires_at - $2::interval WHERE id = $1",
		id, fmt.Sprintf("%d milliseconds", by.Milliseconds()))
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
