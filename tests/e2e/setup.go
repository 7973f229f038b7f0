//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"inventory-reservation/cmd/bootstrap"
	"inventory-reservation/cmd/bootstrap/components"
	"inventory-reservation/internal/infra/db"
	"inventory-reservation/internal/pkg/config"
	"inventory-reservation/internal/usecase/commands"
	"inventory-reservation/internal/usecase/queries"
	"inventory-reservation/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgStartErr  error
)

type pgEndpoint struct {
	Host string
	Port nat.Port
}

func (e pgEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, e.Host, e.Port.Port(), database)
}

type e2eApp struct {
	Router       *gin.Engine
	Config       config.Config
	Reservations commands.ReservationCommands
	Carts        commands.CartCommands
	Availability queries.AvailabilityQueries
}

// SharedSuite boots one Postgres container per test process and one
// freshly migrated database per suite. Subtests start from empty tables.
type SharedSuite struct {
	suite.Suite
	Router       *gin.Engine
	DB           *pgxpool.Pool
	Config       config.Config
	Reservations commands.ReservationCommands
	Carts        commands.CartCommands
	Availability queries.AvailabilityQueries
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	endpoint := postgresEndpoint(t)
	dbConfig := createDatabase(t, endpoint)
	require.NoError(t, migrate(dbConfig), "migration failed")

	pool, _, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(pool.Close)

	built := startApp(t, pool, dbConfig)

	s.DB = pool
	s.Router = built.Router
	s.Config = built.Config
	s.Reservations = built.Reservations
	s.Carts = built.Carts
	s.Availability = built.Availability

	slog.Info("e2e environment ready", "postgres_host", endpoint.Host, "postgres_port", endpoint.Port.Port(), "database", dbConfig.DBName)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}

func postgresEndpoint(t *testing.T) pgEndpoint {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgStartErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				// Concurrency tests open many connections at once; durability is irrelevant here.
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
					"-c", "deadlock_timeout=100ms",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return pgEndpoint{Host: host, Port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "inventory-reservation-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgStartErr, "failed to start postgres container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	return pgEndpoint{Host: host, Port: port}
}

func createDatabase(t *testing.T, endpoint pgEndpoint) config.DBConfig {
	t.Helper()

	name := "inv_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := endpoint.dsn("postgres")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	// CREATE DATABASE copies template1 and fails if another session holds it.
	backoff := 250 * time.Millisecond
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("create database failed, retrying", "attempt", attempt, "error", err.Error())
		time.Sleep(backoff)
		backoff *= 2
	}
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			slog.Warn("drop database: connect failed", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop database failed", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     endpoint.Host,
		Port:     endpoint.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 50,
	}
}

// migrate applies every migrations/*.sql file in name order.
func migrate(dbConfig config.DBConfig) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, _, err := db.Connect(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("connect for migrations: %w", err)
	}
	defer pool.Close()

	for _, file := range files {
		sqlText, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sqlText)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

// migrationsDir walks up from the package directory go test runs in.
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found above %s", dir)
		}
		dir = parent
	}
}

func startApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig) e2eApp {
	t.Helper()

	var built e2eApp
	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	app := fx.New(
		fx.Supply(cfg, pool),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		bootstrap.TracingModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&built.Router, &built.Config, &built.Reservations, &built.Carts, &built.Availability),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fx app failed to start")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})
	return built
}
