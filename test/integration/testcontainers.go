package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/lecture-eval/pkg/audit"
	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/db"
	"github.com/doodlesbykumbi/lecture-eval/pkg/logging"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/lecture-eval/pkg/server/store/gorm"
)

// AdminSecret signs admin tokens accepted by the test server
const AdminSecret = "integration-admin-secret"

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	ServerURL   string
	DatabaseURL string
	HTTPClient  *http.Client
	Server      *server.Server
	listener    net.Listener
}

// NewTestContext starts a PostgreSQL testcontainer, migrates it and serves
// the API in-process against it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("eval_test"),
		tcpostgres.WithUsername("eval"),
		tcpostgres.WithPassword("eval"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := runMigrations(migrationsDir, connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	database, err := db.Connect(db.Config{URL: connStr, LogLevel: logging.LevelNone})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	rawDB, err := database.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	tc := &TestContext{
		DB:          database,
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}

	if err := tc.startServer(); err != nil {
		tc.Close(ctx)
		return nil, err
	}

	if err := waitForServer(tc.ServerURL, 30*time.Second); err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return tc, nil
}

func (tc *TestContext) startServer() error {
	cfg := config.Default()
	cfg.StorageBackend = config.BackendPostgres
	cfg.AdminTokenSecret = AdminSecret
	cfg.AuditEnabled = true

	stores := server.Stores{
		Users:       gormstore.NewUsersStore(tc.DB),
		Lecturers:   gormstore.NewLecturersStore(tc.DB),
		Evaluations: gormstore.NewEvaluationsStore(tc.DB),
		Health:      gormstore.NewHealthStore(tc.DB),
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	_, port, _ := net.SplitHostPort(listener.Addr().String())

	logger := logging.MustGetLogger(logging.LevelNone)
	s := server.NewServer(stores, cfg, logger, "127.0.0.1", port)

	auditLogger := audit.NewLogger()
	auditLogger.SetWriter(os.Stderr)
	s.Auditor = audit.NewAuditor(auditLogger, audit.NewStoreWithDB(tc.RawDB), logger, true)

	if err := endpoints.RegisterAll(s); err != nil {
		_ = listener.Close()
		return err
	}

	go func() {
		if err := s.StartWithListener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("test server stopped: %v", err)
		}
	}()

	tc.Server = s
	tc.listener = listener
	tc.ServerURL = "http://" + listener.Addr().String()
	return nil
}

// Reset empties every table between scenarios
func (tc *TestContext) Reset() error {
	return tc.DB.Exec(`TRUNCATE evaluations, lecturers, users, audit_messages RESTART IDENTITY CASCADE`).Error
}

// waitForServer polls /status until it reports ok or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}

	check := func() error {
		resp, err := client.Get(serverURL + "/status")
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status endpoint returned %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxInterval = time.Second
	policy.MaxElapsedTime = timeout
	if err := backoff.Retry(check, policy); err != nil {
		return fmt.Errorf("server did not become ready within %v: %w", timeout, err)
	}
	return nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_ = tc.Server.Shutdown(shutdownCtx)
		cancel()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

func runMigrations(migrationsDir, dbURL string) error {
	m, err := migrate.New("file://"+migrationsDir, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
