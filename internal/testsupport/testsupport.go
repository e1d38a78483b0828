package testsupport

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	ctestsupport "github.com/karloscodes/cartridge/testsupport"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"complymetrics/internal"
	"complymetrics/internal/config"
	"complymetrics/internal/contact"
	"complymetrics/internal/content"
	"complymetrics/internal/events"
)

func init() {
	os.Setenv("COMPLYMETRICS_ENV", "test")
	config.Reset()
}

// testDBCache caches test databases by root test name so helpers called
// from subtests share one database.
var (
	testDBCache   = make(map[string]*gorm.DB)
	testDBCacheMu sync.Mutex
)

// TestDBManager adapts cartridge's test manager to the app's interface.
type TestDBManager struct {
	*ctestsupport.TestDBManager
}

func NewTestDBManager(db *gorm.DB) *TestDBManager {
	return &TestDBManager{TestDBManager: ctestsupport.NewTestDBManager(db)}
}

var _ cartridge.DBManager = (*TestDBManager)(nil)

func allModels() []any {
	return []any{
		&events.PageView{},
		&events.SiteEvent{},
		&content.Law{},
		&content.Country{},
		&content.Tool{},
		&contact.Message{},
	}
}

// SetupTestDB creates a named in-memory database with cache=shared so
// multiple connections within one test see the same data, migrates all
// models, and registers cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	rootName := t.Name()
	if idx := strings.Index(rootName, "/"); idx > 0 {
		rootName = rootName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	if err := db.AutoMigrate(allModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupTestDBManager creates a DB manager over a fresh test database.
func SetupTestDBManager(t *testing.T) (*TestDBManager, *slog.Logger) {
	cfg := config.GetConfig()
	if cfg.Environment != config.Test {
		t.Fatalf("tests must run in test environment, current: %s (set COMPLYMETRICS_ENV=test)", cfg.Environment)
	}

	return NewTestDBManager(SetupTestDB(t)), GetLogger()
}

// CleanAllTables clears every non-system table.
func CleanAllTables(db *gorm.DB) {
	var tableNames []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tableNames)

	db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tableNames {
			tx.Exec("DELETE FROM " + table)
			tx.Exec("DELETE FROM sqlite_sequence WHERE name=?", table)
		}
		return nil
	})
}

// GetLogger returns a quiet test logger.
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// NewPageView builds a minimal valid page view for direct insertion.
// Optional fields stay nil; tests set the ones they care about.
func NewPageView(path, deviceType string, timestamp time.Time) *events.PageView {
	return &events.PageView{
		Path:           path,
		ReferrerSource: events.SourceDirect,
		Timestamp:      timestamp,
		DeviceType:     deviceType,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewClientContext builds a capture input resembling a real desktop
// Chrome navigation.
func NewClientContext(path string, timestamp time.Time) *events.ClientContext {
	return &events.ClientContext{
		Path:          path,
		RawURL:        "https://example.com" + path,
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		IPAddress:     "203.0.113.10",
		ViewportWidth: 1440,
		ScreenWidth:   2560,
		ScreenHeight:  1440,
		Language:      "en-US",
		Timestamp:     timestamp,
	}
}

// StrPtr is a shorthand for assigning optional string columns in tests.
func StrPtr(s string) *string {
	return &s
}

// CreateTestApp builds a Fiber app with all application routes mounted
// over the given database.
func CreateTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	dbManager := NewTestDBManager(db)
	appConfig := config.GetConfig()
	appConfig.Environment = config.Test

	cfg := cartridge.DefaultServerConfig()
	cfg.Config = appConfig
	cfg.Logger = GetLogger()
	cfg.DBManager = dbManager
	// Match production: cross-site traffic is the normal case for the
	// tracking endpoints, and their route configs opt out of the check
	// entirely for header-less clients.
	cfg.EnableSecFetchSite = true
	cfg.SecFetchSiteAllowedValues = []string{"cross-site", "same-site", "same-origin"}

	srv, err := cartridge.NewServer(cfg)
	if err != nil {
		t.Fatalf("testsupport: failed to create server: %v", err)
	}

	internal.MountAppRoutes(srv)
	return srv.App()
}
