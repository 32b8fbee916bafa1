package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/chris/gohan/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrNotInitialized is returned by every Store method when no storage is
// configured (a nil *Store).
var ErrNotInitialized = errors.New("storage not initialized")

type Store struct {
	gdb *gorm.DB
	now func() time.Time
}

// Open connects to MySQL when it is configured, otherwise to the SQLite file
// at cfg.Path, and migrates the schema.
func Open(cfg config.Database) (*Store, error) {
	var dialector gorm.Dialector
	sqliteMode := !cfg.MySQL.Enabled()
	if sqliteMode {
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: cfg.Path})
	} else {
		dialector = mysql.Open(mysqlDSN(cfg.MySQL))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if sqliteMode {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("getting sql handle: %w", err)
		}
		// One connection: SQLite serializes writers anyway, and ":memory:"
		// databases are per-connection.
		sqlDB.SetMaxOpenConns(1)
		if err := gdb.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
		if err := gdb.Exec("PRAGMA busy_timeout=5000").Error; err != nil {
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	if err := gdb.AutoMigrate(&MealRecord{}, &TrackedPrompt{}); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{gdb: gdb, now: time.Now}, nil
}

func mysqlDSN(m config.MySQL) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		m.User, m.Password, m.Host, m.Port, m.Database)
}

// SetClock replaces the store's time source.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// timestamp returns the current time in UTC with the monotonic reading
// stripped, so stored values compare consistently.
func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}
