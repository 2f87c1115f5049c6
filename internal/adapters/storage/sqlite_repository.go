package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tally/internal/config"
	"tally/internal/domain"
	"tally/internal/logging"
	"tally/internal/ports"
)

// SQLiteRepository implements ports.FetchHistory using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.FetchHistory = (*SQLiteRepository)(nil)

// gormLogger wraps the tally logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	} else {
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("TALLY_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the history database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Concurrent tally invocations share the file
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&FetchRecordModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate fetches schema: %w", err)
	}

	logging.Logger.Debug("History database opened", "path", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// Record implements FetchHistory.Record
func (r *SQLiteRepository) Record(ctx context.Context, records []domain.FetchRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]FetchRecordModel, len(records))
	for i, rec := range records {
		models[i] = recordToModel(rec)
	}

	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrReadonly || sqliteErr.Code == sqlite3.ErrBusy) {
			return fmt.Errorf("history database unavailable (%s): %w", sqliteErr.Code, err)
		}
		return fmt.Errorf("failed to record fetches: %w", err)
	}
	return nil
}

// Recent implements FetchHistory.Recent, newest first
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]domain.FetchRecord, error) {
	var models []FetchRecordModel
	query := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list fetches: %w", err)
	}

	records := make([]domain.FetchRecord, len(models))
	for i, m := range models {
		records[i] = modelToRecord(m)
	}
	return records, nil
}

// Close implements FetchHistory.Close
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
