package storage

import "time"

// FetchRecordModel is the GORM model for the fetches table
type FetchRecordModel struct {
	CreatedAt   time.Time
	DerivedPath string    `gorm:"not null;default:''"`
	Error       string    `gorm:"not null;default:''"`
	FinishedAt  time.Time `gorm:"not null"`
	ID          uint      `gorm:"primaryKey"`
	RunID       string    `gorm:"not null;index:idx_run_id"`
	StartedAt   time.Time `gorm:"not null;index:idx_started_at"`
	Status      string    `gorm:"not null;check:status IN ('ok','failed','cancelled')"`
	URI         string    `gorm:"not null;index:idx_uri"`
}

// TableName specifies the table name for GORM
func (FetchRecordModel) TableName() string { return "fetches" }
