package export

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RunRecord is one journaled export run.
type RunRecord struct {
	ID         string    `gorm:"primaryKey;size:36"`
	StartedAt  time.Time `gorm:"index"`
	FinishedAt time.Time
	Products   int
	Skipped    int
	Rows       int
	Matched    int
	Unmatched  int
	OutputFile string `gorm:"size:255"`
}

// TableName sets the journal table name.
func (RunRecord) TableName() string {
	return "export_runs"
}

// Journal persists run summaries so exports can be audited after the fact.
type Journal struct {
	db *gorm.DB
}

// NewJournal creates a journal over an open database connection.
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Migrate ensures the journal table exists.
func (j *Journal) Migrate() error {
	if err := j.db.AutoMigrate(&RunRecord{}); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}

// Record inserts one run summary.
func (j *Journal) Record(ctx context.Context, rec *RunRecord) error {
	if err := j.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("record run %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := j.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
