package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one stored blob
type Record struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (Record) TableName() string {
	return "storage_records"
}

// Gorm stores blobs in a single SQL table
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a GORM-backed storage
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// AutoMigrate creates the storage table
func (g *Gorm) AutoMigrate() error {
	return g.db.AutoMigrate(&Record{})
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return rec.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	rec := Record{Key: key, Value: value, UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
