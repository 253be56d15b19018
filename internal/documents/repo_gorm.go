package documents

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepo implements Repo on an embedded SQLite database.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo opens (or creates) the SQLite file at dbPath and migrates
// the documents table.
func NewGormRepo(dbPath string) (*GormRepo, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("auto migrate documents: %w", err)
	}

	return &GormRepo{db: db}, nil
}

// Close closes the underlying database connection.
func (r *GormRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	return sqlDB.Close()
}

// Create inserts a new document record.
func (r *GormRepo) Create(ctx context.Context, doc Document) error {
	if err := r.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Get returns a document by id.
func (r *GormRepo) Get(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("query document: %w", err)
	}
	return doc, nil
}

// List returns documents newest first, truncated to limit.
func (r *GormRepo) List(ctx context.Context, limit int) ([]Document, error) {
	query := r.db.WithContext(ctx).Order("upload_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var docs []Document
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document by id.
func (r *GormRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("delete document: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Finish applies the terminal outcome to a document.
func (r *GormRepo) Finish(ctx context.Context, id string, out Outcome) error {
	payload, err := out.insightJSON()
	if err != nil {
		return err
	}

	tx := r.db.WithContext(ctx).Model(&Document{}).Where("id = ?", id).Updates(map[string]any{
		"processing_status": out.Status(),
		"insights":          payload,
		"error_message":     out.ErrorMessage(),
	})
	if tx.Error != nil {
		return fmt.Errorf("finish document: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*GormRepo)(nil)
