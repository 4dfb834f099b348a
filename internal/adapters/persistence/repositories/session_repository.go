package repositories

import (
	"context"
	"errors"
	"time"

	"agriloan-portal/internal/adapters/persistence/models"
	"agriloan-portal/internal/core/session"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements session.Store on MySQL via GORM, so portal
// restarts do not log every browser out.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) session.Store {
	return &sessionRepository{db: db}
}

// Save upserts a session record under its session ID.
func (r *sessionRepository) Save(ctx context.Context, rec *session.Record) error {
	row := models.SessionRecord{
		ID:          rec.ID,
		SealedToken: rec.SealedToken,
		ExpiresAt:   rec.ExpiresAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sealed_token", "expires_at", "updated_at"}),
		}).
		Create(&row).Error
}

// Get fetches a live (unexpired) session record.
func (r *sessionRepository) Get(ctx context.Context, id string) (*session.Record, error) {
	var row models.SessionRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("expires_at > ?", time.Now()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrRecordNotFound
		}
		return nil, err
	}

	return &session.Record{
		ID:          row.ID,
		SealedToken: row.SealedToken,
		ExpiresAt:   row.ExpiresAt,
	}, nil
}

// Delete removes a session record.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.SessionRecord{}).Error
}

// DeleteExpired removes all expired records (janitor job).
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.SessionRecord{})
	return result.RowsAffected, result.Error
}
