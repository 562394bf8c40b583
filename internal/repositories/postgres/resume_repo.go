package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Resume, error)
	LatestByUser(ctx context.Context, userID string) (*models.Resume, error)
	GetByID(ctx context.Context, id string) (*models.Resume, error)
	Insert(ctx context.Context, r *models.Resume) error
	UpdateContent(ctx context.Context, id string, content datatypes.JSON) error
	SetFeedback(ctx context.Context, id string, feedback datatypes.JSON) error
	SetEmbedding(ctx context.Context, id string, v pgvector.Vector) error
}

type resumeRepo struct {
	db *gorm.DB
}

func NewResumeRepo(db *gorm.DB) ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Resume, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.Resume
	err := r.db.WithContext(ctx).
		Omit("embedding").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *resumeRepo) LatestByUser(ctx context.Context, userID string) (*models.Resume, error) {
	var row models.Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*models.Resume, error) {
	var row models.Resume
	err := r.db.WithContext(ctx).Omit("embedding").Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *resumeRepo) Insert(ctx context.Context, row *models.Resume) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *resumeRepo) UpdateContent(ctx context.Context, id string, content datatypes.JSON) error {
	// stale embedding is cleared so the match worker recomputes it
	return r.updates(ctx, id, map[string]any{
		"content":    content,
		"embedding":  nil,
		"updated_at": time.Now().UTC(),
	})
}

func (r *resumeRepo) SetFeedback(ctx context.Context, id string, feedback datatypes.JSON) error {
	return r.updates(ctx, id, map[string]any{
		"feedback":   feedback,
		"updated_at": time.Now().UTC(),
	})
}

func (r *resumeRepo) SetEmbedding(ctx context.Context, id string, v pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("id = ?", id).
		Update("embedding", v).Error
}

func (r *resumeRepo) updates(ctx context.Context, id string, cols map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
