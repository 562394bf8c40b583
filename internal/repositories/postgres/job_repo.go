package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/gorm"
)

type JobFilter struct {
	Statuses  []models.JobStatus // empty = any
	CompanyID string
	Limit     int
}

type JobRepository interface {
	List(ctx context.Context, f JobFilter) ([]models.JobPosting, error)
	GetByID(ctx context.Context, id string) (*models.JobPosting, error)
	Insert(ctx context.Context, j *models.JobPosting) error
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) error
	SetEmbedding(ctx context.Context, id string, v pgvector.Vector) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) List(ctx context.Context, f JobFilter) ([]models.JobPosting, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).
		Omit("embedding").
		Preload("Company")
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}

	var rows []models.JobPosting
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	var j models.JobPosting
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) Insert(ctx context.Context, j *models.JobPosting) error {
	return r.db.WithContext(ctx).Omit("Company").Create(j).Error
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id string, status models.JobStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) SetEmbedding(ctx context.Context, id string, v pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Where("id = ?", id).
		Update("embedding", v).Error
}
