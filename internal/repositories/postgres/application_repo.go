package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/gorm"
)

type ApplicationFilter struct {
	ApplicantID string
	CompanyID   string // applications to any job owned by this company
	JobID       string
	Status      models.ApplicationStatus
	Limit       int
}

type ApplicationRepository interface {
	List(ctx context.Context, f ApplicationFilter) ([]models.JobApplication, error)
	GetByID(ctx context.Context, id string) (*models.JobApplication, error)
	Insert(ctx context.Context, a *models.JobApplication) error
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	SetMatchingScore(ctx context.Context, id string, score float64) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) List(ctx context.Context, f ApplicationFilter) ([]models.JobApplication, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Omit("embedding") }).
		Preload("Job.Company").
		Preload("Applicant")

	if f.ApplicantID != "" {
		q = q.Where("job_applications.applicant_id = ?", f.ApplicantID)
	}
	if f.CompanyID != "" {
		q = q.Joins("JOIN job_postings jp ON jp.id = job_applications.job_id").
			Where("jp.company_id = ?", f.CompanyID)
	}
	if f.JobID != "" {
		q = q.Where("job_applications.job_id = ?", f.JobID)
	}
	if f.Status != "" {
		q = q.Where("job_applications.status = ?", f.Status)
	}

	var rows []models.JobApplication
	err := q.Order("job_applications.created_at DESC").
		Limit(f.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.JobApplication, error) {
	var a models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Preload("Applicant").
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) Insert(ctx context.Context, a *models.JobApplication) error {
	return r.db.WithContext(ctx).Omit("Job", "Applicant").Create(a).Error
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
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

func (r *applicationRepo) SetMatchingScore(ctx context.Context, id string, score float64) error {
	return r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ?", id).
		Update("matching_score", score).Error
}
