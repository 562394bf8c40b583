package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// EnsureExists inserts a minimal individual row when none exists yet.
	EnsureExists(ctx context.Context, userID, email string) (created bool, err error)
	SetUserType(ctx context.Context, userID string, t models.UserType, companyID *string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *userRepo) EnsureExists(ctx context.Context, userID, email string) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&models.User{
			ID:        userID,
			Email:     email,
			UserType:  models.UserTypeIndividual,
			CreatedAt: now,
			UpdatedAt: now,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *userRepo) SetUserType(ctx context.Context, userID string, t models.UserType, companyID *string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"user_type":  t,
			"company_id": companyID,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
