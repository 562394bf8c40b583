package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/careerly/internal/models"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/utils"
)

type UserService interface {
	// Me returns the caller's row, creating a minimal one on first use.
	Me(ctx context.Context, userID, email string) (*models.User, error)
	// UserType is what page routing and API role checks switch on.
	UserType(ctx context.Context, userID string) (models.UserType, error)
	BecomeIndividual(ctx context.Context, userID, email string) (*models.User, error)
	RegisterCompany(ctx context.Context, userID, email string, in CreateCompanyInput) (*models.Company, *models.User, error)
}

type CreateCompanyInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" validate:"omitempty,http_url"`
	Industry    *string `json:"industry,omitempty"`
	Size        *string `json:"size,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type userService struct {
	users     pgrepo.UserRepository
	companies pgrepo.CompanyRepository
}

func NewUserService(users pgrepo.UserRepository, companies pgrepo.CompanyRepository) UserService {
	return &userService{users: users, companies: companies}
}

func (s *userService) Me(ctx context.Context, userID, email string) (*models.User, error) {
	const op = "UserService.Me"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if _, err := s.users.EnsureExists(ctx, userID, email); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user profile", err)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

func (s *userService) UserType(ctx context.Context, userID string) (models.UserType, error) {
	const op = "UserService.UserType"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if !u.UserType.Valid() {
		return "", utils.E(utils.CodeInternal, op, "user has unknown user_type "+string(u.UserType), nil)
	}
	return u.UserType, nil
}

func (s *userService) BecomeIndividual(ctx context.Context, userID, email string) (*models.User, error) {
	const op = "UserService.BecomeIndividual"

	if _, err := s.Me(ctx, userID, email); err != nil {
		return nil, err
	}
	if err := s.users.SetUserType(ctx, userID, models.UserTypeIndividual, nil); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update user type", err)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

func (s *userService) RegisterCompany(ctx context.Context, userID, email string, in CreateCompanyInput) (*models.Company, *models.User, error) {
	const op = "UserService.RegisterCompany"

	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(op, in); err != nil {
		return nil, nil, err
	}

	u, err := s.Me(ctx, userID, email)
	if err != nil {
		return nil, nil, err
	}
	if u.IsCompany() {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "user already belongs to a company", nil)
	}

	now := time.Now().UTC()
	company := &models.Company{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: trimmedPtr(in.Description),
		Website:     trimmedPtr(in.Website),
		Industry:    trimmedPtr(in.Industry),
		Size:        trimmedPtr(in.Size),
		Location:    trimmedPtr(in.Location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.companies.Insert(ctx, company); err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}
	if err := s.users.SetUserType(ctx, userID, models.UserTypeCompany, &company.ID); err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to link user to company", err)
	}

	u.UserType = models.UserTypeCompany
	u.CompanyID = &company.ID
	u.UpdatedAt = now
	return company, u, nil
}
