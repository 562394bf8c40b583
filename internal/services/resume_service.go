package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/careerly/internal/models"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/storage"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/datatypes"
)

const MaxResumeFileSize = 10 << 20

type ResumeService interface {
	List(ctx context.Context, userID string, limit int) ([]models.Resume, error)
	Get(ctx context.Context, userID, resumeID string) (*models.Resume, error)
	Create(ctx context.Context, userID, email string, content json.RawMessage) (*models.Resume, error)
	Update(ctx context.Context, userID, resumeID string, content json.RawMessage) (*models.Resume, error)
	// Upload stores a PDF and returns its public URL.
	Upload(ctx context.Context, userID string, r io.Reader) (string, error)
}

type resumeService struct {
	resumes  pgrepo.ResumeRepository
	users    pgrepo.UserRepository
	uploader storage.Uploader
}

func NewResumeService(resumes pgrepo.ResumeRepository, users pgrepo.UserRepository, uploader storage.Uploader) ResumeService {
	return &resumeService{resumes: resumes, users: users, uploader: uploader}
}

// ValidateResumeContent checks the parts of the document the backend relies on.
func ValidateResumeContent(raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return errors.New("content is required")
	}
	c, err := models.DecodeResumeContent(raw)
	if err != nil {
		return errors.New("content must be a JSON object")
	}
	if strings.TrimSpace(c.PersonalInfo.FullName) == "" {
		return errors.New("content.personalInfo.fullName is required")
	}
	return nil
}

func (s *resumeService) List(ctx context.Context, userID string, limit int) ([]models.Resume, error) {
	const op = "ResumeService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	rows, err := s.resumes.ListByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list resumes", err)
	}
	if rows == nil {
		rows = []models.Resume{}
	}
	newestFirst(rows, func(r models.Resume) time.Time { return r.CreatedAt })
	return rows, nil
}

func (s *resumeService) Get(ctx context.Context, userID, resumeID string) (*models.Resume, error) {
	return s.owned(ctx, "ResumeService.Get", userID, resumeID)
}

func (s *resumeService) Create(ctx context.Context, userID, email string, content json.RawMessage) (*models.Resume, error) {
	const op = "ResumeService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if err := ValidateResumeContent(content); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "validation failed: "+err.Error(), err)
	}

	if _, err := s.users.EnsureExists(ctx, userID, email); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user profile", err)
	}

	now := time.Now().UTC()
	row := &models.Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   datatypes.JSON(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.resumes.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save resume", err)
	}
	return row, nil
}

func (s *resumeService) Update(ctx context.Context, userID, resumeID string, content json.RawMessage) (*models.Resume, error) {
	const op = "ResumeService.Update"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if err := ValidateResumeContent(content); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "validation failed: "+err.Error(), err)
	}

	row, err := s.owned(ctx, op, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if err := s.resumes.UpdateContent(ctx, row.ID, datatypes.JSON(content)); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save resume", err)
	}
	row.Content = datatypes.JSON(content)
	row.UpdatedAt = time.Now().UTC()
	return row, nil
}

func (s *resumeService) Upload(ctx context.Context, userID string, r io.Reader) (string, error) {
	const op = "ResumeService.Upload"

	if userID == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if s.uploader == nil {
		return "", utils.E(utils.CodeNotConfigured, op, "file storage is not configured", nil)
	}

	objectName := "resumes/" + userID + "/" + uuid.NewString() + ".pdf"
	url, err := s.uploader.Upload(ctx, objectName, "application/pdf", r)
	if err != nil {
		if errors.Is(err, utils.ErrBucketNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "storage bucket not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to upload file", err)
	}
	return url, nil
}

func (s *resumeService) owned(ctx context.Context, op, userID, resumeID string) (*models.Resume, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	row, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}
	if row.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "resume not found", nil)
	}
	return row, nil
}
