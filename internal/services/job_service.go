package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/yoockh/careerly/internal/models"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/utils"
)

// JobListQuery mirrors the GET /api/jobs query string.
type JobListQuery struct {
	Status    string
	CompanyID string
	Mine      bool
	Limit     int
}

type CreateJobInput struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location" validate:"required"`
	JobType        string   `json:"job_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	SalaryRange    *string  `json:"salary_range,omitempty"`
	Status         string   `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

type JobService interface {
	// List never returns non-published jobs unless the caller owns them.
	List(ctx context.Context, userID string, q JobListQuery) ([]models.JobView, error)
	Get(ctx context.Context, userID, jobID string) (*models.JobView, error)
	Create(ctx context.Context, userID string, in CreateJobInput) (*models.JobView, error)
	UpdateStatus(ctx context.Context, userID, jobID, status string) (*models.JobView, error)
}

type jobService struct {
	jobs  pgrepo.JobRepository
	users pgrepo.UserRepository
}

func NewJobService(jobs pgrepo.JobRepository, users pgrepo.UserRepository) JobService {
	return &jobService{jobs: jobs, users: users}
}

// ParseJobStatusFilter maps the public filter names onto statuses.
// "open" is an alias for PUBLISHED; empty means no status filter.
func ParseJobStatusFilter(s string) ([]models.JobStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "open", "published":
		return []models.JobStatus{models.JobStatusPublished}, nil
	case "draft":
		return []models.JobStatus{models.JobStatusDraft}, nil
	case "closed":
		return []models.JobStatus{models.JobStatusClosed}, nil
	default:
		return nil, errors.New("status must be one of open, published, draft, closed")
	}
}

func (s *jobService) List(ctx context.Context, userID string, q JobListQuery) ([]models.JobView, error) {
	const op = "JobService.List"

	statuses, err := ParseJobStatusFilter(q.Status)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	ownCompany := ""
	if q.Mine || q.CompanyID != "" {
		if ownCompany, err = companyOf(ctx, s.users, userID); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
		}
	}
	if q.Mine {
		if ownCompany == "" {
			return nil, utils.E(utils.CodeUnauthorized, op, "a company account is required", nil)
		}
		q.CompanyID = ownCompany
	}

	owner := ownCompany != "" && q.CompanyID == ownCompany
	if !owner {
		statuses = publishedOnly(statuses)
		if len(statuses) == 0 {
			return []models.JobView{}, nil
		}
	}

	rows, err := s.jobs.List(ctx, pgrepo.JobFilter{
		Statuses:  statuses,
		CompanyID: q.CompanyID,
		Limit:     clampLimit(q.Limit),
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	out := make([]models.JobView, 0, len(rows))
	for _, j := range rows {
		if !owner && j.Status != models.JobStatusPublished {
			continue
		}
		out = append(out, models.NewJobView(j))
	}
	newestFirst(out, func(v models.JobView) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *jobService) Get(ctx context.Context, userID, jobID string) (*models.JobView, error) {
	const op = "JobService.Get"

	j, err := s.load(ctx, op, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobStatusPublished {
		companyID, err := companyOf(ctx, s.users, userID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
		}
		if companyID != j.CompanyID {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
		}
	}
	v := models.NewJobView(*j)
	return &v, nil
}

func (s *jobService) Create(ctx context.Context, userID string, in CreateJobInput) (*models.JobView, error) {
	const op = "JobService.Create"

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	companyID, err := requireCompany(ctx, op, s.users, userID)
	if err != nil {
		return nil, err
	}

	status := models.JobStatusDraft
	if in.Status != "" {
		status = models.JobStatus(in.Status)
	}

	now := time.Now().UTC()
	j := &models.JobPosting{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Description:    in.Description,
		RequiredSkills: pq.StringArray(cleanSkills(in.RequiredSkills)),
		Location:       in.Location,
		JobType:        models.JobType(in.JobType),
		SalaryRange:    trimmedPtr(in.SalaryRange),
		CompanyID:      companyID,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.jobs.Insert(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	v := models.NewJobView(*j)
	return &v, nil
}

func (s *jobService) UpdateStatus(ctx context.Context, userID, jobID, status string) (*models.JobView, error) {
	const op = "JobService.UpdateStatus"

	next := models.JobStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be one of DRAFT, PUBLISHED, CLOSED", nil)
	}

	companyID, err := requireCompany(ctx, op, s.users, userID)
	if err != nil {
		return nil, err
	}

	j, err := s.load(ctx, op, jobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, utils.E(utils.CodeUnauthorized, op, "job belongs to another company", nil)
	}
	if !j.Status.CanTransitionTo(next) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cannot move job from "+string(j.Status)+" to "+string(next), nil)
	}

	if err := s.jobs.UpdateStatus(ctx, j.ID, next); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job status", err)
	}
	j.Status = next
	j.UpdatedAt = time.Now().UTC()
	v := models.NewJobView(*j)
	return &v, nil
}

func (s *jobService) load(ctx context.Context, op, jobID string) (*models.JobPosting, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	return j, nil
}

// companyOf returns the caller's company id, or "" for anonymous,
// individual or unknown callers.
func companyOf(ctx context.Context, users pgrepo.UserRepository, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	u, err := users.GetByID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !u.IsCompany() {
		return "", nil
	}
	return *u.CompanyID, nil
}

func requireCompany(ctx context.Context, op string, users pgrepo.UserRepository, userID string) (string, error) {
	companyID, err := companyOf(ctx, users, userID)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if companyID == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "a company account is required", nil)
	}
	return companyID, nil
}

func publishedOnly(statuses []models.JobStatus) []models.JobStatus {
	if len(statuses) == 0 {
		return []models.JobStatus{models.JobStatusPublished}
	}
	for _, st := range statuses {
		if st == models.JobStatusPublished {
			return []models.JobStatus{models.JobStatusPublished}
		}
	}
	return nil
}

func cleanSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
