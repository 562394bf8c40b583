package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/notify"
	"github.com/yoockh/careerly/internal/queue"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/utils"
)

type ApplicationListQuery struct {
	Status string
	JobID  string
	Limit  int
}

type ApplyInput struct {
	JobID          string  `json:"job_id" validate:"required,uuid"`
	ResumeURL      string  `json:"resume_url" validate:"required,http_url"`
	CoverLetterURL *string `json:"cover_letter_url,omitempty" validate:"omitempty,http_url"`
}

type ApplicationService interface {
	// List returns the caller's own applications, or for a company account
	// the applications to its jobs.
	List(ctx context.Context, userID string, q ApplicationListQuery) ([]models.ApplicationView, error)
	Apply(ctx context.Context, userID, email string, in ApplyInput) (*models.ApplicationView, error)
	UpdateStatus(ctx context.Context, userID, applicationID, status string) (*models.ApplicationView, error)
}

type applicationService struct {
	apps   pgrepo.ApplicationRepository
	jobs   pgrepo.JobRepository
	users  pgrepo.UserRepository
	scores queue.ScoreQueue
	notes  notify.Notifier
	log    *logrus.Logger
}

func NewApplicationService(
	apps pgrepo.ApplicationRepository,
	jobs pgrepo.JobRepository,
	users pgrepo.UserRepository,
	scores queue.ScoreQueue,
	notes notify.Notifier,
	log *logrus.Logger,
) ApplicationService {
	if scores == nil {
		scores = queue.Nop{}
	}
	if notes == nil {
		notes = notify.Nop{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &applicationService{apps: apps, jobs: jobs, users: users, scores: scores, notes: notes, log: log}
}

func ParseApplicationStatus(s string) (models.ApplicationStatus, error) {
	st := models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errors.New("status must be one of NEW, SHORTLISTED, REJECTED, HIRED, WAITLIST")
	}
	return st, nil
}

func (s *applicationService) List(ctx context.Context, userID string, q ApplicationListQuery) ([]models.ApplicationView, error) {
	const op = "ApplicationService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}

	f := pgrepo.ApplicationFilter{JobID: strings.TrimSpace(q.JobID), Limit: clampLimit(q.Limit)}
	if q.Status != "" {
		st, err := ParseApplicationStatus(q.Status)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
		}
		f.Status = st
	}

	companyID, err := companyOf(ctx, s.users, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if companyID != "" {
		f.CompanyID = companyID
	} else {
		f.ApplicantID = userID
	}

	rows, err := s.apps.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	out := make([]models.ApplicationView, 0, len(rows))
	for _, a := range rows {
		out = append(out, models.NewApplicationView(a))
	}
	newestFirst(out, func(v models.ApplicationView) time.Time { return v.CreatedAt })
	return out, nil
}

func (s *applicationService) Apply(ctx context.Context, userID, email string, in ApplyInput) (*models.ApplicationView, error) {
	const op = "ApplicationService.Apply"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	in.JobID = strings.TrimSpace(in.JobID)
	in.ResumeURL = strings.TrimSpace(in.ResumeURL)
	in.CoverLetterURL = trimmedPtr(in.CoverLetterURL)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	companyID, err := companyOf(ctx, s.users, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if companyID != "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "company accounts cannot apply to jobs", nil)
	}

	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if job.Status != models.JobStatusPublished {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job is not accepting applications", nil)
	}

	if _, err := s.users.EnsureExists(ctx, userID, email); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user profile", err)
	}

	now := time.Now().UTC()
	app := &models.JobApplication{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		ApplicantID:    userID,
		ResumeURL:      in.ResumeURL,
		CoverLetterURL: in.CoverLetterURL,
		Status:         models.ApplicationStatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.apps.Insert(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}

	log := s.log.WithFields(logrus.Fields{"op": op, "application_id": app.ID, "job_id": job.ID})
	if err := s.scores.EnqueueScore(ctx, app.ID); err != nil {
		log.WithError(err).Warn("enqueue match scoring failed")
	}
	if err := s.notes.NotifyCompany(ctx, job.CompanyID, notify.Event{
		Type:          notify.EventApplicationCreated,
		ApplicationID: app.ID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		Status:        string(app.Status),
		At:            now,
	}); err != nil {
		log.WithError(err).Warn("notify company failed")
	}

	app.Job = job
	v := models.NewApplicationView(*app)
	v.ApplicantEmail = email
	return &v, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, applicationID, status string) (*models.ApplicationView, error) {
	const op = "ApplicationService.UpdateStatus"

	next, err := ParseApplicationStatus(status)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	companyID, err := requireCompany(ctx, op, s.users, userID)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	if app.Job == nil || app.Job.CompanyID != companyID {
		return nil, utils.E(utils.CodeUnauthorized, op, "application belongs to another company", nil)
	}

	if err := s.apps.UpdateStatus(ctx, app.ID, next); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update application status", err)
	}
	app.Status = next
	app.UpdatedAt = time.Now().UTC()

	if err := s.notes.NotifyUser(ctx, app.ApplicantID, notify.Event{
		Type:          notify.EventApplicationStatus,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		JobTitle:      app.Job.Title,
		Status:        string(next),
		At:            app.UpdatedAt,
	}); err != nil {
		s.log.WithError(err).WithField("application_id", app.ID).Warn("notify applicant failed")
	}

	v := models.NewApplicationView(*app)
	return &v, nil
}
