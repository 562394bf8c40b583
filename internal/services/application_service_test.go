package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/careerly/internal/logger"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/notify"
	"github.com/yoockh/careerly/internal/utils"
)

const (
	publishedJobID = "33333333-3333-3333-3333-333333333333"
	draftJobID     = "44444444-4444-4444-4444-444444444444"
)

type appFixture struct {
	svc   ApplicationService
	jobs  *fakeJobRepo
	apps  *fakeAppRepo
	users *fakeUserRepo
	queue *fakeQueue
	notes *fakeNotifier
}

func newAppFixture(apps ...*models.JobApplication) appFixture {
	acme := &models.Company{ID: acmeID, Name: "Acme"}
	jobs := newFakeJobs(
		&models.JobPosting{ID: publishedJobID, Title: "Go Engineer", CompanyID: acmeID, Company: acme, Status: models.JobStatusPublished},
		&models.JobPosting{ID: draftJobID, Title: "Secret", CompanyID: acmeID, Company: acme, Status: models.JobStatusDraft},
	)
	f := appFixture{
		jobs:  jobs,
		apps:  newFakeApps(jobs, apps...),
		users: newFakeUsers(companyUser(recruiter, acmeID), companyUser("globex-recruiter", globexID)),
		queue: &fakeQueue{},
		notes: &fakeNotifier{},
	}
	f.svc = NewApplicationService(f.apps, f.jobs, f.users, f.queue, f.notes, logger.Discard())
	return f
}

func validApply() ApplyInput {
	return ApplyInput{JobID: publishedJobID, ResumeURL: "https://storage.googleapis.com/resumes/r.pdf"}
}

func TestApplicationService_ApplyUnauthenticated(t *testing.T) {
	f := newAppFixture()

	_, err := f.svc.Apply(context.Background(), "", "", validApply())
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Empty(t, f.apps.inserted)
	assert.Empty(t, f.users.ensured)
	assert.Empty(t, f.queue.ids)
}

func TestApplicationService_Apply(t *testing.T) {
	f := newAppFixture()

	v, err := f.svc.Apply(context.Background(), applicant, "ann@example.com", validApply())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusNew, v.Status)
	assert.Equal(t, "Go Engineer", v.JobTitle)
	assert.Equal(t, "Acme", v.CompanyName)
	require.Len(t, f.apps.inserted, 1)

	// lazily created profile row
	assert.Equal(t, []string{applicant}, f.users.ensured)
	assert.Equal(t, models.UserTypeIndividual, f.users.users[applicant].UserType)

	assert.Equal(t, []string{v.ID}, f.queue.ids)
	require.Len(t, f.notes.sent, 1)
	assert.Equal(t, notify.CompanyChannel(acmeID), f.notes.sent[0].channel)
	assert.Equal(t, notify.EventApplicationCreated, f.notes.sent[0].event.Type)
}

func TestApplicationService_ApplyQueueFailureIsNotFatal(t *testing.T) {
	f := newAppFixture()
	f.queue.err = errors.New("redis down")

	_, err := f.svc.Apply(context.Background(), applicant, "ann@example.com", validApply())
	require.NoError(t, err)
	assert.Len(t, f.apps.inserted, 1)
}

func TestApplicationService_ApplyRejects(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		in     ApplyInput
		code   utils.Code
	}{
		{"missing job", applicant, ApplyInput{JobID: "55555555-5555-5555-5555-555555555555", ResumeURL: "https://x.test/r.pdf"}, utils.CodeNotFound},
		{"draft job", applicant, ApplyInput{JobID: draftJobID, ResumeURL: "https://x.test/r.pdf"}, utils.CodeInvalidArgument},
		{"no resume url", applicant, ApplyInput{JobID: publishedJobID}, utils.CodeInvalidArgument},
		{"bad job id", applicant, ApplyInput{JobID: "job-1", ResumeURL: "https://x.test/r.pdf"}, utils.CodeInvalidArgument},
		{"company account", recruiter, validApply(), utils.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppFixture()
			_, err := f.svc.Apply(context.Background(), tt.userID, "x@example.com", tt.in)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, tt.code), "got %v", err)
			assert.Empty(t, f.apps.inserted)
		})
	}
}

func TestApplicationService_ListScopesByRole(t *testing.T) {
	f := newAppFixture(
		&models.JobApplication{ID: "a1", JobID: publishedJobID, ApplicantID: applicant, Status: models.ApplicationStatusNew, CreatedAt: base},
		&models.JobApplication{ID: "a2", JobID: publishedJobID, ApplicantID: "someone-else", Status: models.ApplicationStatusNew, CreatedAt: base.Add(time.Hour)},
		&models.JobApplication{ID: "a3", JobID: draftJobID, ApplicantID: applicant, Status: models.ApplicationStatusHired, CreatedAt: base.Add(2 * time.Hour)},
	)
	ctx := context.Background()

	mine, err := f.svc.List(ctx, applicant, ApplicationListQuery{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a3", mine[0].ID)
	assert.Equal(t, "a1", mine[1].ID)
	assert.Equal(t, applicant, f.apps.lastFilter.ApplicantID)

	company, err := f.svc.List(ctx, recruiter, ApplicationListQuery{})
	require.NoError(t, err)
	assert.Len(t, company, 3)
	assert.Equal(t, acmeID, f.apps.lastFilter.CompanyID)
	assert.Empty(t, f.apps.lastFilter.ApplicantID)

	_, err = f.svc.List(ctx, applicant, ApplicationListQuery{Status: "PENDING"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.List(ctx, "", ApplicationListQuery{})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	f := newAppFixture(&models.JobApplication{ID: "a1", JobID: publishedJobID, ApplicantID: applicant, Status: models.ApplicationStatusNew})
	ctx := context.Background()

	v, err := f.svc.UpdateStatus(ctx, recruiter, "a1", "waitlist")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWaitlist, v.Status)
	assert.Equal(t, models.ApplicationStatusWaitlist, f.apps.rows["a1"].Status)

	require.Len(t, f.notes.sent, 1)
	assert.Equal(t, notify.UserChannel(applicant), f.notes.sent[0].channel)
	assert.Equal(t, "WAITLIST", f.notes.sent[0].event.Status)

	_, err = f.svc.UpdateStatus(ctx, "globex-recruiter", "a1", "HIRED")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = f.svc.UpdateStatus(ctx, applicant, "a1", "HIRED")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = f.svc.UpdateStatus(ctx, recruiter, "a1", "MAYBE")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.UpdateStatus(ctx, recruiter, "missing", "HIRED")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestParseApplicationStatusCoversEnum(t *testing.T) {
	for _, st := range models.ApplicationStatuses {
		got, err := ParseApplicationStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
}

