package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/utils"
)

const (
	acmeID    = "11111111-1111-1111-1111-111111111111"
	globexID  = "22222222-2222-2222-2222-222222222222"
	recruiter = "aaaaaaaa-0000-0000-0000-000000000001"
	applicant = "bbbbbbbb-0000-0000-0000-000000000001"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func jobFixtures() []*models.JobPosting {
	acme := &models.Company{ID: acmeID, Name: "Acme"}
	return []*models.JobPosting{
		{ID: "job-old", Title: "Old", CompanyID: acmeID, Company: acme, Status: models.JobStatusPublished, CreatedAt: base},
		{ID: "job-draft", Title: "Draft", CompanyID: acmeID, Company: acme, Status: models.JobStatusDraft, CreatedAt: base.Add(time.Hour)},
		{ID: "job-new", Title: "New", CompanyID: acmeID, Company: acme, Status: models.JobStatusPublished, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "job-closed", Title: "Closed", CompanyID: globexID, Status: models.JobStatusClosed, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "job-mid", Title: "Mid", CompanyID: globexID, Status: models.JobStatusPublished, CreatedAt: base.Add(30 * time.Minute)},
	}
}

func companyUser(id, companyID string) *models.User {
	return &models.User{ID: id, UserType: models.UserTypeCompany, CompanyID: ptr(companyID)}
}

func ids(views []models.JobView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestJobService_ListOpenReturnsPublishedOnlyNewestFirst(t *testing.T) {
	jobs := newFakeJobs(jobFixtures()...)
	svc := NewJobService(jobs, newFakeUsers())

	for _, status := range []string{"open", "", "published"} {
		got, err := svc.List(context.Background(), "", JobListQuery{Status: status})
		require.NoError(t, err)
		assert.Equal(t, []string{"job-new", "job-mid", "job-old"}, ids(got), "status=%q", status)
		for _, v := range got {
			assert.Equal(t, models.JobStatusPublished, v.Status)
		}
	}
	assert.Equal(t, []models.JobStatus{models.JobStatusPublished}, jobs.lastFilter.Statuses)
	assert.Equal(t, DefaultListLimit, jobs.lastFilter.Limit)
}

func TestJobService_ListDraftHiddenFromNonOwners(t *testing.T) {
	svc := NewJobService(newFakeJobs(jobFixtures()...), newFakeUsers(companyUser(recruiter, globexID)))

	got, err := svc.List(context.Background(), recruiter, JobListQuery{Status: "draft", CompanyID: acmeID})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobService_ListMineIncludesDrafts(t *testing.T) {
	jobs := newFakeJobs(jobFixtures()...)
	svc := NewJobService(jobs, newFakeUsers(companyUser(recruiter, acmeID)))

	got, err := svc.List(context.Background(), recruiter, JobListQuery{Mine: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"job-new", "job-draft", "job-old"}, ids(got))
	assert.Equal(t, acmeID, jobs.lastFilter.CompanyID)
	assert.Equal(t, "Acme", got[0].CompanyName)
}

func TestJobService_ListMineRequiresCompany(t *testing.T) {
	svc := NewJobService(newFakeJobs(), newFakeUsers(&models.User{ID: applicant, UserType: models.UserTypeIndividual}))

	_, err := svc.List(context.Background(), applicant, JobListQuery{Mine: true})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestJobService_ListBadStatus(t *testing.T) {
	svc := NewJobService(newFakeJobs(), newFakeUsers())

	_, err := svc.List(context.Background(), "", JobListQuery{Status: "archived"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestJobService_ListLimitIsClamped(t *testing.T) {
	jobs := newFakeJobs()
	svc := NewJobService(jobs, newFakeUsers())

	_, err := svc.List(context.Background(), "", JobListQuery{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, jobs.lastFilter.Limit)
}

func TestJobService_GetDraft(t *testing.T) {
	users := newFakeUsers(companyUser(recruiter, acmeID), companyUser("other", globexID))
	svc := NewJobService(newFakeJobs(jobFixtures()...), users)

	_, err := svc.Get(context.Background(), "", "job-draft")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Get(context.Background(), "other", "job-draft")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	v, err := svc.Get(context.Background(), recruiter, "job-draft")
	require.NoError(t, err)
	assert.Equal(t, "Draft", v.Title)

	_, err = svc.Get(context.Background(), "", "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestJobService_Create(t *testing.T) {
	jobs := newFakeJobs()
	svc := NewJobService(jobs, newFakeUsers(companyUser(recruiter, acmeID)))

	v, err := svc.Create(context.Background(), recruiter, CreateJobInput{
		Title:          " Backend Engineer ",
		Description:    "Build APIs",
		Location:       "Remote",
		JobType:        "FULL_TIME",
		RequiredSkills: []string{"Go", " go ", "", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", v.Title)
	assert.Equal(t, models.JobStatusDraft, v.Status)
	assert.Equal(t, acmeID, v.CompanyID)
	assert.Equal(t, []string{"Go", "SQL"}, v.RequiredSkills)
	require.Len(t, jobs.inserted, 1)
}

func TestJobService_CreateValidation(t *testing.T) {
	jobs := newFakeJobs()
	svc := NewJobService(jobs, newFakeUsers(companyUser(recruiter, acmeID)))

	_, err := svc.Create(context.Background(), recruiter, CreateJobInput{
		Title: "X", Description: "Y", Location: "Z", JobType: "GIG",
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Contains(t, err.Error(), "job_type")
	assert.Empty(t, jobs.inserted)
}

func TestJobService_CreateRequiresCompany(t *testing.T) {
	jobs := newFakeJobs()
	svc := NewJobService(jobs, newFakeUsers(&models.User{ID: applicant, UserType: models.UserTypeIndividual}))

	_, err := svc.Create(context.Background(), applicant, CreateJobInput{
		Title: "X", Description: "Y", Location: "Z", JobType: "CONTRACT",
	})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Empty(t, jobs.inserted)
}

func TestJobService_UpdateStatusLifecycle(t *testing.T) {
	jobs := newFakeJobs(jobFixtures()...)
	svc := NewJobService(jobs, newFakeUsers(companyUser(recruiter, acmeID)))
	ctx := context.Background()

	v, err := svc.UpdateStatus(ctx, recruiter, "job-draft", "published")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPublished, v.Status)

	_, err = svc.UpdateStatus(ctx, recruiter, "job-draft", "DRAFT")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.UpdateStatus(ctx, recruiter, "job-closed", "CLOSED")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized), "job owned by another company")

	_, err = svc.UpdateStatus(ctx, recruiter, "job-new", "ARCHIVED")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestJobStatusTransitions(t *testing.T) {
	assert.True(t, models.JobStatusDraft.CanTransitionTo(models.JobStatusPublished))
	assert.True(t, models.JobStatusDraft.CanTransitionTo(models.JobStatusClosed))
	assert.True(t, models.JobStatusPublished.CanTransitionTo(models.JobStatusClosed))
	assert.False(t, models.JobStatusPublished.CanTransitionTo(models.JobStatusDraft))
	assert.False(t, models.JobStatusClosed.CanTransitionTo(models.JobStatusPublished))
	assert.False(t, models.JobStatusDraft.CanTransitionTo(models.JobStatusDraft))
}
