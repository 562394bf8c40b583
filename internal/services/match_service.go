package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/notify"
	"github.com/yoockh/careerly/internal/providers/llm"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/utils"
)

// Weight of the skill overlap when an embedding similarity is available.
const skillWeight = 0.6

type MatchService interface {
	// Score computes and stores matching_score for one application.
	Score(ctx context.Context, applicationID string) (float64, error)
}

type matchService struct {
	apps     pgrepo.ApplicationRepository
	jobs     pgrepo.JobRepository
	resumes  pgrepo.ResumeRepository
	embedder llm.Embedder
	notes    notify.Notifier
	log      *logrus.Logger
}

// NewMatchService accepts a nil embedder; scores are then skill overlap only.
func NewMatchService(
	apps pgrepo.ApplicationRepository,
	jobs pgrepo.JobRepository,
	resumes pgrepo.ResumeRepository,
	embedder llm.Embedder,
	notes notify.Notifier,
	log *logrus.Logger,
) MatchService {
	if notes == nil {
		notes = notify.Nop{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &matchService{apps: apps, jobs: jobs, resumes: resumes, embedder: embedder, notes: notes, log: log}
}

func (s *matchService) Score(ctx context.Context, applicationID string) (float64, error) {
	const op = "MatchService.Score"

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return 0, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return 0, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	job := app.Job
	if job == nil {
		if job, err = s.jobs.GetByID(ctx, app.JobID); err != nil {
			return 0, utils.E(utils.CodeInternal, op, "failed to load job", err)
		}
	}

	resume, err := s.resumes.LatestByUser(ctx, app.ApplicantID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return 0, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}

	var (
		skills  []string
		content models.ResumeContent
	)
	if resume != nil {
		if content, err = models.DecodeResumeContent(resume.Content); err != nil {
			s.log.WithError(err).WithField("resume_id", resume.ID).Warn("resume content undecodable")
		}
		skills = content.SkillNames()
	}

	overlap := SkillOverlap(job.RequiredSkills, skills)

	var similarity *float64
	if s.embedder != nil && resume != nil {
		sim, err := s.similarity(ctx, job, resume, content)
		if err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).Warn("embedding similarity unavailable")
		} else {
			similarity = &sim
		}
	}

	score := BlendScore(overlap, similarity)
	if err := s.apps.SetMatchingScore(ctx, app.ID, score); err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to store matching score", err)
	}

	if err := s.notes.NotifyCompany(ctx, job.CompanyID, notify.Event{
		Type:          notify.EventApplicationScored,
		ApplicationID: app.ID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		MatchingScore: &score,
	}); err != nil {
		s.log.WithError(err).WithField("application_id", app.ID).Warn("notify company failed")
	}
	return score, nil
}

// similarity embeds whichever side has no stored vector yet.
func (s *matchService) similarity(ctx context.Context, job *models.JobPosting, resume *models.Resume, content models.ResumeContent) (float64, error) {
	jobVec := job.Embedding
	if jobVec == nil {
		text := job.Title + "\n" + job.Description + "\nSkills: " + strings.Join(job.RequiredSkills, ", ")
		v, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return 0, err
		}
		vec := pgvector.NewVector(v)
		if err := s.jobs.SetEmbedding(ctx, job.ID, vec); err != nil {
			s.log.WithError(err).WithField("job_id", job.ID).Warn("failed to store job embedding")
		}
		jobVec = &vec
	}

	resumeVec := resume.Embedding
	if resumeVec == nil {
		text := content.PlainText()
		if text == "" {
			return 0, errors.New("resume has no text to embed")
		}
		v, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return 0, err
		}
		vec := pgvector.NewVector(v)
		if err := s.resumes.SetEmbedding(ctx, resume.ID, vec); err != nil {
			s.log.WithError(err).WithField("resume_id", resume.ID).Warn("failed to store resume embedding")
		}
		resumeVec = &vec
	}

	return CosineSimilarity(jobVec.Slice(), resumeVec.Slice()), nil
}

// SkillOverlap is the percentage of required skills present in have,
// compared case-insensitively. No required skills scores 0.
func SkillOverlap(required, have []string) float64 {
	req := make(map[string]struct{}, len(required))
	for _, r := range required {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			req[r] = struct{}{}
		}
	}
	if len(req) == 0 {
		return 0
	}
	matched := 0
	seen := make(map[string]struct{}, len(have))
	for _, h := range have {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		if _, ok := req[h]; ok {
			matched++
		}
	}
	return 100 * float64(matched) / float64(len(req))
}

// CosineSimilarity returns 0 for mismatched or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// BlendScore combines the skill percentage with an optional cosine
// similarity into a 0-100 score rounded to one decimal.
func BlendScore(overlap float64, similarity *float64) float64 {
	score := overlap
	if similarity != nil {
		sim := math.Max(0, *similarity) * 100
		score = skillWeight*overlap + (1-skillWeight)*sim
	}
	score = math.Max(0, math.Min(100, score))
	return math.Round(score*10) / 10
}
