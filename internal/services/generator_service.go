package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/ai"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/providers/llm"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	mongorepo "github.com/yoockh/careerly/internal/repositories/mongo"
	"github.com/yoockh/careerly/internal/utils"
	"gorm.io/datatypes"
)

const (
	msgNotConfigured = "AI service is not configured"
	msgNoResponse    = "no response from AI service"
)

type CoverLetterInput struct {
	PersonalInfo ai.PersonalInfo `json:"personalInfo"`
	JobInfo      ai.JobInfo      `json:"jobInfo"`
}

type CoverLetterResult struct {
	CoverLetter ai.CoverLetter `json:"coverLetter"`
	// Fallback is true when the model ignored the JSON format and the
	// letter was assembled from the inputs.
	Fallback bool `json:"fallback"`
}

type ParagraphInput struct {
	ParagraphType string          `json:"paragraphType" validate:"required"`
	CurrentText   string          `json:"currentText" validate:"required"`
	PersonalInfo  ai.PersonalInfo `json:"personalInfo" validate:"-"`
	JobInfo       ai.JobInfo      `json:"jobInfo" validate:"-"`
}

type SectionInput struct {
	Section string            `json:"section" validate:"required"`
	Content string            `json:"content" validate:"required"`
	Context ai.SectionContext `json:"context"`
}

type GeneratorService interface {
	CoverLetter(ctx context.Context, userID string, in CoverLetterInput) (*CoverLetterResult, error)
	EnhanceParagraph(ctx context.Context, userID string, in ParagraphInput) (string, error)
	EnhanceResumeSection(ctx context.Context, userID string, in SectionInput) (string, error)
	// ResumeFeedback reviews an owned resume and stores the result on it.
	ResumeFeedback(ctx context.Context, userID, resumeID, targetRole string) (*ai.ResumeFeedback, error)
	History(ctx context.Context, userID string, limit int) ([]models.GenerationLog, error)
}

type generatorService struct {
	provider llm.Provider
	resumes  pgrepo.ResumeRepository
	history  mongorepo.GenerationRepository
	log      *logrus.Logger
	now      func() time.Time
}

// NewGeneratorService accepts a nil provider; every call then fails with
// NOT_CONFIGURED. history may be nil.
func NewGeneratorService(provider llm.Provider, resumes pgrepo.ResumeRepository, history mongorepo.GenerationRepository, log *logrus.Logger) GeneratorService {
	if log == nil {
		log = logrus.New()
	}
	return &generatorService{provider: provider, resumes: resumes, history: history, log: log, now: time.Now}
}

func (s *generatorService) CoverLetter(ctx context.Context, userID string, in CoverLetterInput) (*CoverLetterResult, error) {
	const op = "GeneratorService.CoverLetter"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	prompt, err := ai.CoverLetterPrompt(in.PersonalInfo, in.JobInfo)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	rec := s.start(userID, models.GenerationCoverLetter, "")
	raw, err := s.complete(ctx, op, prompt, ai.CoverLetterMaxTokens)
	if err != nil {
		s.finish(ctx, rec, err, false)
		return nil, err
	}

	res := &CoverLetterResult{}
	cl, perr := ai.ParseCoverLetter(raw)
	if perr != nil {
		s.log.WithError(perr).WithField("op", op).Warn("cover letter output unparseable, using fallback")
		cl = ai.FallbackCoverLetter(in.PersonalInfo, in.JobInfo)
		res.Fallback = true
	}
	res.CoverLetter = cl
	s.finish(ctx, rec, nil, res.Fallback)
	return res, nil
}

func (s *generatorService) EnhanceParagraph(ctx context.Context, userID string, in ParagraphInput) (string, error) {
	const op = "GeneratorService.EnhanceParagraph"

	if userID == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	in.CurrentText = strings.TrimSpace(in.CurrentText)
	if err := validateStruct(op, in); err != nil {
		return "", err
	}
	pt, err := ai.ParseParagraphType(in.ParagraphType)
	if err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	prompt, err := ai.ParagraphPrompt(pt, in.CurrentText, in.PersonalInfo, in.JobInfo)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	rec := s.start(userID, models.GenerationParagraph, string(pt))
	text, err := s.complete(ctx, op, prompt, ai.ParagraphMaxTokens)
	s.finish(ctx, rec, err, false)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *generatorService) EnhanceResumeSection(ctx context.Context, userID string, in SectionInput) (string, error) {
	const op = "GeneratorService.EnhanceResumeSection"

	if userID == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := validateStruct(op, in); err != nil {
		return "", err
	}
	sec, err := ai.ParseResumeSection(in.Section)
	if err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	prompt, err := ai.SectionPrompt(sec, in.Content, in.Context)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	rec := s.start(userID, models.GenerationResumeSection, string(sec))
	text, err := s.complete(ctx, op, prompt, ai.SectionMaxTokens)
	s.finish(ctx, rec, err, false)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *generatorService) ResumeFeedback(ctx context.Context, userID, resumeID, targetRole string) (*ai.ResumeFeedback, error) {
	const op = "GeneratorService.ResumeFeedback"

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

	prompt, err := ai.FeedbackPrompt(string(row.Content), strings.TrimSpace(targetRole))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	rec := s.start(userID, models.GenerationResumeFeedback, "")
	raw, err := s.complete(ctx, op, prompt, ai.FeedbackMaxTokens)
	if err != nil {
		s.finish(ctx, rec, err, false)
		return nil, err
	}

	fb, perr := ai.ParseFeedback(raw)
	fallback := perr != nil
	if fallback {
		fb = ai.FallbackFeedback(raw)
	}
	s.finish(ctx, rec, nil, fallback)

	b, err := json.Marshal(fb)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode feedback", err)
	}
	if err := s.resumes.SetFeedback(ctx, row.ID, datatypes.JSON(b)); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save feedback", err)
	}
	return &fb, nil
}

func (s *generatorService) History(ctx context.Context, userID string, limit int) ([]models.GenerationLog, error) {
	const op = "GeneratorService.History"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if s.history == nil {
		return nil, utils.E(utils.CodeNotConfigured, op, "generation history is not configured", nil)
	}
	rows, err := s.history.ListByUser(ctx, userID, int64(clampLimit(limit)))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load generation history", err)
	}
	return rows, nil
}

// complete is the single model attempt shared by every generator.
func (s *generatorService) complete(ctx context.Context, op, prompt string, maxTokens int) (string, error) {
	if s.provider == nil {
		return "", utils.E(utils.CodeNotConfigured, op, msgNotConfigured, llm.ErrNotConfigured)
	}

	text, err := s.provider.Complete(ctx, llm.Request{
		System:      ai.SystemInstruction,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: ai.Temperature,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return "", utils.E(utils.CodeNotConfigured, op, msgNotConfigured, err)
		}
		return "", utils.WithDetails(utils.CodeInternal, op, msgNoResponse, err, err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", utils.WithDetails(utils.CodeInternal, op, msgNoResponse, llm.ErrEmptyResponse, llm.ErrEmptyResponse.Error())
	}
	return text, nil
}

type generationRecord struct {
	log   *models.GenerationLog
	start time.Time
}

func (s *generatorService) start(userID string, kind models.GenerationKind, selector string) generationRecord {
	provider := ""
	if s.provider != nil {
		provider = s.provider.Name()
	}
	now := s.now().UTC()
	return generationRecord{
		log:   &models.GenerationLog{UserID: userID, Kind: kind, Selector: selector, Provider: provider, CreatedAt: now},
		start: now,
	}
}

// finish writes the history entry; failures are logged and never surface.
func (s *generatorService) finish(ctx context.Context, rec generationRecord, err error, fallback bool) {
	if s.history == nil {
		return
	}
	rec.log.Success = err == nil
	rec.log.Fallback = fallback
	rec.log.LatencyMS = s.now().UTC().Sub(rec.start).Milliseconds()
	if err != nil {
		rec.log.Error = err.Error()
	}
	if herr := s.history.Insert(ctx, rec.log); herr != nil {
		s.log.WithError(herr).WithField("kind", rec.log.Kind).Warn("failed to record generation")
	}
}
