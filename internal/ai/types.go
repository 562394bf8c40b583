// Package ai holds the prompt templates and output parsing for the
// cover-letter and resume generators. Nothing here talks to a model.
package ai

import (
	"fmt"
	"strings"
)

type PersonalInfo struct {
	FullName   string   `json:"fullName" validate:"required"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
}

type JobInfo struct {
	JobTitle       string `json:"jobTitle" validate:"required"`
	CompanyName    string `json:"companyName" validate:"required"`
	JobDescription string `json:"jobDescription,omitempty"`
	HiringManager  string `json:"hiringManager,omitempty"`
}

// CoverLetter always carries all four parts.
type CoverLetter struct {
	Introduction   string `json:"introduction"`
	BodyParagraph1 string `json:"bodyParagraph1"`
	BodyParagraph2 string `json:"bodyParagraph2"`
	Closing        string `json:"closing"`
}

func (c CoverLetter) Complete() bool {
	return strings.TrimSpace(c.Introduction) != "" &&
		strings.TrimSpace(c.BodyParagraph1) != "" &&
		strings.TrimSpace(c.BodyParagraph2) != "" &&
		strings.TrimSpace(c.Closing) != ""
}

type ParagraphType string

const (
	ParagraphIntroduction ParagraphType = "introduction"
	ParagraphBody1        ParagraphType = "bodyParagraph1"
	ParagraphBody2        ParagraphType = "bodyParagraph2"
	ParagraphClosing      ParagraphType = "closing"
)

func ParseParagraphType(s string) (ParagraphType, error) {
	switch p := ParagraphType(strings.TrimSpace(s)); p {
	case ParagraphIntroduction, ParagraphBody1, ParagraphBody2, ParagraphClosing:
		return p, nil
	default:
		return "", fmt.Errorf("unknown paragraph type %q", s)
	}
}

type ResumeSection string

const (
	SectionSummary    ResumeSection = "summary"
	SectionExperience ResumeSection = "experience"
	SectionSkills     ResumeSection = "skills"
	SectionEducation  ResumeSection = "education"
	SectionProjects   ResumeSection = "projects"
)

func ParseResumeSection(s string) (ResumeSection, error) {
	switch r := ResumeSection(strings.ToLower(strings.TrimSpace(s))); r {
	case SectionSummary, SectionExperience, SectionSkills, SectionEducation, SectionProjects:
		return r, nil
	default:
		return "", fmt.Errorf("unknown resume section %q", s)
	}
}

// ResumeFeedback is stored verbatim in resumes.feedback.
type ResumeFeedback struct {
	Score        float64  `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}
