package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Resume struct {
	ID        string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string           `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Content   datatypes.JSON   `gorm:"column:content;type:jsonb" json:"content"`
	Feedback  datatypes.JSON   `gorm:"column:feedback;type:jsonb" json:"feedback,omitempty"`
	Embedding *pgvector.Vector `gorm:"column:embedding;type:vector(768)" json:"-"`
	CreatedAt time.Time        `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Resume) TableName() string { return "resumes" }

// ResumeContent is the subset of the resume document the backend reads.
// Everything else in the document is stored untouched.
type ResumeContent struct {
	PersonalInfo struct {
		FullName string `json:"fullName"`
		Email    string `json:"email,omitempty"`
		Title    string `json:"title,omitempty"`
		Summary  string `json:"summary,omitempty"`
	} `json:"personalInfo"`
	Skills     []json.RawMessage `json:"skills,omitempty"`
	Experience []struct {
		Title       string `json:"title,omitempty"`
		Company     string `json:"company,omitempty"`
		Description string `json:"description,omitempty"`
	} `json:"experience,omitempty"`
}

// SkillNames accepts both ["Go", ...] and [{"name": "Go"}, ...] shapes.
func (c ResumeContent) SkillNames() []string {
	var out []string
	for _, raw := range c.Skills {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && strings.TrimSpace(obj.Name) != "" {
			out = append(out, strings.TrimSpace(obj.Name))
		}
	}
	return out
}

// PlainText flattens the fields worth embedding or prompting with.
func (c ResumeContent) PlainText() string {
	var b strings.Builder
	b.WriteString(c.PersonalInfo.Title)
	b.WriteString("\n")
	b.WriteString(c.PersonalInfo.Summary)
	b.WriteString("\nSkills: ")
	b.WriteString(strings.Join(c.SkillNames(), ", "))
	for _, e := range c.Experience {
		b.WriteString("\n")
		b.WriteString(e.Title)
		b.WriteString(" at ")
		b.WriteString(e.Company)
		b.WriteString(": ")
		b.WriteString(e.Description)
	}
	return strings.TrimSpace(b.String())
}

func DecodeResumeContent(raw []byte) (ResumeContent, error) {
	var c ResumeContent
	if len(raw) == 0 {
		return c, nil
	}
	err := json.Unmarshal(raw, &c)
	return c, err
}
