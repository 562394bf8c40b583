package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
)

// JobTypes lists every value accepted by the job_postings.job_type CHECK.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

func (t JobType) Valid() bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusPublished JobStatus = "PUBLISHED"
	JobStatusClosed    JobStatus = "CLOSED"
)

var JobStatuses = []JobStatus{JobStatusDraft, JobStatusPublished, JobStatusClosed}

func (s JobStatus) Valid() bool {
	for _, v := range JobStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the lifecycle DRAFT -> PUBLISHED -> CLOSED
// allows moving from s to next. Drafts may be closed without publishing.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusDraft:
		return next == JobStatusPublished || next == JobStatusClosed
	case JobStatusPublished:
		return next == JobStatusClosed
	default:
		return false
	}
}

type JobPosting struct {
	ID             string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title          string           `gorm:"column:title;type:text" json:"title"`
	Description    string           `gorm:"column:description;type:text" json:"description"`
	RequiredSkills pq.StringArray   `gorm:"column:required_skills;type:text[]" json:"required_skills"`
	Location       string           `gorm:"column:location;type:text" json:"location"`
	JobType        JobType          `gorm:"column:job_type;type:text" json:"job_type"`
	SalaryRange    *string          `gorm:"column:salary_range;type:text" json:"salary_range,omitempty"`
	CompanyID      string           `gorm:"column:company_id;type:uuid;index" json:"company_id"`
	Status         JobStatus        `gorm:"column:status;type:text" json:"status"`
	Embedding      *pgvector.Vector `gorm:"column:embedding;type:vector(768)" json:"-"`
	CreatedAt      time.Time        `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID;references:ID" json:"-"`
}

func (JobPosting) TableName() string { return "job_postings" }

// JobView is the flattened projection returned by the jobs endpoints.
type JobView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	Location       string    `json:"location"`
	JobType        JobType   `json:"job_type"`
	SalaryRange    *string   `json:"salary_range,omitempty"`
	CompanyID      string    `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	Status         JobStatus `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewJobView(j JobPosting) JobView {
	v := JobView{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		RequiredSkills: []string(j.RequiredSkills),
		Location:       j.Location,
		JobType:        j.JobType,
		SalaryRange:    j.SalaryRange,
		CompanyID:      j.CompanyID,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
	if v.RequiredSkills == nil {
		v.RequiredSkills = []string{}
	}
	if j.Company != nil {
		v.CompanyName = j.Company.Name
	}
	return v
}
