package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusNew         ApplicationStatus = "NEW"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusHired       ApplicationStatus = "HIRED"
	ApplicationStatusWaitlist    ApplicationStatus = "WAITLIST"
)

// ApplicationStatuses must stay in sync with job_applications_status_check.
// WAITLIST arrived later through the waitlist migration.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusNew,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusHired,
	ApplicationStatusWaitlist,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type JobApplication struct {
	ID             string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID          string            `gorm:"column:job_id;type:uuid;index" json:"job_id"`
	ApplicantID    string            `gorm:"column:applicant_id;type:uuid;index" json:"applicant_id"`
	ResumeURL      string            `gorm:"column:resume_url;type:text" json:"resume_url"`
	CoverLetterURL *string           `gorm:"column:cover_letter_url;type:text" json:"cover_letter_url,omitempty"`
	Status         ApplicationStatus `gorm:"column:status;type:text" json:"status"`
	MatchingScore  *float64          `gorm:"column:matching_score;type:numeric" json:"matching_score,omitempty"`
	CreatedAt      time.Time         `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`

	Job       *JobPosting `gorm:"foreignKey:JobID;references:ID" json:"-"`
	Applicant *User       `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`
}

func (JobApplication) TableName() string { return "job_applications" }

// ApplicationView flattens the joined job/company/applicant fields.
type ApplicationView struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	JobTitle       string            `json:"job_title"`
	CompanyID      string            `json:"company_id,omitempty"`
	CompanyName    string            `json:"company_name,omitempty"`
	ApplicantID    string            `json:"applicant_id"`
	ApplicantEmail string            `json:"applicant_email,omitempty"`
	ResumeURL      string            `json:"resume_url"`
	CoverLetterURL *string           `json:"cover_letter_url,omitempty"`
	Status         ApplicationStatus `json:"status"`
	MatchingScore  *float64          `json:"matching_score,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewApplicationView(a JobApplication) ApplicationView {
	v := ApplicationView{
		ID:             a.ID,
		JobID:          a.JobID,
		ApplicantID:    a.ApplicantID,
		ResumeURL:      a.ResumeURL,
		CoverLetterURL: a.CoverLetterURL,
		Status:         a.Status,
		MatchingScore:  a.MatchingScore,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.Job != nil {
		v.JobTitle = a.Job.Title
		v.CompanyID = a.Job.CompanyID
		if a.Job.Company != nil {
			v.CompanyName = a.Job.Company.Name
		}
	}
	if a.Applicant != nil {
		v.ApplicantEmail = a.Applicant.Email
	}
	return v
}
