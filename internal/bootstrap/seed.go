package bootstrap

import (
	"context"
	"fmt"

	"github.com/yoockh/careerly/internal/models"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db DB) (inserted int64, err error)
}

type SeedReport struct {
	Name     string `json:"name"`
	Inserted int64  `json:"inserted"`
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db DB) ([]SeedReport, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}
	reports := make([]SeedReport, 0, len(r.Seeders))
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		n, err := s.Run(ctx, db)
		if err != nil {
			return reports, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		reports = append(reports, SeedReport{Name: s.Name(), Inserted: n})
	}
	return reports, nil
}

// DefaultSeeders inserts one demo company and a few of its postings.
func DefaultSeeders() []Seeder {
	return []Seeder{CompanySeeder{}, JobSeeder{}}
}

const demoCompanyID = "5eed0000-0000-4000-8000-000000000001"

type CompanySeeder struct{}

func (CompanySeeder) Name() string { return "companies" }

func (CompanySeeder) Run(ctx context.Context, db DB) (int64, error) {
	tag, err := db.Exec(ctx,
		`INSERT INTO companies (id, name, description, website, industry, size, location)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		demoCompanyID,
		"Careerly Demo Co",
		"A sample employer used for local development.",
		"https://example.com",
		"Technology",
		"11-50",
		"Remote",
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type JobSeeder struct{}

func (JobSeeder) Name() string { return "job_postings" }

func (JobSeeder) Run(ctx context.Context, db DB) (int64, error) {
	items := []struct {
		ID       string
		Title    string
		Desc     string
		Skills   []string
		Location string
		Type     models.JobType
		Salary   string
		Status   models.JobStatus
	}{
		{
			ID: "5eed0000-0000-4000-8000-000000000101", Title: "Backend Engineer (Go)",
			Desc:   "Design and operate the APIs behind our hiring platform.",
			Skills: []string{"Go", "PostgreSQL", "Redis", "Docker"}, Location: "Remote",
			Type: models.JobTypeFullTime, Salary: "$120k - $150k", Status: models.JobStatusPublished,
		},
		{
			ID: "5eed0000-0000-4000-8000-000000000102", Title: "Frontend Developer",
			Desc:   "Build resume and cover-letter editors in React.",
			Skills: []string{"TypeScript", "React", "CSS"}, Location: "Jakarta",
			Type: models.JobTypeContract, Salary: "$60/hour", Status: models.JobStatusPublished,
		},
		{
			ID: "5eed0000-0000-4000-8000-000000000103", Title: "Data Science Intern",
			Desc:   "Help us improve candidate and job matching.",
			Skills: []string{"Python", "SQL", "Machine Learning"}, Location: "Singapore",
			Type: models.JobTypeInternship, Status: models.JobStatusDraft,
		},
	}

	var total int64
	for _, it := range items {
		var salary *string
		if it.Salary != "" {
			salary = &it.Salary
		}
		tag, err := db.Exec(ctx,
			`INSERT INTO job_postings (id, title, description, required_skills, location, job_type, salary_range, company_id, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO NOTHING`,
			it.ID, it.Title, it.Desc, it.Skills, it.Location,
			string(it.Type), salary, demoCompanyID, string(it.Status),
		)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}
