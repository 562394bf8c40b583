package bootstrap

import (
	"context"
	"fmt"

	"github.com/yoockh/careerly/internal/models"
)

const (
	applicationStatusCheck = "job_applications_status_check"
	embeddingDimensions    = 768
)

// SchemaStatements returns the idempotent DDL for the five tables. CHECK
// constraints are rendered from the Go enums so both stay in sync.
func SchemaStatements() []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		`CREATE TABLE IF NOT EXISTS companies (
			id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name        text NOT NULL,
			description text,
			website     text,
			industry    text,
			size        text,
			location    text,
			created_at  timestamptz NOT NULL DEFAULT now(),
			updated_at  timestamptz NOT NULL DEFAULT now()
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id         uuid PRIMARY KEY,
			email      text NOT NULL DEFAULT '',
			user_type  text NOT NULL DEFAULT '%s'
				CONSTRAINT users_user_type_check CHECK (user_type IN (%s)),
			company_id uuid REFERENCES companies(id) ON DELETE SET NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`, models.UserTypeIndividual, sqlList([]models.UserType{models.UserTypeIndividual, models.UserTypeCompany})),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS job_postings (
			id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			title           text NOT NULL,
			description     text NOT NULL,
			required_skills text[] NOT NULL DEFAULT '{}',
			location        text NOT NULL DEFAULT '',
			job_type        text NOT NULL
				CONSTRAINT job_postings_job_type_check CHECK (job_type IN (%s)),
			salary_range    text,
			company_id      uuid NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			status          text NOT NULL DEFAULT '%s'
				CONSTRAINT job_postings_status_check CHECK (status IN (%s)),
			embedding       vector(%d),
			created_at      timestamptz NOT NULL DEFAULT now(),
			updated_at      timestamptz NOT NULL DEFAULT now()
		)`, sqlList(models.JobTypes), models.JobStatusDraft, sqlList(models.JobStatuses), embeddingDimensions),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS job_applications (
			id               uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			job_id           uuid NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
			applicant_id     uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			resume_url       text NOT NULL,
			cover_letter_url text,
			status           text NOT NULL DEFAULT '%s'
				CONSTRAINT %s CHECK (status IN (%s)),
			matching_score   numeric,
			created_at       timestamptz NOT NULL DEFAULT now(),
			updated_at       timestamptz NOT NULL DEFAULT now()
		)`, models.ApplicationStatusNew, applicationStatusCheck, sqlList(models.ApplicationStatuses)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS resumes (
			id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content    jsonb NOT NULL DEFAULT '{}'::jsonb,
			feedback   jsonb,
			embedding  vector(%d),
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`, embeddingDimensions),

		`CREATE INDEX IF NOT EXISTS job_postings_status_created_idx ON job_postings (status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS job_postings_company_idx ON job_postings (company_id)`,
		`CREATE INDEX IF NOT EXISTS job_applications_applicant_created_idx ON job_applications (applicant_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS job_applications_job_idx ON job_applications (job_id)`,
		`CREATE INDEX IF NOT EXISTS resumes_user_created_idx ON resumes (user_id, created_at DESC)`,
	}
}

// CreateSchema runs every statement in order and stops at the first failure.
func CreateSchema(ctx context.Context, db DB) (int, error) {
	stmts := SchemaStatements()
	for i, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return i, fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return len(stmts), nil
}
