package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yoockh/careerly/internal/models"
)

type WaitlistResult struct {
	Before  string `json:"before"`
	After   string `json:"after"`
	Changed bool   `json:"changed"`
}

func constraintDef(ctx context.Context, db DB, name string) (string, error) {
	var def string
	err := db.QueryRow(ctx,
		`SELECT pg_get_constraintdef(oid) FROM pg_constraint WHERE conname = $1`, name,
	).Scan(&def)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return def, err
}

// AddWaitlistStatus rewrites the job_applications status CHECK so it
// accepts every models.ApplicationStatuses value. A constraint that
// already allows WAITLIST is left alone.
func AddWaitlistStatus(ctx context.Context, db DB) (WaitlistResult, error) {
	before, err := constraintDef(ctx, db, applicationStatusCheck)
	if err != nil {
		return WaitlistResult{}, fmt.Errorf("read constraint: %w", err)
	}
	res := WaitlistResult{Before: before, After: before}
	if strings.Contains(before, "'"+string(models.ApplicationStatusWaitlist)+"'") {
		return res, nil
	}

	stmts := []string{
		fmt.Sprintf(`ALTER TABLE job_applications DROP CONSTRAINT IF EXISTS %s`, applicationStatusCheck),
		fmt.Sprintf(`ALTER TABLE job_applications ADD CONSTRAINT %s CHECK (status IN (%s))`,
			applicationStatusCheck, sqlList(models.ApplicationStatuses)),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return res, fmt.Errorf("alter constraint: %w", err)
		}
	}

	after, err := constraintDef(ctx, db, applicationStatusCheck)
	if err != nil {
		return res, fmt.Errorf("read constraint: %w", err)
	}
	res.After = after
	res.Changed = true
	return res, nil
}
