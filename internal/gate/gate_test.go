package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yoockh/careerly/internal/models"
)

func TestDecide(t *testing.T) {
	anon := Anonymous()
	individual := Authenticated(models.UserTypeIndividual)
	company := Authenticated(models.UserTypeCompany)

	tests := []struct {
		name   string
		path   string
		viewer Viewer
		want   string
	}{
		{"anon home", "/", anon, ""},
		{"anon jobs board", "/jobs", anon, ""},
		{"anon sign-in", "/sign-in", anon, ""},
		{"anon company sign-up", "/company-sign-up", anon, ""},
		{"anon dashboard", "/dashboard", anon, SignInPath},
		{"anon company page", "/company/jobs/new", anon, SignInPath},
		{"anon resume builder", "/resume-builder", anon, SignInPath},
		{"anon resume upload", "/resume-upload", anon, SignInPath},
		{"anon cover letter", "/cover-letter", anon, SignInPath},
		{"anon templates", "/templates/modern", anon, SignInPath},
		{"anon profile", "/profile", anon, SignInPath},
		{"anon employer", "/employer/applicants", anon, SignInPath},

		{"individual on sign-in", "/sign-in", individual, IndividualDashboard},
		{"company on sign-up", "/sign-up", company, CompanyDashboard},
		{"company on company sign-up", "/company-sign-up", company, CompanyDashboard},

		{"individual on company dashboard", "/company/dashboard", individual, IndividualDashboard},
		{"individual on employer", "/employer", individual, IndividualDashboard},
		{"individual on dashboard", "/dashboard", individual, ""},
		{"individual on resume builder", "/resume-builder", individual, ""},

		{"company on resume builder", "/resume-builder", company, CompanyDashboard},
		{"company on dashboard", "/dashboard", company, CompanyDashboard},
		{"company on profile", "/profile/edit", company, CompanyDashboard},
		{"company on dashboard subpath", "/dashboard/stats", company, ""},
		{"company on company dashboard", "/company/dashboard", company, ""},
		{"company on employer", "/employer/jobs", company, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.path, tt.viewer)
			assert.Equal(t, tt.want, d.Redirect)
			assert.Equal(t, tt.want == "", d.Allowed())
		})
	}
}

func TestDecide_SegmentAwarePrefix(t *testing.T) {
	// "/company-sign-up" must not be treated as a company-only page.
	assert.True(t, Decide("/company-sign-up", Anonymous()).Allowed())
	assert.True(t, Decide("/profiles-public", Anonymous()).Allowed())
	assert.False(t, Decide("/company", Anonymous()).Allowed())
}

func TestDecide_NormalizesPath(t *testing.T) {
	assert.Equal(t, SignInPath, Decide("/dashboard/", Anonymous()).Redirect)
	assert.Equal(t, SignInPath, Decide("/dashboard?tab=jobs", Anonymous()).Redirect)
	assert.Equal(t, CompanyDashboard, Decide("/resume-builder/", Authenticated(models.UserTypeCompany)).Redirect)
}

func TestAuthenticated_UnknownTypeIsIndividual(t *testing.T) {
	v := Authenticated("")
	assert.Equal(t, models.UserTypeIndividual, v.Type)
	assert.Equal(t, IndividualDashboard, v.Dashboard())
	assert.Equal(t, IndividualDashboard, Decide("/company/dashboard", v).Redirect)
}
