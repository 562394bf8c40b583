// Package gate decides, per page request, whether the caller may see the
// page or must be redirected to sign-in or to their role's dashboard.
package gate

import (
	"strings"

	"github.com/yoockh/careerly/internal/models"
)

const (
	SignInPath          = "/sign-in"
	IndividualDashboard = "/dashboard"
	CompanyDashboard    = "/company/dashboard"
)

var (
	authOnlyPrefixes = []string{"/sign-in", "/sign-up", "/company-sign-up"}

	protectedPrefixes = []string{
		"/dashboard",
		"/company",
		"/resume-builder",
		"/resume-upload",
		"/cover-letter",
		"/templates",
		"/profile",
		"/employer",
	}

	companyOnlyPrefixes = []string{"/company", "/employer"}

	// "/dashboard" is matched exactly; the rest include sub-paths.
	individualOnlyPrefixes = []string{
		"/resume-builder",
		"/resume-upload",
		"/cover-letter",
		"/templates",
		"/profile",
	}
)

// Viewer is what the gate knows about the caller.
type Viewer struct {
	Authenticated bool
	Type          models.UserType
}

func Anonymous() Viewer { return Viewer{} }

func Authenticated(t models.UserType) Viewer {
	if !t.Valid() {
		t = models.UserTypeIndividual
	}
	return Viewer{Authenticated: true, Type: t}
}

func (v Viewer) isCompany() bool {
	return v.Type == models.UserTypeCompany
}

// Dashboard returns the landing page for the viewer's role.
func (v Viewer) Dashboard() string {
	switch v.Type {
	case models.UserTypeCompany:
		return CompanyDashboard
	default:
		return IndividualDashboard
	}
}

type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

func allow() Decision             { return Decision{} }
func redirect(to string) Decision { return Decision{Redirect: to} }

// Decide applies the routing policy. Rules are evaluated in order and the
// first match wins.
func Decide(path string, v Viewer) Decision {
	path = normalize(path)

	if !v.Authenticated {
		if matchAny(path, protectedPrefixes) {
			return redirect(SignInPath)
		}
		return allow()
	}

	if matchAny(path, authOnlyPrefixes) {
		return redirect(v.Dashboard())
	}

	if matchAny(path, companyOnlyPrefixes) && !v.isCompany() {
		return redirect(IndividualDashboard)
	}

	if v.isCompany() && (path == IndividualDashboard || matchAny(path, individualOnlyPrefixes)) {
		return redirect(CompanyDashboard)
	}

	return allow()
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// hasPrefix matches whole path segments, so "/company" matches
// "/company/jobs" but not "/company-sign-up".
func hasPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}
