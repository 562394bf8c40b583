package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/careerly/internal/auth"
	"github.com/yoockh/careerly/internal/logger"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/services"
	"github.com/yoockh/careerly/internal/utils"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"exp":   exp.Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

type stubUsers struct {
	services.UserService
	types map[string]models.UserType
	err   error
}

func (s stubUsers) UserType(_ context.Context, userID string) (models.UserType, error) {
	if s.err != nil {
		return "", s.err
	}
	t, ok := s.types[userID]
	if !ok {
		return "", utils.E(utils.CodeNotFound, "stub", "user not found", utils.ErrNotFound)
	}
	return t, nil
}

type stubAuth struct {
	res auth.Result
	err error
}

func (s stubAuth) Resolve(context.Context, string, string) (auth.Result, error) {
	return s.res, s.err
}

func echoUser(c *gin.Context) {
	c.String(http.StatusOK, c.GetString(CtxUserID))
}

func TestJWTAuth(t *testing.T) {
	v := auth.NewVerifier(testSecret, "", "")
	r := gin.New()
	r.GET("/x", JWTAuth(v), echoUser)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
		{"expired", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Now().Add(-time.Minute)))
		}, http.StatusUnauthorized, ""},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Now().Add(time.Hour)))
		}, http.StatusOK, "u1"},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: signToken(t, "u2", time.Now().Add(time.Hour))})
		}, http.StatusOK, "u2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "UNAUTHORIZED", body["code"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestJWTAuthNotConfigured(t *testing.T) {
	r := gin.New()
	r.GET("/x", JWTAuth(auth.NewVerifier("", "", "")), echoUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireUserType(t *testing.T) {
	users := stubUsers{types: map[string]models.UserType{
		"co":  models.UserTypeCompany,
		"ind": models.UserTypeIndividual,
	}}

	for _, tc := range []struct {
		user   string
		status int
	}{
		{"co", http.StatusOK},
		{"ind", http.StatusUnauthorized},
		{"ghost", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
	} {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			if tc.user != "" {
				c.Set(CtxUserID, tc.user)
			}
		}, RequireUserType(users, models.UserTypeCompany), echoUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, tc.status, w.Code, "user %q", tc.user)
	}
}

func TestAdminKey(t *testing.T) {
	hash, err := utils.HashSecret("s3cret")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/admin", AdminKey(hash), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tc := range []struct {
		key    string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"wrong", http.StatusUnauthorized},
		{"s3cret", http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		if tc.key != "" {
			req.Header.Set(AdminKeyHeader, tc.key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, "key %q", tc.key)
	}
}

func TestAdminKeyWithoutHashRefusesAll(t *testing.T) {
	r := gin.New()
	r.POST("/admin", AdminKey(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(AdminKeyHeader, "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func gateRouter(cfg GateConfig) *gin.Engine {
	cfg.Logger = logger.Discard()
	r := gin.New()
	r.Use(SessionGate(cfg))
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusOK, "page") })
	return r
}

func serveGate(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionGateAnonymous(t *testing.T) {
	r := gateRouter(GateConfig{})

	w := serveGate(r, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sign-in", w.Header().Get("Location"))

	w = serveGate(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serveGate(r, "/api/jobs")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGateCompanyRedirects(t *testing.T) {
	r := gateRouter(GateConfig{
		Authenticator: stubAuth{res: auth.Result{Identity: auth.Identity{UserID: "co"}}},
		Users:         stubUsers{types: map[string]models.UserType{"co": models.UserTypeCompany}},
	})
	access := &http.Cookie{Name: auth.AccessCookie, Value: "tok"}

	w := serveGate(r, "/dashboard", access)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/company/dashboard", w.Header().Get("Location"))

	w = serveGate(r, "/sign-in", access)
	assert.Equal(t, "/company/dashboard", w.Header().Get("Location"))

	w = serveGate(r, "/company/jobs", access)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGateLookupFailureRoutesAsIndividual(t *testing.T) {
	r := gateRouter(GateConfig{
		Authenticator: stubAuth{res: auth.Result{Identity: auth.Identity{UserID: "u1"}}},
		Users:         stubUsers{err: errors.New("db down")},
	})
	access := &http.Cookie{Name: auth.AccessCookie, Value: "tok"}

	w := serveGate(r, "/company/dashboard", access)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = serveGate(r, "/resume-builder", access)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGateWritesRefreshedCookies(t *testing.T) {
	r := gateRouter(GateConfig{
		Authenticator: stubAuth{res: auth.Result{
			Identity:  auth.Identity{UserID: "u1"},
			Refreshed: &auth.Session{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 3600},
		}},
		Users: stubUsers{types: map[string]models.UserType{"u1": models.UserTypeIndividual}},
	})

	w := serveGate(r, "/profile", &http.Cookie{Name: auth.RefreshCookie, Value: "old-refresh"})
	require.Equal(t, http.StatusOK, w.Code)

	got := map[string]string{}
	for _, ck := range w.Result().Cookies() {
		got[ck.Name] = ck.Value
	}
	assert.Equal(t, "new-access", got[auth.AccessCookie])
	assert.Equal(t, "new-refresh", got[auth.RefreshCookie])
}

func TestSessionGateInvalidSessionIsAnonymous(t *testing.T) {
	r := gateRouter(GateConfig{
		Authenticator: stubAuth{err: auth.ErrInvalidToken},
		Users:         stubUsers{},
	})

	w := serveGate(r, "/templates", &http.Cookie{Name: auth.AccessCookie, Value: "bad"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sign-in", w.Header().Get("Location"))
}
