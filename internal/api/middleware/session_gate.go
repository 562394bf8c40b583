package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/auth"
	"github.com/yoockh/careerly/internal/gate"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/services"
)

// GateConfig wires the page gate. Authenticator may be nil, in which case
// every visitor is anonymous.
type GateConfig struct {
	Authenticator auth.Authenticator
	Users         services.UserService
	SecureCookies bool
	Logger        *logrus.Logger
}

// SessionGate runs in front of the page server. It resolves the session
// cookies (refreshing them when needed), looks up the user_type and either
// passes the request on or answers 303 with the gate's redirect.
func SessionGate(cfg GateConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		viewer := gate.Anonymous()
		access, _ := c.Cookie(auth.AccessCookie)
		refresh, _ := c.Cookie(auth.RefreshCookie)

		if cfg.Authenticator != nil && (access != "" || refresh != "") {
			res, err := cfg.Authenticator.Resolve(c.Request.Context(), access, refresh)
			if err != nil {
				log.WithError(err).WithField("path", path).Debug("session not resolved")
			} else {
				if res.Refreshed != nil {
					writeSessionCookies(c, res.Refreshed, cfg.SecureCookies)
				}
				c.Set(CtxUserID, res.Identity.UserID)
				c.Set(CtxEmail, res.Identity.Email)
				viewer = gate.Authenticated(lookupUserType(c, cfg.Users, res.Identity.UserID, log))
			}
		}

		if d := gate.Decide(path, viewer); !d.Allowed() {
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// lookupUserType falls back to individual on any failure.
func lookupUserType(c *gin.Context, users services.UserService, userID string, log *logrus.Logger) models.UserType {
	if users == nil {
		return models.UserTypeIndividual
	}
	t, err := users.UserType(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("user_type lookup failed, routing as individual")
		return models.UserTypeIndividual
	}
	return t
}

func writeSessionCookies(c *gin.Context, s *auth.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := s.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}
	c.SetCookie(auth.AccessCookie, s.AccessToken, maxAge, "/", "", secure, true)
	if s.RefreshToken != "" {
		c.SetCookie(auth.RefreshCookie, s.RefreshToken, 60*60*24*30, "/", "", secure, true)
	}
}
