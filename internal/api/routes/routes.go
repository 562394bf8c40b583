package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/api/handlers"
	"github.com/yoockh/careerly/internal/api/middleware"
	"github.com/yoockh/careerly/internal/auth"
	"github.com/yoockh/careerly/internal/models"
	"github.com/yoockh/careerly/internal/services"
)

type Deps struct {
	Verifier     *auth.Verifier
	Users        services.UserService
	AdminKeyHash string
	Gate         middleware.GateConfig

	User         *handlers.UserHandler
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
	Resumes      *handlers.ResumeHandler
	AI           *handlers.AIHandler
	Notify       *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
	Pages        *handlers.PageHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	public := api.Group("/")
	public.Use(middleware.OptionalJWT(d.Verifier))
	public.GET("/jobs", d.Jobs.List)
	public.GET("/jobs/:id", d.Jobs.Get)

	authed := api.Group("/")
	authed.Use(middleware.JWTAuth(d.Verifier))

	authed.GET("/me", d.User.Me)
	authed.POST("/me", d.User.BecomeIndividual)
	authed.POST("/companies", d.User.RegisterCompany)

	authed.GET("/applications", d.Applications.List)
	authed.POST("/applications", d.Applications.Create)

	authed.GET("/resumes", d.Resumes.List)
	authed.POST("/resumes", d.Resumes.Create)
	authed.POST("/resumes/upload", d.Resumes.Upload)
	authed.GET("/resumes/:id", d.Resumes.Get)
	authed.POST("/resumes/:id", d.Resumes.Update)
	authed.POST("/resumes/:id/feedback", d.Resumes.Feedback)

	authed.POST("/ai/cover-letter", d.AI.CoverLetter)
	authed.POST("/ai/cover-letter/enhance", d.AI.EnhanceParagraph)
	authed.POST("/ai/resume/enhance", d.AI.EnhanceResumeSection)
	authed.GET("/ai/history", d.AI.History)

	authed.GET("/notifications/ws", d.Notify.Stream)

	company := authed.Group("/")
	company.Use(middleware.RequireUserType(d.Users, models.UserTypeCompany))
	company.POST("/jobs", d.Jobs.Create)
	company.POST("/jobs/:id/status", d.Jobs.UpdateStatus)
	company.POST("/applications/:id/status", d.Applications.UpdateStatus)

	admin := api.Group("/admin/bootstrap")
	admin.Use(middleware.AdminKey(d.AdminKeyHash))
	admin.POST("/bucket", d.Admin.Bucket)
	admin.POST("/schema", d.Admin.Schema)
	admin.POST("/seed", d.Admin.Seed)
	admin.POST("/waitlist", d.Admin.Waitlist)

	// Everything else is a page: gate first, then the static frontend.
	r.NoRoute(middleware.SessionGate(d.Gate), d.Pages.Serve)
}
