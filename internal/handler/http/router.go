package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/config"
	"github.com/harshl7081/ecowaste/internal/handler/http/middleware"
	"github.com/harshl7081/ecowaste/internal/service"
	"github.com/harshl7081/ecowaste/pkg/metrics"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Logger   *zap.Logger
	Config   *config.Config
	Authz    *service.AuthzService
	Registry *metrics.Registry

	Health   *HealthHandler
	Projects *ProjectHandler
	Comments *CommentHandler
	Feedback *FeedbackHandler
	Activity *ActivityHandler
	Webhook  *WebhookHandler
	Admin    *AdminHandler
}

// NewRouter assembles the gin engine with all middleware and routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.TracingMiddleware())
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.CorsMiddleware())
	router.Use(metrics.GinMiddleware(deps.Registry))

	router.GET("/health", deps.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secret := deps.Config.Auth.JWTSecret

	v1 := router.Group("/api/v1")
	{
		// Public reads. Comment listing carries an optional identity so
		// owners and admins see pending entries.
		public := v1.Group("")
		public.Use(middleware.OptionalAuthMiddleware(secret, deps.Logger))
		{
			public.GET("/projects", deps.Projects.ListPublic)
			public.GET("/projects/:id", deps.Projects.Get)
			public.GET("/projects/:id/comments", deps.Comments.List)

			// Activity ingestion accepts anonymous pings; entries without an
			// identity are still queued and always acknowledged with 202.
			public.POST("/logs/activity", deps.Activity.Ingest)
		}

		// Identity provider webhook, verified by signature instead of a token.
		v1.POST("/webhooks/identity", deps.Webhook.HandleIdentityEvent)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(secret, deps.Logger))
		{
			authed.POST("/projects", deps.Projects.Submit)
			authed.GET("/projects/mine", deps.Projects.ListMine)
			authed.POST("/projects/:id/comments", deps.Comments.Submit)
			authed.POST("/feedback", deps.Feedback.Submit)
			authed.GET("/feedback/mine", deps.Feedback.ListMine)

			// Reachable without the admin gate; the service refuses unless
			// no admin exists and the caller is on the bootstrap list.
			authed.POST("/admin/bootstrap", deps.Admin.Bootstrap)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(secret, deps.Logger))
		admin.Use(middleware.RequireAdmin(deps.Authz, deps.Logger))
		{
			admin.GET("/users", deps.Admin.ListUsers)
			admin.PUT("/users/:id/role", deps.Admin.UpdateUserRole)
			admin.GET("/projects", deps.Admin.ListProjects)
			admin.PUT("/projects/:id/status", deps.Admin.UpdateProjectStatus)
			admin.GET("/comments/pending", deps.Admin.ListPendingComments)
			admin.PUT("/comments/:id/status", deps.Admin.ModerateComment)
			admin.GET("/feedback", deps.Admin.ListFeedback)
			admin.PUT("/feedback/:id/status", deps.Admin.UpdateFeedbackStatus)
			admin.GET("/logs", deps.Admin.ListLogs)
		}
	}

	return router
}
