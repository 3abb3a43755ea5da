package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/imanshadilshan/work-ora/internal/config"
	"github.com/imanshadilshan/work-ora/internal/http/handler"
	"github.com/imanshadilshan/work-ora/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, jobHandler *handler.JobHandler, authMiddleware *middleware.Auth, rateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     cfg.CORSAllowedMethods,
		AllowHeaders:     cfg.CORSAllowedHeaders,
		AllowCredentials: cfg.CORSAllowCredentials,
	}))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	users := r.Group("/users", authMiddleware.RequireAuth)
	{
		users.GET("/me", userHandler.Me)
		users.GET("/:userId", userHandler.GetProfile)
		users.PUT("/update/profile", userHandler.UpdateProfile)
		users.PUT("/update/profile-pic", userHandler.UpdateProfilePicture)
		users.PUT("/update/resume", userHandler.UpdateResume)
		users.POST("/skill/add", userHandler.AddSkill)
		users.DELETE("/skill/delete", userHandler.RemoveSkill)
	}

	jobs := r.Group("/jobs")
	{
		// Public browsing routes.
		jobs.GET("/all", jobHandler.SearchJobs)
		jobs.GET("/:jobId", jobHandler.GetJob)
		jobs.GET("/company/:id", jobHandler.GetCompany)

		authed := jobs.Group("", authMiddleware.RequireAuth)
		{
			authed.POST("/new", jobHandler.CreateJob)
			authed.PUT("/:jobId", jobHandler.UpdateJob)

			authed.POST("/company/new", jobHandler.CreateCompany)
			authed.GET("/company/all", jobHandler.MyCompanies)
			authed.DELETE("/company/:companyId", jobHandler.DeleteCompany)

			authed.POST("/apply/:jobId", jobHandler.Apply)
			authed.GET("/application/:jobId", jobHandler.Applications)
			authed.PUT("/application/:id", jobHandler.UpdateApplicationStatus)
		}
	}

	return r
}
