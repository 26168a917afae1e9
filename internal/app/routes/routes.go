package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnilink/internal/app/controllers"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Admin   *controllers.AdminController
	Alumni  *controllers.AlumniController
	Student *controllers.StudentController
	Profile *controllers.ProfileController
	File    *controllers.FileController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	api.GET("/files/:filename", c.File.ServeFile)

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", c.Auth.Me)

	profile := authenticated.Group("/profile")
	{
		profile.GET("", c.Profile.GetProfile)
		profile.PUT("", c.Profile.UpdateProfile)
	}

	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", c.Admin.ListUsers)
		admin.DELETE("/users/:id", c.Admin.DeleteUser)
		admin.GET("/stats", c.Admin.Stats)
	}

	alumni := authenticated.Group("/alumni")
	alumni.Use(authMiddleware.RoleRequired(models.RoleAlumni))
	{
		alumni.GET("/opportunities", c.Alumni.ListOpportunities)
		alumni.POST("/opportunities", c.Alumni.CreateOpportunity)
		alumni.PUT("/opportunities/:id", c.Alumni.UpdateOpportunity)
		alumni.DELETE("/opportunities/:id", c.Alumni.DeleteOpportunity)

		alumni.GET("/applications", c.Alumni.ListApplications)
		alumni.PUT("/applications/:id/status", c.Alumni.UpdateApplicationStatus)

		alumni.GET("/profile", c.Alumni.GetProfile)
		alumni.PUT("/profile", c.Alumni.UpdateProfile)
	}

	student := authenticated.Group("/student")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/opportunities", c.Student.ListOpportunities)
		student.POST("/opportunities/:id/apply", c.Student.Apply)

		student.GET("/applications", c.Student.ListApplications)
		student.DELETE("/applications/:id", c.Student.Withdraw)

		student.GET("/profile", c.Student.GetProfile)
		student.PUT("/profile", c.Student.UpdateProfile)
	}
}
