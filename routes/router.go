package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/controllers"
	"github.com/jordisipkens/spiral-race/middlewares"
)

func SetupRouter(uploadDir string) *gin.Engine {
	r := gin.Default()

	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	apiV1 := r.Group("/api/v1")
	{
		// team-facing routes, "authenticated" by slug secrecy only
		apiV1.GET("/tiles", controllers.ListTiles)
		apiV1.GET("/teams/:slug", controllers.GetTeamBySlug)
		apiV1.GET("/teams/:slug/board", controllers.GetTeamBoard)

		submissionRoutes := apiV1.Group("/submissions")
		{
			submissionRoutes.POST("", controllers.CreateSubmission)
			submissionRoutes.GET("", controllers.ListSubmissions)
			submissionRoutes.POST("/upload", controllers.UploadEvidence)
		}

		authRoutes := apiV1.Group("/admin/auth")
		{
			authRoutes.POST("", controllers.AdminLogin)
			authRoutes.GET("", controllers.AdminCheckAuth)
			authRoutes.DELETE("", controllers.AdminLogout)
		}

		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.AdminAuthMiddleware())
		{
			adminRoutes.GET("/submissions", controllers.AdminListSubmissions)
			adminRoutes.PATCH("/submissions", controllers.ReviewSubmission)

			adminRoutes.POST("/tiles", controllers.CreateTile)
			adminRoutes.POST("/tiles/generate", controllers.GenerateTiles)
			adminRoutes.PATCH("/tiles/:id", controllers.UpdateTile)
			adminRoutes.DELETE("/tiles/:id", controllers.DeleteTile)

			adminRoutes.GET("/teams", controllers.AdminListTeams)
			adminRoutes.POST("/teams", controllers.AdminCreateTeam)
			adminRoutes.PATCH("/teams/:id", controllers.AdminUpdateTeam)
			adminRoutes.DELETE("/teams/:id", controllers.AdminDeleteTeam)
			adminRoutes.POST("/teams/:id/reset", controllers.AdminResetTeamProgress)

			adminRoutes.POST("/progress", controllers.AdminUpsertProgress)
			adminRoutes.DELETE("/progress", controllers.AdminDeleteProgress)

			adminRoutes.GET("/settings", controllers.GetSettings)
			adminRoutes.PATCH("/settings", controllers.UpdateSetting)
		}
	}

	return r
}
