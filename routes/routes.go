package routes

import (
	"grant-management-api/controllers"
	"grant-management-api/middleware"
	"grant-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/register", controllers.Register)
			public.POST("/auth/login", controllers.Login)
			public.GET("/auth/verify-email/:token", controllers.VerifyEmail)
			public.POST("/auth/resend-verification", controllers.ResendVerification)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Grant Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Grants
			grants := protected.Group("/grants")
			{
				grants.GET("", controllers.GetGrants)
				grants.GET("/:id", controllers.GetGrant)

				grants.POST("", middleware.RequireAdmin(), controllers.CreateGrant)
				grants.PUT("/:id", middleware.RequireAdmin(), controllers.UpdateGrant)
				grants.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteGrant)
			}

			// Proposals
			proposals := protected.Group("/proposals")
			{
				proposals.POST("", middleware.RequireRole(models.RoleResearcher), controllers.CreateProposal)
				proposals.GET("/mine", controllers.GetMyProposals)
				proposals.GET("/mine/:id", controllers.GetMyProposal)
				proposals.GET("/grant/:grantId", middleware.RequireAdmin(), controllers.GetProposalsByGrant)
				proposals.PUT("/:proposalId/assign-reviewer", middleware.RequireAdmin(), controllers.AssignReviewer)
				proposals.GET("/:id/award-letter", controllers.GetAwardLetter)
				proposals.DELETE("/:id", controllers.DeleteProposal)
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.POST("/:proposalId", middleware.RequireRole(models.RoleReviewer), controllers.SubmitReview)
				reviews.GET("/assigned", middleware.RequireRole(models.RoleReviewer), controllers.GetAssignedReviews)
				reviews.GET("/proposal/:proposalId", middleware.RequireRole(models.RoleAdmin, models.RoleReviewer), controllers.GetReviewsByProposal)
			}

			// Reports (admin only)
			reports := protected.Group("/reports")
			reports.Use(middleware.RequireAdmin())
			{
				reports.POST("/generate", controllers.GenerateReport)
				reports.GET("/evaluation", controllers.GetEvaluationReports)
				reports.GET("/analytics", controllers.GetAnalytics)
				reports.GET("/reviewer-performance", controllers.GetReviewerPerformance)
				reports.GET("/export", controllers.ExportReports)
				reports.GET("/user-stats", controllers.GetUserStats)
				reports.GET("/grant-stats", controllers.GetGrantStats)
			}

			// Users
			users := protected.Group("/users")
			{
				users.GET("/me", controllers.GetMe)
				users.PUT("/me", controllers.UpdateMe)

				users.GET("", middleware.RequireAdmin(), controllers.GetUsers)
				users.POST("", middleware.RequireAdmin(), controllers.CreateUser)
				users.GET("/reviewers", middleware.RequireAdmin(), controllers.GetReviewers)
				users.GET("/:id", middleware.RequireAdmin(), controllers.GetUser)
				users.PUT("/:id", middleware.RequireAdmin(), controllers.UpdateUser)
				users.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteUser)
			}

			// Announcements
			announcements := protected.Group("/announcements")
			{
				announcements.GET("", controllers.GetAnnouncements)
				announcements.POST("", middleware.RequireAdmin(), controllers.CreateAnnouncement)
				announcements.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteAnnouncement)
			}

			// Community
			community := protected.Group("/community")
			{
				community.GET("", controllers.GetCommunityPosts)
				community.POST("", controllers.CreateCommunityPost)
				community.POST("/:id/reply", controllers.ReplyToCommunityPost)
			}

			// Resources
			resources := protected.Group("/resources")
			{
				resources.GET("", controllers.GetResources)
				resources.POST("", middleware.RequireAdmin(), controllers.CreateResource)
				resources.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteResource)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}
		}
	}
}
