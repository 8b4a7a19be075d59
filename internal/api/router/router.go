package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellargigs/stellargigs-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "gigs-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	reviewHandler := handler.NewReviewHandler(deps)
	walletHandler := handler.NewWalletHandler(deps)
	notificationHandler := handler.NewNotificationHandler(deps)
	tipHandler := handler.NewTipHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", jobHandler.PostJob)
			jobs.GET("", jobHandler.ListOpenJobs)

			// Signed artifact submission. Registered before :job_id so the
			// literal paths never match the wildcard.
			jobs.POST("/submit-xdr", jobHandler.SubmitXDR)
			jobs.POST("/submit-escrow", jobHandler.SubmitXDR)

			jobs.GET("/:job_id", jobHandler.GetJob)
			jobs.POST("/:job_id/claim", jobHandler.ClaimJob)
			jobs.POST("/:job_id/submit", jobHandler.SubmitWork)
			jobs.POST("/:job_id/approve", jobHandler.ApproveJob)
			jobs.POST("/:job_id/withdraw", jobHandler.WithdrawJob)
			jobs.POST("/:job_id/review", reviewHandler.CreateReview)
			jobs.DELETE("/:job_id", jobHandler.DeleteJob)
		}

		v1.GET("/employers/:user_id/jobs", jobHandler.EmployerJobs)
		v1.GET("/employees/:user_id/jobs", jobHandler.EmployeeJobs)

		users := v1.Group("/users")
		{
			users.GET("/:user_id/reviews", reviewHandler.UserReviews)
			users.GET("/:user_id/average-rating", reviewHandler.UserRating)
			users.GET("/:user_id/notifications", notificationHandler.UserNotifications)
			users.POST("/:user_id/notifications/read", notificationHandler.MarkNotificationsRead)
			users.GET("/:user_id/wallets", walletHandler.UserWallets)
		}

		wallets := v1.Group("/wallets")
		{
			wallets.POST("", walletHandler.AddWallet)
			wallets.DELETE("/:id", walletHandler.RemoveWallet)
			wallets.GET("/:id/balance", walletHandler.WalletBalance)
		}

		tips := v1.Group("/tips")
		{
			tips.POST("", tipHandler.SendTip)
			tips.POST("/submit", tipHandler.SubmitTip)
			tips.GET("/received/:address", tipHandler.TipsReceived)
			tips.GET("/total/:address", tipHandler.TipsTotal)
		}
	}

	return r
}
