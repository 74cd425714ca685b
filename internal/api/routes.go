package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerService service.TrainerService,
	traineeService service.TraineeService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService)
	traineeHandler := NewTraineeHandler(traineeService, authService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Join links are shared out of band and must work without a
		// session; a valid session is picked up when present.
		apiV1.GET("/join", OptionalAuthMiddleware(jwtSecret), traineeHandler.Join)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			user := currentUserFromContext(c)
			if user == nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
				return
			}
			c.JSON(http.StatusOK, user)
		})

		// --- Trainer Routes ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.GET("/catalog", trainerHandler.GetCatalog)

			trainerGroup.GET("/trainees", trainerHandler.GetRoster)
			trainerGroup.POST("/trainees", trainerHandler.LinkTrainee)
			trainerGroup.DELETE("/trainees/:traineeId", trainerHandler.UnlinkTrainee)
			trainerGroup.GET("/trainees/:traineeId/join-link", trainerHandler.GetJoinLink)

			trainerGroup.GET("/tasks", trainerHandler.GetTasks)
			trainerGroup.POST("/tasks", trainerHandler.CreateTask)
			trainerGroup.POST("/tasks/:taskId/review", trainerHandler.ReviewSolution)
			trainerGroup.GET("/tasks/:taskId/attachments/url", trainerHandler.GetAttachmentURL)

			trainerGroup.GET("/profile", trainerHandler.GetProfile)
			trainerGroup.GET("/reviews", trainerHandler.GetReviews)
		}

		// --- Trainee Routes ---
		traineeGroup := protected.Group("/trainee")
		traineeGroup.Use(RoleMiddleware(domain.RoleTrainee))
		{
			traineeGroup.GET("/tasks", traineeHandler.GetMyTasks)
			traineeGroup.GET("/tasks/:taskId", traineeHandler.GetTask)
			traineeGroup.POST("/tasks/:taskId/solution", traineeHandler.SubmitSolution)
			traineeGroup.POST("/tasks/:taskId/attachments", traineeHandler.RequestUploadURL)
			traineeGroup.GET("/tasks/:taskId/attachments/url", traineeHandler.GetAttachmentURL)

			traineeGroup.GET("/trainers", traineeHandler.GetTrainers)
			traineeGroup.GET("/trainers/:trainerId/reviews", traineeHandler.GetTrainerReviews)
			traineeGroup.POST("/trainers/:trainerId/reviews", traineeHandler.AddTrainerReview)

			traineeGroup.GET("/stats/sports", traineeHandler.GetSportStats)
			traineeGroup.GET("/calendar", traineeHandler.GetCalendar)
			traineeGroup.GET("/profile", traineeHandler.GetProfile)
		}
	}
}
