package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seda/hobbyhive/internal/app/controllers"
	"github.com/seda/hobbyhive/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	communityController *controllers.CommunityController,
	eventController *controllers.EventController,
	participationController *controllers.ParticipationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Health probe outside the API version group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/users", userController.Register)
	v1.POST("/sessions", authController.CreateSession)

	communities := v1.Group("/communities")
	{
		communities.GET("", communityController.GetAllCommunities)
		communities.GET("/:id", communityController.GetCommunityByID)
	}

	events := v1.Group("/events")
	{
		events.GET("", eventController.GetAllEvents)
		events.GET("/:id", eventController.GetEventByID)
	}

	participations := v1.Group("/participations")
	{
		participations.POST("/join", participationController.Join)
		participations.POST("/leave", participationController.Leave)
	}

	users := v1.Group("/users")
	{
		users.GET("/:userId", userController.GetProfile)
		users.GET("/:userId/ledger", userController.GetLedger)
		users.GET("/:userId/communities", communityController.GetUserCommunities)
		users.GET("/:userId/participations", participationController.GetJoinedEvents)
	}

	v1.GET("/leaderboard", userController.GetLeaderboard)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.POST("/events", eventController.CreateEvent)
	}
}
