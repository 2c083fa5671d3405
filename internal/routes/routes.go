package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"livescore/internal/handlers"
	"livescore/internal/middleware"
	"livescore/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	auth services.AuthService,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	scoresHandler *handlers.ScoresHandler,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- public auth
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/request-reset", authHandler.RequestReset)
		authGroup.POST("/reset", authHandler.Reset)
		authGroup.GET("/verify", authHandler.Verify)
		authGroup.POST("/verify-request", authHandler.VerifyRequest)

		// единственный маршрут под сессией
		authGroup.GET("/me", middleware.AuthRequired(auth), authHandler.Me)
	}

	// ---- admin (сессия + админская роль)
	adminGroup := r.Group("/api/admin", middleware.AdminRequired(auth))
	{
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.POST("/users/:id/reset-password", adminHandler.ResetPassword)
	}

	// ---- scores (публичные, фронтенд опрашивает их без логина)
	scoresGroup := r.Group("/api/scores")
	{
		scoresGroup.GET("/events/today", scoresHandler.TodayEvents)
		scoresGroup.GET("/events/live", scoresHandler.LiveEvents)
		scoresGroup.GET("/events", scoresHandler.Events)
		scoresGroup.GET("/leagues", scoresHandler.Leagues)
	}

	return r
}
