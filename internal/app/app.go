package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "livescore/docs"
	"livescore/internal/authz"
	"livescore/internal/config"
	"livescore/internal/database"
	"livescore/internal/handlers"
	"livescore/internal/models"
	"livescore/internal/repositories"
	"livescore/internal/routes"
	"livescore/internal/services"
	"livescore/internal/utils"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("database close: %v", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	verificationRepo := repositories.NewEmailVerificationRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Server.JWTSecret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.Configured(),
	)
	if !cfg.Email.Configured() {
		log.Printf("[mail] SMTP not configured, falling back to log-only delivery")
	}

	verificationService := services.NewVerificationService(userRepo, verificationRepo, emailService, cfg.Server.PublicBaseURL)
	userService := services.NewUserService(userRepo, authService, verificationService)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService, cfg.Server.PublicBaseURL)

	sportsClient := utils.NewSportsDBClient(cfg.Scores.APIBaseURL)
	scoresService := services.NewScoresService(sportsClient)

	seedAdmins(userRepo, authService)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, verificationService, resetService, emailService)
	adminHandler := handlers.NewAdminHandler(userService)
	scoresHandler := handlers.NewScoresHandler(scoresService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authService, authHandler, adminHandler, scoresHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server: ", err)
	}
}

// seedAdmins — админские учётки из окружения; существующие не трогаем.
func seedAdmins(userRepo repositories.UserRepository, auth services.AuthService) {
	for _, admin := range config.SeedAdmins() {
		if admin.Password == "" || !authz.IsAdmin(admin.Role) {
			continue
		}
		existing, err := userRepo.GetByEmail(admin.Email)
		if err != nil {
			log.Printf("[seed] lookup %s: %v", admin.Email, err)
			continue
		}
		if existing != nil {
			continue
		}
		hash, err := auth.HashPassword(admin.Password)
		if err != nil {
			log.Printf("[seed] hash for %s: %v", admin.Email, err)
			continue
		}
		user := &models.User{
			Name:         admin.Name,
			Email:        admin.Email,
			PasswordHash: hash,
			Role:         admin.Role,
			IsVerified:   true,
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("[seed] create %s: %v", admin.Email, err)
			continue
		}
		log.Printf("[seed] admin %s created (role=%s)", admin.Email, admin.Role)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			// куки требуют конкретный Origin, не "*"
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
