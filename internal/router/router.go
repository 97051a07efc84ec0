package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/unlinked-app/backend/internal/handlers"
	"github.com/unlinked-app/backend/internal/metrics"
	"github.com/unlinked-app/backend/internal/middleware"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
	"github.com/unlinked-app/backend/pkg/cloudinary"
	"github.com/unlinked-app/backend/pkg/config"
	"github.com/unlinked-app/backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, m *metrics.Metrics) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	if m != nil {
		e.Use(m.Middleware())
	}
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient, mail and uploader may be nil when the matching
// collaborator is not configured.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, m *metrics.Metrics, mail mailer.Mailer, uploader cloudinary.Uploader) {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Experience{},
		&models.Education{},
		&models.ConnectionRequest{},
		&models.Notification{},
		&models.Comment{},
		&models.Like{},
	)
	if err != nil {
		logrus.Fatalf("Failed to auto migrate models: %v", err)
	}
	logrus.Info("PostgreSQL auto-migrations completed for all models.")

	// Always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	connectionRepo := repositories.NewPostgresConnectionRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	secureCookies := cfg.Env != "development"

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, mail, cfg.JWTSecret, cfg.ClientURL, secureCookies)
	authHandler.RegisterAuthRoutes(authGroup)
	logrus.Info("Auth routes configured.")

	// --- Protected routes (require session cookie) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))
	authHandler.RegisterSessionRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo, uploader)
	userHandler.RegisterUserRoutes(api)
	logrus.Info("User routes configured.")

	connectionHandler := handlers.NewConnectionHandler(connectionRepo, userRepo, mail, m, cfg.ClientURL)
	connectionHandler.RegisterConnectionRoutes(api)
	logrus.Info("Connection routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, connectionRepo, commentRepo, likeRepo, notificationRepo, uploader, mail, cfg.ClientURL)
	postHandler.RegisterPostRoutes(api)
	logrus.Info("Post routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, postRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	logrus.Info("Notification routes configured.")

	logrus.Info("All routes configured.")
}
