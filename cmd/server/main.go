package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foldbox/docs"
	"foldbox/internal/auth"
	"foldbox/internal/cache"
	"foldbox/internal/config"
	"foldbox/internal/db"
	"foldbox/internal/handler"
	"foldbox/internal/model"
	"foldbox/internal/repository"
	"foldbox/internal/router"
	"foldbox/internal/service"
	"foldbox/internal/storage"
)

// @title Foldbox API
// @version 1.0
// @description Multi-tenant folder/file organizer with credential and OAuth login.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.Connect(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Folder{},
		&model.File{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	objectStore, err := storage.NewS3Store(context.Background(), storage.Config{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("object store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	folderRepo := repository.NewFolderRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	stateStore := auth.NewStateStore(cacheClient)
	oauthManager := auth.NewOAuthManager(auth.OAuthConfig{
		BaseURL:              cfg.BaseURL,
		GitHubClientID:       cfg.GitHubClientID,
		GitHubClientSecret:   cfg.GitHubClientSecret,
		GoogleClientID:       cfg.GoogleClientID,
		GoogleClientSecret:   cfg.GoogleClientSecret,
		FacebookClientID:     cfg.FacebookClientID,
		FacebookClientSecret: cfg.FacebookClientSecret,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	folderService := service.NewFolderService(folderRepo)
	profileService := service.NewProfileService(userRepo, objectStore, cacheClient)
	fileService := service.NewFileService(fileRepo, folderRepo, objectStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, oauthManager, stateStore)
	folderHandler := handler.NewFolderHandler(folderService)
	profileHandler := handler.NewProfileHandler(profileService)
	fileHandler := handler.NewFileHandler(fileService)
	pageHandler := handler.NewPageHandler()

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		folderHandler,
		profileHandler,
		fileHandler,
		pageHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
