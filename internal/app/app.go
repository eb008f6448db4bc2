package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/auth"
	"setlist_backend/internal/config"
	"setlist_backend/internal/email"
	"setlist_backend/internal/logger"
	"setlist_backend/internal/middleware"
	"setlist_backend/internal/models"
	"setlist_backend/internal/push"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services"
	"setlist_backend/internal/store"
)

// App holds the wired application.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Services *services.ServiceContainer
	Router   *gin.Engine
}

// New loads configuration, connects the store and wires repositories and
// services.
func New() (*App, error) {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	emailProvider, err := email.NewSMTPProvider(&email.Config{
		SMTPHost:    cfg.Email.SMTPHost,
		SMTPPort:    cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUsername,
		Password:    cfg.Email.SMTPPassword,
		FromEmail:   cfg.Email.FromEmail,
		FromName:    cfg.Email.FromName,
		FrontendURL: cfg.Frontend.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	sessions := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Hour)

	svc := services.NewServiceContainer(services.ServiceDeps{
		Users: repositories.NewUserRepository(
			store.NewGormCollection[models.User](db, models.CollectionUsers)),
		Tokens: repositories.NewTokenRepository(
			store.NewGormCollection[models.AuthToken](db, models.CollectionTokens)),
		Friendships: repositories.NewFriendshipRepository(
			store.NewGormCollection[models.Friendship](db, models.CollectionFriendships)),
		Songs: repositories.NewSongRepository(
			store.NewGormCollection[models.Song](db, models.CollectionSongs)),
		Setlists: repositories.NewSetlistRepository(
			store.NewGormCollection[models.Setlist](db, models.CollectionSetlists)),
		Devices: repositories.NewDeviceRepository(
			store.NewGormCollection[models.UserDevice](db, models.CollectionDevices)),

		Email:    emailProvider,
		Push:     &push.LogDispatcher{},
		Sessions: sessions,
	})

	a := &App{
		Config:   cfg,
		DB:       db,
		Services: svc,
	}
	a.Router = a.buildRouter(sessions)
	return a, nil
}

// buildRouter mounts the operational endpoints. The domain API surface is
// served by a separate gateway; this process exposes health and a session
// introspection endpoint.
func (a *App) buildRouter(sessions *auth.TokenManager) *gin.Engine {
	if a.Config.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := router.Group("/", middleware.Auth(sessions))
	authed.GET("/me", func(c *gin.Context) {
		user, err := a.Services.Auth.ValidateUser(middleware.UserID(c))
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	})

	return router
}

// Run starts the HTTP listener and blocks.
func (a *App) Run() error {
	addr := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	logger.Info("starting server", "addr", addr, "env", a.Config.Server.Env)
	return a.Router.Run(addr)
}
