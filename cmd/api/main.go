package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	httphandlers "github.com/rafabene/blog-backend/internal/handlers/http"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
	"github.com/rafabene/blog-backend/internal/infrastructure/events"
	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
	"github.com/rafabene/blog-backend/internal/infrastructure/logging"
	"github.com/rafabene/blog-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/blog-backend/internal/infrastructure/realtime"
	"github.com/rafabene/blog-backend/internal/infrastructure/security"
	"github.com/rafabene/blog-backend/internal/infrastructure/storage"
	"github.com/rafabene/blog-backend/internal/services"
)

// @title        Blog API
// @version      1.0
// @description  API de posts e autores do blog.
// @host         localhost:8080
// @BasePath     /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting blog backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Env, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Blob store
	blobs, err := storage.New(cfg.Blob, logger)
	if err != nil {
		logger.Error("failed to initialize blob store", "error", err)
		log.Fatal(err)
	}
	logger.Info("blob store initialized", "driver", cfg.Blob.Driver)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Eventos: hub WebSocket sempre, NATS quando configurado
	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	publishers := []ports.EventPublisher{hub}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, logger)
		if err != nil {
			logger.Error("failed to connect to nats", "error", err)
			log.Fatal(err)
		}
		defer nc.Drain()
		publishers = append(publishers, events.NewNATSPublisher(nc, cfg.NATS.Subject, logger))
	}
	publisher := events.NewFanOut(publishers...)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Segurança
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Inicializar services
	userService := services.NewUserService(userRepo, blobs, hasher, tokens, logger)
	postService := services.NewPostService(postRepo, userRepo, blobs, uow, publisher, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		I18n:        i18nService,
		Tokens:      tokens,
		Blobs:       blobs,
		Hub:         hub,
		UserService: userService,
		PostService: postService,
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Encerra o hub e desconecta os WebSockets
	stop()

	logger.Info("server exited")
}
