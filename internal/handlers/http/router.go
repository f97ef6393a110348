package http

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/rafabene/blog-backend/docs"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
	"github.com/rafabene/blog-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/blog-backend/internal/infrastructure/realtime"
	"github.com/rafabene/blog-backend/internal/infrastructure/storage"
	"github.com/rafabene/blog-backend/internal/services"
)

// Limite de memória para formulários multipart; o excedente vai para disco
const maxMultipartMemory = 4 << 20

// RouterDeps reúne o que o roteador precisa
type RouterDeps struct {
	Config      *config.Config
	Logger      ports.Logger
	DB          *gorm.DB
	I18n        *i18n.Service
	Tokens      ports.TokenManager
	Blobs       ports.BlobStore
	Hub         *realtime.Hub
	UserService *services.UserService
	PostService *services.PostService
}

// NewRouter monta o engine Gin com middlewares e rotas da API
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	dto.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Env != "test" {
		router.Use(gin.Logger())
	}
	router.MaxMultipartMemory = maxMultipartMemory

	// Base URL usada nos "type" dos problemas RFC 7807
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	i18nMiddleware := middleware.NewI18nMiddleware(deps.I18n)
	router.Use(i18nMiddleware.DetectLanguage())
	router.Use(middleware.CORS(cfg.CORS.Origins()))

	router.NoRoute(func(c *gin.Context) {
		dto.Abort(c, dto.RouteNotFoundResponseI18n(c))
	})

	postHandler := NewPostHandler(deps.PostService, deps.Blobs, deps.Logger)
	userHandler := NewUserHandler(deps.UserService, deps.Blobs, deps.Logger)
	systemHandler := NewSystemHandler(
		cfg.Env,
		func(ctx context.Context) error { return postgres.Ping(ctx, deps.DB) },
		deps.Hub,
		cfg.CORS.Origins(),
		deps.Logger,
	)

	auth := middleware.RequireAuth(deps.Tokens, func(c *gin.Context, err error) {
		dto.AbortWithError(c, err)
	})

	router.GET("/health", systemHandler.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if local, ok := deps.Blobs.(*storage.LocalStore); ok {
		router.Static(uploadsPath(cfg.Blob.PublicURL), local.Root())
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", postHandler.ListCategories)
		v1.GET("/events", systemHandler.Events)

		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("", userHandler.ListAuthors)
			users.GET("/:id", userHandler.GetUser)
			users.POST("/change-avatar", auth, userHandler.ChangeAvatar)
			users.PUT("/edit-user", auth, userHandler.EditUser)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", postHandler.GetPosts)
			posts.POST("", auth, postHandler.CreatePost)
			posts.GET("/categories/:category", postHandler.GetCategoryPosts)
			posts.GET("/users/:id", postHandler.GetUserPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.PUT("/:id", auth, postHandler.EditPost)
			posts.DELETE("/:id", auth, postHandler.DeletePost)
			posts.POST("/:id/like", auth, postHandler.LikePost)
		}
	}

	return router
}

// uploadsPath extrai o caminho da URL pública dos arquivos locais
func uploadsPath(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/uploads"
	}
	return u.Path
}
