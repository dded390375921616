package server

import (
	"net/http"
	"time"

	"projecthub/internal/config"
	"projecthub/internal/handler"
	"projecthub/internal/middleware"
	"projecthub/internal/repository"
	"projecthub/internal/service"
	"projecthub/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	store  storage.Storage
	secret []byte
	log    *logrus.Logger
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, store storage.Storage, secret []byte, log *logrus.Logger, logger *zap.Logger) *Server {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	router.Use(cors.New(corsConfig))

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		store:  store,
		secret: secret,
		log:    log,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.logger)
	projectRepo := repository.NewProjectRepository(s.db, s.logger)

	tokenTTL := time.Duration(s.cfg.Auth.TokenTTLSeconds) * time.Second
	authService := service.NewAuthService(userRepo, s.secret, tokenTTL, s.logger)
	userService := service.NewUserService(userRepo, s.store, s.logger)
	projectService := service.NewProjectService(projectRepo, s.store, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.log)
	userHandler := handler.NewUserHandler(userService, s.log)
	projectHandler := handler.NewProjectHandler(projectService, s.log)

	// Health check route
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"health": true})
	})

	// Uploaded files are served straight from disk with the local backend;
	// the s3 backend hands out object keys instead.
	if s.cfg.Storage.Backend == "local" {
		s.router.Static("/uploads", s.cfg.Storage.UploadsDir)
	}

	authRequired := middleware.AuthMiddleware(userRepo, s.secret, s.logger)

	api := s.router.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/whoami", authRequired, userHandler.WhoAmI)
	users.GET("/", authRequired, userHandler.List)
	users.GET("/:userId", authRequired, userHandler.GetByID)
	users.PUT("/:userId", authRequired, userHandler.Update)

	projects := api.Group("/projects", authRequired)
	projects.POST("/details", projectHandler.Create)
	projects.GET("/", projectHandler.List)
	projects.POST("/:projectId/members", projectHandler.AddMembers)
	projects.GET("/:projectId/members", projectHandler.ListMembers)
	projects.POST("/:projectId/documents", projectHandler.AddDocuments)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
