package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mentorhub/api/internal/config"
	"mentorhub/api/internal/middleware"
	"mentorhub/api/internal/repository"
	"mentorhub/api/internal/service"
)

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	auth       *service.AuthService
	profiles   *service.UserService
	mentorship *service.MentorshipService
	tokens     *service.TokenService
	loader     middleware.UserLoader
	db         *pgxpool.Pool
	cache      *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db, cache)
	tokens := service.NewTokenService(cfg, blacklistRepo, log)
	auth := service.NewAuthService(userRepo, tokens, log)
	profiles := service.NewUserService(userRepo, log)
	mentorship := service.NewMentorshipService(userRepo, log)

	return HandlerSet{
		log:        log,
		cfg:        cfg,
		auth:       auth,
		profiles:   profiles,
		mentorship: mentorship,
		tokens:     tokens,
		loader:     userRepo,
		db:         db,
		cache:      cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.POST("/registration/", h.Registration)
	router.POST("/login/", h.Login)
	router.POST("/token/refresh/", h.Refresh)

	protected := router.Group("")
	protected.Use(middleware.Auth(h.tokens, h.loader))
	protected.POST("/logout/", h.Logout)
	protected.GET("/users/", h.ListUsers)
	protected.GET("/users/:user/", h.GetUser)
	protected.PATCH("/users/:user/", h.UpdateUser)
	protected.POST("/users/:user/add-mentees/", h.AddMentees)
}
