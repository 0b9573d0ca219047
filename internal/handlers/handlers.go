package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fittrack/api/internal/cache"
	"fittrack/api/internal/config"
	"fittrack/api/internal/metrics"
	"fittrack/api/internal/middleware"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/security"
	"fittrack/api/internal/service"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	catalog  *service.CatalogService
	progress *service.ProgressService
	authn    *middleware.Authenticator
	backend  repository.Backend
	cache    *redis.Client
	metrics  *metrics.Metrics
}

// NewHandlerSet wires the services over store. cache may be nil, in which
// case login throttling is disabled.
func NewHandlerSet(log zerolog.Logger, store repository.Store, redisClient *redis.Client, cfg *config.AppConfig) HandlerSet {
	tokens := security.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.JWTTTL)
	hasher := security.NewPasswordHasher(security.DefaultArgon2Params)

	var limiter service.LoginLimiter
	if redisClient != nil {
		limiter = cache.NewLoginLimiter(redisClient, cfg.Login.MaxAttempts, cfg.Login.Window)
	}

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     service.NewAuthService(store.Users, hasher, tokens, limiter, log),
		catalog:  service.NewCatalogService(store, log),
		progress: service.NewProgressService(store, log),
		authn:    middleware.NewAuthenticator(store.Users, tokens, log),
		backend:  store.Backend,
		cache:    redisClient,
		metrics:  metrics.New("fittrack"),
	}
}

// Metrics is shared with the router so request and domain counters land in
// one registry.
func (h HandlerSet) Metrics() *metrics.Metrics {
	return h.metrics
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	required := h.authn.RequireAuth()
	optional := h.authn.OptionalAuth()
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)

	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.GET("/me", required, h.Me)
		auth.PUT("/profile", required, h.UpdateProfile)
	}

	exercises := router.Group("/exercises")
	{
		exercises.GET("", optional, h.ListExercises)
		exercises.GET("/:id", optional, h.GetExercise)
		exercises.POST("", required, h.CreateExercise)
		exercises.PUT("/:id", required, h.UpdateExercise)
		exercises.DELETE("/:id", required, h.DeleteExercise)
	}

	workouts := router.Group("/workouts")
	{
		workouts.GET("", optional, h.ListWorkouts)
		workouts.GET("/:id", optional, h.GetWorkout)
		workouts.POST("", required, h.CreateWorkout)
		workouts.PUT("/:id", required, h.UpdateWorkout)
		workouts.DELETE("/:id", required, h.DeleteWorkout)
	}

	defaultExercises := router.Group("/default-exercises", required)
	{
		defaultExercises.GET("", h.ListDefaultExercises)
		defaultExercises.GET("/:id", h.GetDefaultExercise)
		defaultExercises.POST("", adminOnly, h.CreateDefaultExercise)
		defaultExercises.PUT("/:id", adminOnly, h.UpdateDefaultExercise)
		defaultExercises.DELETE("/:id", adminOnly, h.DeleteDefaultExercise)
	}

	defaultWorkouts := router.Group("/default-workouts", required)
	{
		defaultWorkouts.GET("", h.ListDefaultWorkouts)
		defaultWorkouts.GET("/:id", h.GetDefaultWorkout)
		defaultWorkouts.POST("", adminOnly, h.CreateDefaultWorkout)
		defaultWorkouts.PUT("/:id", adminOnly, h.UpdateDefaultWorkout)
		defaultWorkouts.DELETE("/:id", adminOnly, h.DeleteDefaultWorkout)
	}

	progress := router.Group("/progress", required)
	{
		progress.GET("", h.ListProgress)
		progress.GET("/stats", h.Stats)
		progress.GET("/:id", h.GetProgress)
		progress.POST("", h.CreateProgress)
		progress.PUT("/:id", h.UpdateProgress)
		progress.DELETE("/:id", h.DeleteProgress)
	}
}
