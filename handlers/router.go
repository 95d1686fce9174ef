package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"battery-lab-api/config"
	"battery-lab-api/middleware"
	"battery-lab-api/services"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is the subset of services.CacheService the handlers rely on.
type Cache interface {
	Available() bool
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Publish(ctx context.Context, channel string, message any) error
	Subscribe(ctx context.Context, channel string) *redis.PubSub
}

type Deps struct {
	Store     store.Store
	Cache     Cache
	Predictor *services.Predictor
	Generator *services.CandidateGenerator
	Users     *services.UserService
	Config    config.Config
	Log       *zap.Logger
}

// recovery turns a panic into the usual error envelope.
func recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	})
}

func SetupRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	cache := d.Cache
	if cache == nil {
		cache = &services.CacheService{}
	}

	r := gin.New()
	r.Use(recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.SetupCORS(d.Config.CORS))

	events := &eventPublisher{cache: cache}
	materials := NewMaterialsHandler(d.Store, events, log)
	predictions := NewPredictionHandler(d.Store, d.Predictor, events, d.Config.Mock.PredictDelay, log)
	generation := NewGenerationHandler(d.Store, d.Generator, events, d.Config.Mock.GenerateDelay, log)
	dataset := NewDatasetHandler(d.Store, cache, d.Config.Redis.DatasetTTL, log)
	users := NewUsersHandler(d.Users, log)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", Health)

		api.GET("/materials", materials.List)
		api.GET("/materials/:id", materials.Get)
		api.POST("/materials", materials.Create)
		api.DELETE("/materials/:id", materials.Delete)

		api.POST("/predict", predictions.Predict)
		api.GET("/predictions/:materialId", predictions.ListByMaterial)

		api.POST("/generate", generation.Generate)
		api.GET("/candidates", generation.List)

		api.GET("/dataset", dataset.List)
		api.GET("/dataset/:id", dataset.Get)

		api.POST("/users", users.Register)
		api.GET("/users/:id", users.Get)

		api.GET("/live", LiveFeed(cache, log))
	}

	return r
}
