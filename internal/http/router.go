package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/civic_pulse/mlservice/internal/config"
	"github.com/civic_pulse/mlservice/internal/http/handlers"
	"github.com/civic_pulse/mlservice/internal/http/middleware"
	"github.com/civic_pulse/mlservice/internal/ml"

	_ "github.com/civic_pulse/mlservice/docs"
)

func Router(cfg config.Config, predictions handlers.Predictor, categorizer ml.Categorizer, ready handlers.ReadinessFunc, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/healthz", "/metrics"))
	r.Use(cors.New(corsConfig(cfg.CORSAllowed)))

	h := &handlers.Handler{
		Predictions:    predictions,
		Categorizer:    categorizer,
		Ready:          ready,
		Validator:      validator.New(),
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	}

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.POST("/predict", h.Predict)
	r.POST("/categorize", h.Categorize)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsConfig(allowed string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Language", "Authorization", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowed == "*" || allowed == "" {
		// echo the caller's origin: a literal "*" is rejected by browsers on
		// credentialed requests
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = []string{allowed}
	}
	return corsCfg
}
