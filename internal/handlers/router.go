package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ashacare-backend/internal/config"
	"ashacare-backend/internal/metrics"
	"ashacare-backend/internal/middleware"
	"ashacare-backend/internal/reconcile"
	"ashacare-backend/internal/store"
)

// NewRouter wires middleware and routes for the sync API.
func NewRouter(cfg *config.Config, engine *reconcile.Engine, st *store.Store, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware())
	r.Use(cors.Default())

	patients := NewPatientHandler(engine, st, cfg.DefaultAshaID, log)
	vaccinations := NewVaccinationHandler(engine, st, log)

	r.GET("/patients", patients.Get)
	r.POST("/patients", patients.Post)
	r.GET("/vaccinations", vaccinations.Get)
	r.POST("/vaccinations", vaccinations.Post)

	r.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
