package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybcn/internal/infra/config"
	"staybcn/internal/infra/obs"
)

type UnitHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Calendar(c *gin.Context)
}

type SessionHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Confirm(c *gin.Context)
	Reset(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
}

type Handlers struct {
	Unit    UnitHTTP
	Session SessionHTTP
	Booking BookingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Unit != nil {
		api.GET("/units", h.Unit.List)
		api.GET("/units/:id", h.Unit.Get)
		api.GET("/units/:id/calendar", h.Unit.Calendar)
	}
	if h.Session != nil {
		api.POST("/sessions", h.Session.Create)
		api.GET("/sessions/:id", h.Session.Get)
		api.PATCH("/sessions/:id", h.Session.Update)
		api.POST("/sessions/:id/confirm", h.Session.Confirm)
		api.POST("/sessions/:id/reset", h.Session.Reset)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
