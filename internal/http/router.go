package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/steveyiyo/tts-clone-backend/internal/config"
	"github.com/steveyiyo/tts-clone-backend/internal/core/audio"
	ttsprov "github.com/steveyiyo/tts-clone-backend/internal/core/tts"
	"github.com/steveyiyo/tts-clone-backend/internal/http/handlers"
	"github.com/steveyiyo/tts-clone-backend/internal/store"
	"github.com/steveyiyo/tts-clone-backend/pkg/ws"
)

func NewRouter(cfg config.Config, log zerolog.Logger, st *store.Store) *gin.Engine {
	if !cfg.Development() && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(requestLogger(log), recovery(log, cfg.Development()))

	hub := ws.NewHub(handlers.PingPeriod)
	sh := handlers.NewStreamHandler(hub, log)
	svc := audio.NewService(st, cfg.AudioBase, sh)
	ah := handlers.NewAudioHandler(svc, log, cfg.Development())
	th := handlers.NewTTSHandler(ttsprov.NewStub(cfg.TTSBase))
	hh := handlers.NewHealthHandler(st.Mode)

	api := r.Group("/api")
	api.POST("/audio", ah.Create)
	api.GET("/audio", ah.Fetch)
	api.GET("/audio/stream", sh.WS)
	api.GET("/tts", th.Play)
	api.POST("/tts", th.Synthesize)
	api.GET("/languages", th.Languages)
	r.GET("/healthz", hh.Get)
	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func recovery(log zerolog.Logger, dev bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, p any) {
		stack := string(debug.Stack())
		log.Error().Interface("panic", p).Str("stack", stack).Msg("panic in handler")
		msg := fmt.Sprint(p)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.ErrorBody(msg, stack, "Internal server error", dev))
	})
}
