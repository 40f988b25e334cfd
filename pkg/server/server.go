// Package server is the web front end of the converter: an HTML form, a
// JSON API, health and metrics endpoints, all on one gin router.
package server

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/raymyers/cconv/pkg/config"
	"github.com/raymyers/cconv/pkg/convert"
)

const (
	shutdownTimeout = 5 * time.Second

	sourceCache  = "cache"
	sourceEngine = "engine"
)

//go:embed templates/index.html
var templates embed.FS

// Server serves conversions over HTTP.
type Server struct {
	cfg     config.Config
	log     zerolog.Logger
	router  *gin.Engine
	cache   *cache.Cache // nil when CacheTTL is 0
	metrics *Metrics
}

// New builds a server and its routes from cfg.
func New(cfg config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		log:     logger,
		metrics: NewMetrics(),
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, cfg.CacheTTL*2)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(logger))
	router.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/index.html")))

	router.GET("/", s.index)
	router.POST("/", s.submit)
	router.GET("/healthz", s.healthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	apiV1 := router.Group("/api/v1")
	apiV1.POST("/convert", s.convertJSON)

	s.router = router
	return s
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", RequestIDHeader}
	c.ExposeHeaders = []string{RequestIDHeader, "Content-Disposition"}
	return c
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("server: start listen")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("server: shutdown ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// convert returns the translation of code, from the cache when possible.
func (s *Server) convert(code string, d convert.Direction) convert.Result {
	sum := sha256.Sum256([]byte(code))
	key := d.String() + ":" + hex.EncodeToString(sum[:])
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			res := v.(convert.Result)
			s.metrics.Observe(res, sourceCache, len(code))
			return res
		}
	}
	res := convert.Translate(code, d)
	if s.cache != nil {
		s.cache.SetDefault(key, res)
	}
	s.metrics.Observe(res, sourceEngine, len(code))
	s.log.Debug().
		Str("direction", d.String()).
		Int("bytes", len(code)).
		Int("rewrites", res.Total()).
		Msg("converted")
	return res
}
