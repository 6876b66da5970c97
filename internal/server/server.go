// Package server exposes blotter forms over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gitqueue/OG-Platform/pkg/blotter"
	"github.com/gitqueue/OG-Platform/pkg/orchestrator"
)

const shutdownTimeout = 5 * time.Second

// Config holds the listen address and logger. Addr defaults to ":8080".
type Config struct {
	Addr   string
	Logger *zap.Logger
}

// Server serves rendered blotter pages backed by one orchestrator.
type Server struct {
	cfg  Config
	orch *orchestrator.Orchestrator
}

// New validates orch and fills Config defaults.
func New(orch *orchestrator.Orchestrator, cfg Config) (*Server, error) {
	if orch == nil {
		return nil, errors.New("orchestrator is required")
	}
	if err := orch.Err(); err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Server{cfg: cfg, orch: orch}, nil
}

// Router returns the gin handler: /healthz plus the /blotter/forms routes.
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.accessLog())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	forms := r.Group("/blotter/forms")
	forms.GET("", s.handleFormsList)
	forms.GET("/:trade", s.handleFormPage)
	forms.POST("/:trade", s.handleFormPage)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("blotter server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.cfg.Logger.Info("blotter server stopped")
		return nil
	}
}

type tradeView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Template string `json:"template"`
}

type formRequest struct {
	Data    map[string]any    `json:"data"`
	TypeMap map[string]string `json:"type_map"`
	Extras  map[string]any    `json:"extras"`
}

func (s *Server) handleFormsList(c *gin.Context) {
	trades := s.orch.Trades()
	out := make([]tradeView, 0, len(trades))
	for _, trade := range trades {
		out = append(out, tradeView{
			ID:       trade.ID,
			Name:     trade.Name,
			Title:    trade.Title,
			Template: trade.Template,
		})
	}
	c.JSON(http.StatusOK, gin.H{"forms": out})
}

// handleFormPage renders the dialog page for one trade. POST bodies prefill
// the form with existing trade data.
func (s *Server) handleFormPage(c *gin.Context) {
	req := orchestrator.Request{Trade: c.Param("trade")}
	if c.Request.Method == http.MethodPost {
		var body formRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.Data = body.Data
		req.TypeMap = body.TypeMap
		req.Extras = body.Extras
	}

	page, err := s.orch.Generate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, blotter.ErrUnknownTradeType) {
			status = http.StatusNotFound
		}
		s.cfg.Logger.Warn("form render failed",
			zap.String("trade", req.Trade),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.cfg.Logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
