// Package daemon hosts the Cloud Control tools as an MCP server over stdio
// or over SSE, in which case a gin router also serves health, readiness,
// metrics and recent logs.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/config"
	"github.com/thand-io/cloudcontrol-mcp/internal/tools"
)

const (
	sseEndpoint     = "/sse"
	messageEndpoint = "/message"
	shutdownTimeout = 5 * time.Second
)

// Server owns the MCP server and whichever transport it is exposed on.
type Server struct {
	Config    *config.Config
	Service   *tools.Service
	Metrics   *Metrics
	MCP       *server.MCPServer
	StartTime time.Time

	httpServer *http.Server
	sseServer  *server.SSEServer
	limiter    *RateLimiter
}

func NewServer(cfg *config.Config, service *tools.Service) *Server {
	metrics := NewMetrics()

	return &Server{
		Config:    cfg,
		Service:   service,
		Metrics:   metrics,
		MCP:       NewMCPServer(service, metrics),
		StartTime: time.Now().UTC(),
	}
}

// NewNotifier returns the notifier that routes tool notifications to the
// MCP client session of the current call.
func NewNotifier() tools.Notifier {
	return tools.NotifierFunc(notifyClient)
}

func (s *Server) GetVersion() string {
	return common.GetVersion()
}

// Start serves the configured transport until ctx is cancelled or the
// transport ends.
func (s *Server) Start(ctx context.Context) error {
	if s.Config.IsSSE() {
		return s.serveSSE(ctx)
	}
	return s.serveStdio(ctx)
}

func (s *Server) serveStdio(ctx context.Context) error {
	logrus.Info("Using standard stdio transport")

	errorLog := logrus.StandardLogger().WriterLevel(logrus.ErrorLevel)
	defer errorLog.Close()

	stdio := server.NewStdioServer(s.MCP)
	stdio.SetErrorLogger(log.New(errorLog, "", 0))

	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	return nil
}

func (s *Server) serveSSE(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	s.sseServer = server.NewSSEServer(s.MCP,
		server.WithBaseURL(s.Config.GetBaseURL()),
		server.WithSSEEndpoint(sseEndpoint),
		server.WithMessageEndpoint(messageEndpoint),
		server.WithKeepAlive(true),
	)

	if s.Config.Server.RateLimit.Enabled {
		s.limiter = NewRateLimiter(s.Config.Server.RateLimit.Rate, s.Config.Server.RateLimit.Burst)
	}

	addr := s.Config.GetListenAddress()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.Config.Server.Limits.ReadTimeout,
		WriteTimeout: s.Config.Server.Limits.WriteTimeout,
		IdleTimeout:  s.Config.Server.Limits.IdleTimeout,
	}

	errChan := make(chan error, 1)

	go func() {
		errChan <- s.httpServer.ListenAndServe()
	}()

	logrus.WithFields(logrus.Fields{
		"address":  addr,
		"base_url": s.Config.GetBaseURL(),
	}).Info("Using SSE transport")

	select {
	case err := <-errChan:
		s.Stop()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.Stop()
		return nil
	}
}

// Stop closes SSE sessions and drains the HTTP server. It is a no-op for
// the stdio transport.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.limiter != nil {
		s.limiter.Stop()
	}

	if s.sseServer != nil {
		if err := s.sseServer.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("Failed to close SSE sessions")
		}
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("Server shutdown")
		}
		logrus.Info("Server exiting")
	}
}

// Router builds the gin engine for the SSE transport. The SSE routes are
// only mounted once the SSE server exists.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(CorrelationMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		LogWithCorrelation(c).WithField("panic", err).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}))

	s.setupRoutes(router)

	return router
}

func (s *Server) setupRoutes(router *gin.Engine) {
	if s.Config.Server.Health.Enabled {
		router.GET(s.Config.Server.Health.Path, s.healthHandler)
	}

	if s.Config.Server.Ready.Enabled {
		router.GET(s.Config.Server.Ready.Path, s.readyHandler)
	}

	if s.Config.Server.Metrics.Enabled {
		router.GET(s.Config.Server.Metrics.Path, s.metricsHandler)
	}

	if s.Config.Server.Logs.Enabled {
		router.GET(s.Config.Server.Logs.Path, s.logsHandler)
	}

	if s.sseServer == nil {
		return
	}

	router.GET(sseEndpoint, gin.WrapH(s.sseServer.SSEHandler()))

	messageHandlers := []gin.HandlerFunc{}
	if s.limiter != nil {
		messageHandlers = append(messageHandlers, s.limiter.Middleware())
	}
	messageHandlers = append(messageHandlers, gin.WrapH(s.sseServer.MessageHandler()))

	router.POST(messageEndpoint, messageHandlers...)
}
