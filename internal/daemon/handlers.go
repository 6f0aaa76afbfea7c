package daemon

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/config"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

// healthHandler reports which AWS clients were initialized. The server is
// unhealthy, and answers 503, when no client is usable.
func (s *Server) healthHandler(c *gin.Context) {
	clients := s.Service.GetClients()

	clientsHealth := map[string]models.HealthState{
		clients.CloudControl.Component(): clientState(clients.CloudControl.IsAvailable()),
		clients.TypeRegistry.Component(): clientState(clients.TypeRegistry.IsAvailable()),
	}

	healthy := 0
	for _, state := range clientsHealth {
		if state == models.HealthStatusHealthy {
			healthy++
		}
	}

	overallStatus := models.HealthStatusDegraded
	switch healthy {
	case len(clientsHealth):
		overallStatus = models.HealthStatusHealthy
	case 0:
		overallStatus = models.HealthStatusUnhealthy
	}

	statusCode := http.StatusOK
	if overallStatus == models.HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.GetVersion(),
		Clients:   clientsHealth,
	})
}

func clientState(available bool) models.HealthState {
	if available {
		return models.HealthStatusHealthy
	}
	return models.HealthStatusUnhealthy
}

func (s *Server) readyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.GetVersion(),
		"region":    s.Service.GetClients().Region,
	})
}

func (s *Server) metricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.Metrics.Snapshot())
}

// logsHandler returns recent log entries. Query parameters:
// level (comma separated), since (RFC 3339) and limit.
func (s *Server) logsHandler(c *gin.Context) {
	filter, err := parseLogFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResult(err.Error()))
		return
	}

	logBuffer := config.GetLogBuffer()

	c.JSON(http.StatusOK, gin.H{
		"session_id": logBuffer.SessionID(),
		"events":     logBuffer.GetEventsWithFilter(filter),
	})
}

func parseLogFilter(c *gin.Context) (config.LogFilter, error) {
	var filter config.LogFilter

	if levels := c.Query("level"); len(levels) > 0 {
		for _, name := range strings.Split(levels, ",") {
			level, err := logrus.ParseLevel(strings.TrimSpace(name))
			if err != nil {
				return filter, fmt.Errorf("invalid level: %w", err)
			}
			filter.Levels = append(filter.Levels, level)
		}
	}

	if since := c.Query("since"); len(since) > 0 {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return filter, fmt.Errorf("invalid since: %w", err)
		}
		filter.Since = &parsed
	}

	if limit := c.Query("limit"); len(limit) > 0 {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 0 {
			return filter, fmt.Errorf("invalid limit: %q", limit)
		}
		filter.Limit = parsed
	}

	return filter, nil
}
