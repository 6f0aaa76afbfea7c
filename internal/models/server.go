package models

type HealthState string

const (
	HealthStatusHealthy   HealthState = "healthy"
	HealthStatusDegraded  HealthState = "degraded"
	HealthStatusUnhealthy HealthState = "unhealthy"
)

type HealthResponse struct {
	Status    HealthState            `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	Clients   map[string]HealthState `json:"clients"`
}

// ToolMetrics counts invocations of one tool
type ToolMetrics struct {
	Calls  int64 `json:"calls"`
	Errors int64 `json:"errors"`
}

type MetricsInfo struct {
	Uptime     string                 `json:"uptime"`
	TotalCalls int64                  `json:"total_calls"`
	Errors     int64                  `json:"errors"`
	Tools      map[string]ToolMetrics `json:"tools"`
}
