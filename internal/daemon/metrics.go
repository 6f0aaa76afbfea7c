package daemon

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

type toolCounters struct {
	calls  atomic.Int64
	errors atomic.Int64
}

// Metrics counts tool calls for the lifetime of the process.
type Metrics struct {
	startTime time.Time
	total     atomic.Int64
	errors    atomic.Int64
	tools     sync.Map // tool name -> *toolCounters
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now().UTC(),
	}
}

func (m *Metrics) RecordCall(tool string, failed bool) {
	value, _ := m.tools.LoadOrStore(tool, &toolCounters{})
	counters := value.(*toolCounters)

	m.total.Add(1)
	counters.calls.Add(1)

	if failed {
		m.errors.Add(1)
		counters.errors.Add(1)
	}
}

func (m *Metrics) Snapshot() models.MetricsInfo {
	info := models.MetricsInfo{
		Uptime:     time.Since(m.startTime).String(),
		TotalCalls: m.total.Load(),
		Errors:     m.errors.Load(),
		Tools:      map[string]models.ToolMetrics{},
	}

	m.tools.Range(func(key, value any) bool {
		counters := value.(*toolCounters)
		info.Tools[key.(string)] = models.ToolMetrics{
			Calls:  counters.calls.Load(),
			Errors: counters.errors.Load(),
		}
		return true
	})

	return info
}
