package config

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

const defaultLogBufferSize = 1000

// LogBuffer is a logrus hook keeping the most recent entries in a ring
// buffer so the SSE server can expose them.
type LogBuffer struct {
	sessionUID  uuid.UUID
	eventBuffer []*models.LogEntry
	maxSize     int
	currentPos  int
	isFull      bool
	mu          sync.RWMutex
}

var (
	logBuffer     *LogBuffer
	logBufferOnce sync.Once
)

// GetLogBuffer returns the process wide log buffer hook.
func GetLogBuffer() *LogBuffer {
	logBufferOnce.Do(func() {
		logBuffer = NewLogBuffer(defaultLogBufferSize)
	})
	return logBuffer
}

func NewLogBuffer(size int) *LogBuffer {
	if size <= 0 {
		size = defaultLogBufferSize
	}
	return &LogBuffer{
		sessionUID:  uuid.New(),
		eventBuffer: make([]*models.LogEntry, size),
		maxSize:     size,
	}
}

// SessionID identifies this process in exported logs.
func (t *LogBuffer) SessionID() string {
	return t.sessionUID.String()
}

func (t *LogBuffer) Fire(entry *logrus.Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.eventBuffer[t.currentPos] = models.NewLogEntry(entry)
	t.currentPos = (t.currentPos + 1) % t.maxSize

	if t.currentPos == 0 {
		t.isFull = true
	}

	return nil
}

func (t *LogBuffer) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}

func (t *LogBuffer) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.eventBuffer = make([]*models.LogEntry, t.maxSize)
	t.currentPos = 0
	t.isFull = false
}

// GetEvents returns buffered entries oldest first.
func (t *LogBuffer) GetEvents() []*models.LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.getEventsInternal()
}

// LogFilter contains the filtering criteria for log events
type LogFilter struct {
	// Filter by log levels (if empty, all levels are included)
	Levels []logrus.Level `json:"levels,omitempty"`
	// Filter events after this time
	Since *time.Time `json:"since,omitempty"`
	// Maximum number of most recent events to return (if 0, no limit)
	Limit int `json:"limit,omitempty"`
}

// GetEventsWithFilter returns the events matching filter, oldest first.
func (t *LogBuffer) GetEventsWithFilter(filter LogFilter) []*models.LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	levelMap := make(map[logrus.Level]bool, len(filter.Levels))
	for _, level := range filter.Levels {
		levelMap[level] = true
	}

	filtered := []*models.LogEntry{}
	for _, entry := range t.getEventsInternal() {
		if len(levelMap) > 0 && !levelMap[entry.Level] {
			continue
		}
		if filter.Since != nil && entry.Time.Before(*filter.Since) {
			continue
		}
		filtered = append(filtered, entry)
	}

	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[len(filtered)-filter.Limit:]
	}

	return filtered
}

// getEventsInternal assumes the caller holds the lock
func (t *LogBuffer) getEventsInternal() []*models.LogEntry {
	if !t.isFull {
		result := make([]*models.LogEntry, t.currentPos)
		copy(result, t.eventBuffer[:t.currentPos])
		return result
	}

	result := make([]*models.LogEntry, t.maxSize)
	copy(result, t.eventBuffer[t.currentPos:])
	copy(result[t.maxSize-t.currentPos:], t.eventBuffer[:t.currentPos])
	return result
}
