package models

import (
	"time"

	"github.com/sirupsen/logrus"
)

type LogEntry struct {

	// Contains all the fields set by the caller
	Data logrus.Fields `json:"data,omitempty"`

	// Time at which the log entry was created
	Time time.Time `json:"time"`

	// Level the log entry was logged at
	Level logrus.Level `json:"level,omitempty"`

	// Message passed to the logger
	Message string `json:"message,omitempty"`
}

func NewLogEntry(entry *logrus.Entry) *LogEntry {
	data := make(logrus.Fields, len(entry.Data))
	for key, value := range entry.Data {
		if err, ok := value.(error); ok {
			// errors marshal to {} otherwise
			data[key] = err.Error()
			continue
		}
		data[key] = value
	}

	return &LogEntry{
		Data:    data,
		Time:    entry.Time,
		Level:   entry.Level,
		Message: entry.Message,
	}
}
