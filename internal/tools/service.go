// Package tools implements the Cloud Control tool operations exposed to MCP
// hosts. Every operation checks that its client is available, assembles the
// request, performs a single remote call off the dispatch goroutine, and
// normalizes the response into plain JSON-friendly models. Failures never
// escape as Go errors: they are logged, reported to the Notifier, and
// returned as models.ErrorResult.
package tools

import (
	"github.com/thand-io/cloudcontrol-mcp/internal/providers/aws"
)

// Service is safe for concurrent use; it holds no per-call state.
type Service struct {
	clients  *aws.Clients
	notifier Notifier
}

func NewService(clients *aws.Clients, notifier Notifier) *Service {
	if clients == nil {
		clients = aws.NewUnavailableClients("", nil)
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		clients:  clients,
		notifier: notifier,
	}
}

func (s *Service) GetClients() *aws.Clients {
	return s.clients
}
