package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"newsboard/internal/metrics"
	"newsboard/internal/service"
)

// HealthChecker reports whether the backing store answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	PostService    service.PostService
	CommentService service.CommentService
	StatsService   service.StatsService
	Health         HealthChecker
	Metrics        *metrics.Metrics
	Log            logrus.FieldLogger
}

func NewHandlers(services *service.Service, health HealthChecker, m *metrics.Metrics, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		PostService:    services.Post,
		CommentService: services.Comment,
		StatsService:   services.Stats,
		Health:         health,
		Metrics:        m,
		Log:            log,
	}
}

func (h *Handlers) recordLike(kind string) {
	if h.Metrics != nil {
		h.Metrics.RecordLike(kind)
	}
}

func (h *Handlers) recordCreated(kind string) {
	if h.Metrics != nil {
		h.Metrics.RecordCreated(kind)
	}
}
