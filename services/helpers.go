package services

import (
	"context"
	"time"

	"github.com/Vinayyy19/Furnista/events"
	"github.com/Vinayyy19/Furnista/models"
	"go.uber.org/zap"
)

const sideEffectTimeout = 5 * time.Second

// MetricsRecorder is satisfied by the CloudWatch metrics client.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// recordCount ships a counter in the background. The request context may be
// cancelled before the write finishes, so it only donates its values.
func recordCount(ctx context.Context, m MetricsRecorder, logger *zap.Logger, name string) {
	if m == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
		defer cancel()
		if err := m.RecordCount(ctx, name, nil); err != nil {
			logger.Warn("Failed to record metric", zap.String("metric", name), zap.Error(err))
		}
	}()
}

func publish(ctx context.Context, p events.Publisher, logger *zap.Logger, eventType, key string, payload interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	err := p.Publish(ctx, models.Event{
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		logger.Warn("Failed to publish event",
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// normalizePage clamps pagination input to page >= 1 and 1 <= limit <= 100.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
