package handlers

import (
	"context"

	"battery-lab-api/services"
)

// eventPublisher announces completed work on the live channel. Failures are
// counted and logged by the cache; the request that caused the event still
// succeeds.
type eventPublisher struct {
	cache Cache
}

func (p *eventPublisher) publish(ctx context.Context, eventType string, data any) {
	if p == nil || p.cache == nil {
		return
	}
	_ = p.cache.Publish(ctx, services.EventsChannel, services.NewEvent(eventType, data))
}
