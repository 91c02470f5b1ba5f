package app

import (
	"context"

	"portfolio-backend/internal/model"
)

// ActivityPublisher hands audit events to the broker. Publishing is
// best-effort: a failed publish never fails the request that produced it.
type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}
