package service

import (
	"context"
	"errors"
	"time"

	"github.com/soundplus/storefront/internal/events"
	"github.com/soundplus/storefront/internal/transport"
	"github.com/soundplus/storefront/pkg/logging"
)

var (
	ErrValidation      = transport.ErrValidation
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

const publishTimeout = 5 * time.Second

// publish never fails the caller; a lost audit event is only logged.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "type", e.Type, "error", err)
	}
}
