// Package events publishes domain events after successful writes.
package events

import (
	"context"

	"go.uber.org/zap"

	applog "muciocar/internal/log"
)

// Routing keys.
const (
	AppointmentBooked    = "appointment.booked"
	AppointmentUpdated   = "appointment.updated"
	AppointmentCancelled = "appointment.cancelled"
	TestimonialSubmitted = "testimonial.submitted"
	TestimonialApproved  = "testimonial.approved"
)

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
	Close() error
}

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher { return &LogPublisher{} }

func (LogPublisher) Publish(_ context.Context, key string, v any) error {
	applog.L().Info("event.publish", zap.String("key", key), zap.Any("payload", v))
	return nil
}

func (LogPublisher) Close() error { return nil }

// Emit publishes and logs a failure instead of returning it; events never
// fail the request that produced them.
func Emit(ctx context.Context, p Publisher, key string, v any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, key, v); err != nil {
		applog.L().Warn("event.publish.fail", zap.String("key", key), zap.Error(err))
	}
}
