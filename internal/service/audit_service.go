package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/events"
)

// EventPublisher forwards serialized events to an external channel.
type EventPublisher interface {
	Enabled() bool
	Publish(ctx context.Context, channel string, payload []byte) error
}

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

// AuditService records authentication events. Delivery failures are logged
// and never surface to the request that produced the event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	publisher  EventPublisher
	recorder   LoginRecorder
	channel    string
}

// AuditDependencies encapsulates collaborators of the audit service.
type AuditDependencies struct {
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Publisher  EventPublisher
	Recorder   LoginRecorder
	Channel    string
}

// NewAuditService creates the service.
func NewAuditService(deps AuditDependencies) *AuditService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: deps.Dispatcher,
		logger:     logger,
		publisher:  deps.Publisher,
		recorder:   deps.Recorder,
		channel:    deps.Channel,
	}
}

// RegisterHandlers subscribes to every auth event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AuthEventTypes() {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("user_name", event.UserName),
	}
	if event.StaffID != nil {
		fields = append(fields, zap.Int64("staff_id", *event.StaffID))
	}
	if event.Actor != nil {
		fields = append(fields, zap.String("actor", event.Actor.UserName))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}

	switch event.Type {
	case events.EventAccountLocked, events.EventLoginFailed:
		a.logger.Warn("auth event", fields...)
	default:
		a.logger.Info("auth event", fields...)
	}

	if a.recorder != nil {
		switch event.Type {
		case events.EventLoginSucceeded, events.EventLoginFailed, events.EventAccountLocked:
			a.recorder.RecordLogin(string(event.Type))
		}
	}

	a.forward(ctx, event)
	return nil
}

func (a *AuditService) forward(ctx context.Context, event events.Event) {
	if a.publisher == nil || !a.publisher.Enabled() || a.channel == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		a.logger.Error("encode auth event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	if err := a.publisher.Publish(ctx, a.channel, body); err != nil {
		a.logger.Warn("forward auth event", zap.String("channel", a.channel), zap.Error(err))
	}
}
