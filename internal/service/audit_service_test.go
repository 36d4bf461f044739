package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/gym-service/internal/events"
)

type fakePublisher struct {
	mu       sync.Mutex
	enabled  bool
	fail     bool
	channel  string
	payloads [][]byte
}

func (p *fakePublisher) Enabled() bool { return p.enabled }

func (p *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("connection refused")
	}
	p.channel = channel
	p.payloads = append(p.payloads, payload)
	return nil
}

type fakeRecorder struct {
	outcomes []string
}

func (r *fakeRecorder) RecordLogin(outcome string) { r.outcomes = append(r.outcomes, outcome) }

func TestAuditService_ForwardsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &fakePublisher{enabled: true}
	recorder := &fakeRecorder{}

	NewAuditService(AuditDependencies{
		Dispatcher: dispatcher,
		Logger:     zap.New(core),
		Publisher:  publisher,
		Recorder:   recorder,
		Channel:    "gym:auth-events",
	}).RegisterHandlers()

	id := int64(3)
	locked := events.NewEvent(events.EventAccountLocked, "rita", &id, events.AccountLockedPayload{Threshold: 3})
	require.NoError(t, dispatcher.Publish(context.Background(), locked))
	require.NoError(t, dispatcher.Publish(context.Background(),
		events.NewEvent(events.EventStaffCreated, "novo", nil, nil)))

	require.Equal(t, "gym:auth-events", publisher.channel)
	require.Len(t, publisher.payloads, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &decoded))
	require.Equal(t, "account_locked", decoded["type"])
	require.Equal(t, "rita", decoded["userName"])
	require.EqualValues(t, 3, decoded["staffId"])

	require.Equal(t, []string{"account_locked"}, recorder.outcomes)
	require.Equal(t, 1, logs.FilterMessage("auth event").FilterField(zap.String("event_type", "account_locked")).Len())
}

func TestAuditService_PublishFailureIsSwallowed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher()

	NewAuditService(AuditDependencies{
		Dispatcher: dispatcher,
		Logger:     zap.New(core),
		Publisher:  &fakePublisher{enabled: true, fail: true},
		Channel:    "gym:auth-events",
	}).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventLoginSucceeded, "rita", nil, nil))
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("forward auth event").Len())
}

func TestAuditService_DisabledPublisher(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &fakePublisher{enabled: false}

	NewAuditService(AuditDependencies{
		Dispatcher: dispatcher,
		Publisher:  publisher,
		Channel:    "gym:auth-events",
	}).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(),
		events.NewEvent(events.EventLoginFailed, "rita", nil, events.LoginFailedPayload{UnknownAccount: true})))
	require.Empty(t, publisher.payloads)
}
