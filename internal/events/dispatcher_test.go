package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []EventType
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventLoginFailed, "rita", nil, nil)))
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventLoginSucceeded, "rita", nil, nil)))
	require.Equal(t, []EventType{EventLoginFailed}, got)
}

func TestDispatcher_RunsAllHandlersAndReturnsFirstError(t *testing.T) {
	d := NewInMemoryDispatcher()
	first := errors.New("first")
	calls := 0
	d.Subscribe(EventAccountLocked, func(context.Context, Event) error { calls++; return first })
	d.Subscribe(EventAccountLocked, func(context.Context, Event) error { calls++; return errors.New("second") })

	err := d.Publish(context.Background(), NewEvent(EventAccountLocked, "rita", nil, nil))
	require.ErrorIs(t, err, first)
	require.Equal(t, 2, calls)
}

func TestNewEvent(t *testing.T) {
	id := int64(9)
	e := NewEvent(EventAccountUnlocked, "rita", &id, nil)
	require.NotEmpty(t, e.ID)
	require.Equal(t, "rita", e.UserName)
	require.Equal(t, int64(9), *e.StaffID)
	require.False(t, e.Timestamp.IsZero())
}
