package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
)

func taskCreatedEvent() domain.Event {
	return domain.Event{
		ID:   uuid.New(),
		Type: domain.EventTaskCreated,
		Payload: domain.TaskCreatedPayload{
			TaskID:     uuid.New(),
			FriendlyID: "ENG-1",
		},
	}
}

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []domain.Event
	dispatcher.Subscribe(domain.EventTaskCreated, func(_ context.Context, event domain.Event) error {
		received = append(received, event)
		return nil
	})

	event := taskCreatedEvent()
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.Len(t, received, 1)
	assert.Equal(t, event.ID, received[0].ID)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(domain.EventTaskAssigned, func(context.Context, domain.Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), taskCreatedEvent()))
	assert.False(t, called)
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(domain.EventTaskCreated, func(context.Context, domain.Event) error {
		return errors.New("handler failed")
	})
	secondCalled := false
	dispatcher.Subscribe(domain.EventTaskCreated, func(context.Context, domain.Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), taskCreatedEvent()))
	assert.True(t, secondCalled)
}

func TestDispatcherWithNoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	require.NoError(t, dispatcher.Publish(context.Background(), taskCreatedEvent()))
}
