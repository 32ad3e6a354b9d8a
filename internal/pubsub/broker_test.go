package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishSubscribe(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Publish(CreatedEvent, "a")

	select {
	case ev := <-ch:
		require.Equal(t, CreatedEvent, ev.Type)
		require.Equal(t, "a", ev.Payload)
		require.NotEqual(t, uuid.Nil, ev.ID)
		require.False(t, ev.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_EventIDsAreUnique(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Publish(UpdatedEvent, 1)
	b.Publish(UpdatedEvent, 2)

	first := <-ch
	second := <-ch
	require.NotEqual(t, first.ID, second.ID)
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := b.Subscribe(ctx)
	ch2 := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(UpdatedEvent, "x")

	for _, ch := range []<-chan Event[string]{ch1, ch2} {
		select {
		case ev := <-ch:
			require.Equal(t, "x", ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed event")
		}
	}
}

func TestBroker_ContextCancelRemovesSubscriber(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	// The cleanup goroutine closes the channel.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return b.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestBroker_PublishDropsWhenBufferFull(t *testing.T) {
	b := NewBrokerWithBuffer[int](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Publish(UpdatedEvent, 1)
	b.Publish(UpdatedEvent, 2) // dropped, nobody is draining

	ev := <-ch
	require.Equal(t, 1, ev.Payload)

	select {
	case ev := <-ch:
		t.Fatalf("expected drop, got %v", ev.Payload)
	default:
	}
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	b := NewBroker[string]()
	b.Close()

	ch := b.Subscribe(context.Background())
	_, ok := <-ch
	require.False(t, ok)

	// Publishing after close is a no-op, not a panic.
	b.Publish(CreatedEvent, "late")
	b.Close()
}
