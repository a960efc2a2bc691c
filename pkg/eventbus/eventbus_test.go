package eventbus

import (
	"context"
	"testing"
	"time"
)

type testEvent struct {
	Source string
	Count  int
}

func TestEventBus_BasicPubSub(t *testing.T) {
	bus := New[testEvent]()
	defer bus.Shutdown()

	events, cleanup := bus.Subscribe(context.Background())
	defer cleanup()

	delivered := bus.Publish(testEvent{Source: "localai", Count: 2})
	if delivered != 1 {
		t.Errorf("Expected 1 delivery, got %d", delivered)
	}

	select {
	case received := <-events:
		if received.Source != "localai" || received.Count != 2 {
			t.Errorf("Event mismatch: got %+v", received)
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for event")
	}
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := New[testEvent]()
	defer bus.Shutdown()

	var channels []<-chan testEvent
	for i := 0; i < 3; i++ {
		ch, cleanup := bus.Subscribe(context.Background())
		defer cleanup()
		channels = append(channels, ch)
	}

	if delivered := bus.Publish(testEvent{Count: 1}); delivered != 3 {
		t.Errorf("Expected 3 deliveries, got %d", delivered)
	}

	for i, ch := range channels {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Errorf("Subscriber %d did not receive the event", i)
		}
	}
}

func TestEventBus_ContextCancellationUnsubscribes(t *testing.T) {
	bus := New[testEvent]()
	defer bus.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	events, _ := bus.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("Expected channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Channel was not closed after cancellation")
	}

	if stats := bus.Stats(); stats.Subscribers != 0 {
		t.Errorf("Expected 0 subscribers, got %d", stats.Subscribers)
	}
}

func TestEventBus_DropsWhenBufferFull(t *testing.T) {
	bus := NewWithBuffer[testEvent](1)
	defer bus.Shutdown()

	_, cleanup := bus.Subscribe(context.Background())
	defer cleanup()

	bus.Publish(testEvent{Count: 1})
	if delivered := bus.Publish(testEvent{Count: 2}); delivered != 0 {
		t.Errorf("Expected the second event to be dropped, delivered %d", delivered)
	}

	if stats := bus.Stats(); stats.TotalDropped != 1 {
		t.Errorf("Expected 1 dropped event, got %d", stats.TotalDropped)
	}
}

func TestEventBus_ShutdownClosesAndIgnores(t *testing.T) {
	bus := New[testEvent]()

	events, cleanup := bus.Subscribe(context.Background())
	bus.Shutdown()
	bus.Shutdown()
	cleanup()

	if _, ok := <-events; ok {
		t.Error("Expected closed channel after shutdown")
	}
	if delivered := bus.Publish(testEvent{}); delivered != 0 {
		t.Errorf("Expected no deliveries after shutdown, got %d", delivered)
	}

	late, _ := bus.Subscribe(context.Background())
	if _, ok := <-late; ok {
		t.Error("Expected subscribe after shutdown to return a closed channel")
	}
}
