package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerFlow(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := broker.Subscribe(ctx)

	broker.Publish(CreatedEvent, "sci-fi books about time travel")
	broker.Publish(UpdatedEvent, "web_search")
	broker.Publish(FinishedEvent, "")

	want := []EventType{CreatedEvent, UpdatedEvent, FinishedEvent}
	for i, typ := range want {
		select {
		case ev := <-events:
			if ev.Type != typ {
				t.Errorf("event %d type = %s, want %s", i, ev.Type, typ)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestAutoUnsubscribe(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	events := broker.Subscribe(ctx)
	if n := broker.SubscriberCount(); n != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", n)
	}

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
	if n := broker.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount = %d after cancel, want 0", n)
	}
}

func TestNonBlockingPublish(t *testing.T) {
	broker := NewBrokerWithBuffer[int](4)
	defer broker.Shutdown()

	events := broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			broker.Publish(UpdatedEvent, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if got := len(events); got != 4 {
		t.Errorf("buffered events = %d, want 4", got)
	}
}

func TestBrokerShutdown(t *testing.T) {
	broker := NewBroker[string]()
	events := broker.Subscribe(context.Background())

	broker.Shutdown()
	broker.Shutdown()
	broker.Publish(CreatedEvent, "dropped")

	select {
	case _, ok := <-events:
		if ok {
			t.Error("subscriber channel still open after Shutdown")
		}
	case <-time.After(time.Second):
		t.Error("subscriber channel not closed after Shutdown")
	}

	late := broker.Subscribe(context.Background())
	if _, ok := <-late; ok {
		t.Error("Subscribe after Shutdown should return a closed channel")
	}
}
