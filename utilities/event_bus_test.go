package utilities

import (
	"testing"
	"time"
)

func TestEventBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewEventBus()
	first := make(chan interface{}, 1)
	second := make(chan interface{}, 1)

	bus.Subscribe(EventAttemptCreated, func(data interface{}) { first <- data })
	bus.Subscribe(EventAttemptCreated, func(data interface{}) { second <- data })

	bus.Publish(EventAttemptCreated, "payload")

	for i, ch := range []chan interface{}{first, second} {
		select {
		case data := <-ch:
			if data != "payload" {
				t.Fatalf("subscriber %d got wrong payload: %v", i, data)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestEventBusIgnoresOtherEvents(t *testing.T) {
	bus := NewEventBus()
	got := make(chan interface{}, 1)
	bus.Subscribe("quiz.deleted", func(data interface{}) { got <- data })

	// No subscribers for this event; must neither panic nor misroute.
	bus.Publish(EventAttemptCreated, "payload")

	select {
	case data := <-got:
		t.Fatalf("handler received an event it never subscribed to: %v", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBusSlowHandlerDoesNotBlockPublish(t *testing.T) {
	bus := NewEventBus()
	release := make(chan struct{})
	bus.Subscribe(EventAttemptCreated, func(interface{}) { <-release })

	done := make(chan struct{})
	go func() {
		bus.Publish(EventAttemptCreated, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow handler")
	}
	close(release)
}
