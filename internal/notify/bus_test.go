package notify

import (
	"testing"
	"time"
)

func TestBusDeliversOnlyToTopicSubscribers(t *testing.T) {
	bus := NewBus()
	logo := bus.Subscribe(TopicLogoUpdated)
	imported := bus.Subscribe(TopicDataImported)

	bus.Publish(Event{Topic: TopicLogoUpdated, Data: "/logo.png"})

	select {
	case event := <-logo:
		if event.Data != "/logo.png" {
			t.Fatalf("unexpected payload %q", event.Data)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be filled")
		}
	case <-time.After(time.Second):
		t.Fatal("expected logo subscriber to receive event")
	}

	select {
	case event := <-imported:
		t.Fatalf("unexpected event on data-imported channel: %#v", event)
	default:
	}
}

func TestBusDropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(TopicDataImported)

	for i := 0; i < 25; i++ {
		bus.Publish(Event{Topic: TopicDataImported})
	}

	if len(ch) != cap(ch) {
		t.Fatalf("expected buffered channel to be full, got %d/%d", len(ch), cap(ch))
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(TopicLogoUpdated)

	bus.Unsubscribe(TopicLogoUpdated, ch)
	bus.Unsubscribe(TopicLogoUpdated, ch)

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
	if got := bus.Stats()[TopicLogoUpdated]; got != 0 {
		t.Fatalf("expected no subscribers left, got %d", got)
	}

	bus.Publish(Event{Topic: TopicLogoUpdated})
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *Bus
	bus.Publish(Event{Topic: TopicLogoUpdated})
}
