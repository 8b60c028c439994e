package events

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe(TopicSongCreated, TopicSongDeleted)

	b.Publish(TopicSongCreated, 42)
	b.Publish(TopicSongUpdated, 43) // not subscribed
	b.Publish(TopicSongDeleted, 44)

	want := []Event{{TopicSongCreated, 42}, {TopicSongDeleted, 44}}
	for _, w := range want {
		select {
		case got := <-ch:
			if got != w {
				t.Errorf("got %+v, want %+v", got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", w.Topic)
		}
	}

	select {
	case got := <-ch:
		t.Errorf("unexpected event %+v", got)
	default:
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := NewBroker()
	b.Subscribe(TopicSongUpdated)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(TopicSongUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a subscriber that never reads")
	}
}
