package bus

import (
	"testing"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	b := New()
	first := b.Subscribe(TopicCartChanged)
	defer first.Close()
	second := b.Subscribe(TopicCartChanged)
	defer second.Close()
	b.Publish(TopicCartChanged)
	for i, sub := range []Subscription{first, second} {
		select {
		case got := <-sub.Signals:
			if got.Topic != TopicCartChanged {
				t.Fatalf("subscriber %d got topic %q", i, got.Topic)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestPublishFiresExactlyOncePerSignal(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicCartChanged)
	defer sub.Close()
	b.Publish(TopicCartChanged)
	<-sub.Signals
	select {
	case <-sub.Signals:
		t.Fatalf("single publish delivered twice")
	default:
	}
}

func TestPublishIgnoresOtherTopics(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicCartChanged)
	defer sub.Close()
	b.Publish("orders-changed")
	select {
	case got := <-sub.Signals:
		t.Fatalf("unexpected signal: %s", got.Topic)
	default:
	}
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	b := New(WithSubscriberCapacity(1))
	sub := b.Subscribe(TopicCartChanged)
	defer sub.Close()
	b.Publish(TopicCartChanged)
	// Second publish hits a full channel and must return immediately.
	b.Publish(TopicCartChanged)
	if got := <-sub.Signals; got.Topic != TopicCartChanged {
		t.Fatalf("unexpected topic %q", got.Topic)
	}
	select {
	case <-sub.Signals:
		t.Fatalf("overflowed signal should have been dropped")
	default:
	}
}

func TestClosedSubscriberStopsReceiving(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicCartChanged)
	sub.Close()
	b.Publish(TopicCartChanged)
	if _, open := <-sub.Signals; open {
		t.Fatalf("channel must be closed after Close")
	}
}
