// internal/bus/bus.go
//
// Process-wide notification bus. A cart mutation on any surface
// publishes TopicCartChanged; every mounted cart view subscribes and
// reacts by reloading its own collection. The bus is injected into
// publishers and subscribers so the dependency stays visible in their
// constructed interfaces.

package bus

import (
	"strings"
	"sync"
	"time"
)

const defaultSubscriberCapacity = 8

// TopicCartChanged is broadcast after any cart mutation.
const TopicCartChanged = "cart-changed"

// Signal is one broadcast notification. Signals mean "re-sync", they
// carry no entity payload.
type Signal struct {
	Topic string
	At    time.Time
}

// Logger records dropped-signal diagnostics. Matches logbook's Warn.
type Logger interface {
	Warn(format string, args ...any)
}

// Option customizes Bus construction.
type Option func(*Bus)

// WithLogger injects a logger for drop diagnostics.
func WithLogger(logger Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithSubscriberCapacity overrides the buffered channel size per
// subscriber.
func WithSubscriberCapacity(capacity int) Option {
	return func(b *Bus) {
		if capacity > 0 {
			b.channelSize = capacity
		}
	}
}

// Bus delivers signals to topic subscribers over bounded channels.
// Publish never blocks on a slow subscriber: a full channel drops the
// incoming signal, which is harmless because a later delivery of the
// same topic triggers the same reload.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	channelSize int
	logger      Logger
}

// Subscription represents an active topic subscription.
type Subscription struct {
	Signals <-chan Signal
	cancel  func()
}

// Close terminates the subscription.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// New constructs a bus with sane defaults.
func New(opts ...Option) *Bus {
	b := &Bus{
		subscribers: map[string]map[*subscriber]struct{}{},
		channelSize: defaultSubscriberCapacity,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Subscribe registers for signals on the given topic.
func (b *Bus) Subscribe(topic string) Subscription {
	topic = normalizeTopic(topic)
	sub := newSubscriber(b.channelSize)
	b.mu.Lock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = map[*subscriber]struct{}{}
	}
	b.subscribers[topic][sub] = struct{}{}
	b.mu.Unlock()
	return Subscription{
		Signals: sub.channel(),
		cancel: func() {
			b.removeSubscriber(topic, sub)
		},
	}
}

// Publish broadcasts a signal to every current subscriber of the topic.
func (b *Bus) Publish(topic string) {
	signal := Signal{Topic: normalizeTopic(topic), At: time.Now()}
	b.mu.RLock()
	subs := b.snapshotSubscribers(signal.Topic)
	b.mu.RUnlock()
	for _, sub := range subs {
		if !sub.deliver(signal) && b.logger != nil {
			b.logger.Warn("bus: dropped %s signal (subscriber backlog)", signal.Topic)
		}
	}
}

func (b *Bus) snapshotSubscribers(topic string) []*subscriber {
	live := b.subscribers[topic]
	if len(live) == 0 {
		return nil
	}
	items := make([]*subscriber, 0, len(live))
	for sub := range live {
		items = append(items, sub)
	}
	return items
}

func (b *Bus) removeSubscriber(topic string, sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs := b.subscribers[topic]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.subscribers, topic)
		}
	}
	sub.close()
}

func normalizeTopic(topic string) string {
	return strings.TrimSpace(strings.ToLower(topic))
}

type subscriber struct {
	ch      chan Signal
	closed  bool
	closeMu sync.Mutex
}

func newSubscriber(capacity int) *subscriber {
	if capacity <= 0 {
		capacity = defaultSubscriberCapacity
	}
	return &subscriber{ch: make(chan Signal, capacity)}
}

func (s *subscriber) channel() <-chan Signal {
	return s.ch
}

func (s *subscriber) deliver(signal Signal) bool {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- signal:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
