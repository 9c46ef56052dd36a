package hub

import (
	"github.com/aterm-app/aterm/internal/domain"
	"github.com/aterm-app/aterm/internal/domain/events"
)

// ChannelSubscriber is a subscriber that sends events to a channel.
type ChannelSubscriber struct {
	id     string
	send   chan events.Event
	done   chan struct{}
	closed bool
}

// NewChannelSubscriber creates a new channel-based subscriber.
func NewChannelSubscriber(id string, bufferSize int) *ChannelSubscriber {
	return &ChannelSubscriber{
		id:   id,
		send: make(chan events.Event, bufferSize),
		done: make(chan struct{}),
	}
}

// ID returns the subscriber's unique identifier.
func (s *ChannelSubscriber) ID() string {
	return s.id
}

// Send sends an event to the subscriber.
func (s *ChannelSubscriber) Send(event events.Event) error {
	if s.closed {
		return domain.ErrSubscriberClosed
	}

	select {
	case s.send <- event:
		return nil
	default:
		// Channel full, subscriber is too slow
		return domain.ErrSubscriberClosed
	}
}

// Close closes the subscriber.
func (s *ChannelSubscriber) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	close(s.send)
	return nil
}

// Done returns a channel that's closed when the subscriber is done.
func (s *ChannelSubscriber) Done() <-chan struct{} {
	return s.done
}

// Events returns the channel to receive events from.
func (s *ChannelSubscriber) Events() <-chan events.Event {
	return s.send
}

// FuncSubscriber invokes a callback for every event. The application layer
// uses it to pump hub events into the registry and the webview bridge.
type FuncSubscriber struct {
	id     string
	done   chan struct{}
	closed bool
	fn     func(event events.Event)
}

// NewFuncSubscriber creates a subscriber that calls fn for each event.
func NewFuncSubscriber(id string, fn func(event events.Event)) *FuncSubscriber {
	return &FuncSubscriber{
		id:   id,
		done: make(chan struct{}),
		fn:   fn,
	}
}

// ID returns the subscriber's unique identifier.
func (s *FuncSubscriber) ID() string {
	return s.id
}

// Send invokes the callback.
func (s *FuncSubscriber) Send(event events.Event) error {
	if s.closed {
		return domain.ErrSubscriberClosed
	}
	if s.fn != nil {
		s.fn(event)
	}
	return nil
}

// Close closes the subscriber.
func (s *FuncSubscriber) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	return nil
}

// Done returns a channel that's closed when the subscriber is done.
func (s *FuncSubscriber) Done() <-chan struct{} {
	return s.done
}
