package audit

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Publisher hands events to the audit worker over a bounded channel. Emit
// never blocks the caller: audit is an observation of the lifecycle, not a
// participant in it, so a full buffer drops the event and counts the drop.
type Publisher struct {
	inbox   chan Event
	dropped atomic.Uint64
	nowFn   func() time.Time
}

func NewPublisher(buffer int) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox: make(chan Event, buffer),
		nowFn: time.Now,
	}
}

// Emit stamps the event and queues it for the worker.
func (p *Publisher) Emit(event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.At.IsZero() {
		event.At = p.nowFn().UTC()
	}
	select {
	case p.inbox <- event:
	default:
		p.dropped.Add(1)
	}
}

// Inbox is the worker's end of the channel.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Dropped reports how many events were lost to a full buffer.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}
