// Package transport carries prepared control messages to the network. The
// protocol layer only needs an awaitable send that reports success or
// failure; the envelope encryption and routing behind it are not modeled
// here.
package transport

import (
	"context"
	"errors"
	"sync"

	"github.com/opensesh/groupcore/internal/wire"
)

// Prepared is one outbound control message bound to a destination: a group
// id for group-channel sends, or a user's session id for 1:1 sends.
type Prepared struct {
	ID          string
	Destination string
	Message     wire.ControlMessage
}

// Sender delivers a prepared message. Send blocks until the transport has
// accepted or rejected the message.
type Sender interface {
	Send(ctx context.Context, p Prepared) error
}

// Receiver yields inbound messages. Receive blocks until a message
// arrives, the context is done, or the link fails.
type Receiver interface {
	Receive(ctx context.Context) (Prepared, error)
}

// ErrSendFailed wraps transport-level delivery failures.
var ErrSendFailed = errors.New("transport: send failed")

// Mem is an in-process Sender and Receiver that records everything it is
// asked to send and replays whatever tests enqueue on its inbox.
// FailMatching makes sends fail while the predicate matches, for driving
// the two-phase rotation paths in tests.
type Mem struct {
	mu    sync.Mutex
	sent  []Prepared
	fail  func(Prepared) bool
	inbox chan Prepared
}

var (
	_ Sender   = (*Mem)(nil)
	_ Receiver = (*Mem)(nil)
)

func NewMem() *Mem { return &Mem{inbox: make(chan Prepared, 64)} }

func (m *Mem) Send(ctx context.Context, p Prepared) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil && m.fail(p) {
		return ErrSendFailed
	}
	m.sent = append(m.sent, p)
	return nil
}

// Enqueue places an inbound message on the inbox for Receive to pick up.
func (m *Mem) Enqueue(p Prepared) {
	m.inbox <- p
}

// Receive returns the next enqueued inbound message.
func (m *Mem) Receive(ctx context.Context) (Prepared, error) {
	select {
	case <-ctx.Done():
		return Prepared{}, ctx.Err()
	case p := <-m.inbox:
		return p, nil
	}
}

// FailMatching installs a failure predicate; nil clears it.
func (m *Mem) FailMatching(fn func(Prepared) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fn
}

// Sent returns a copy of everything sent so far.
func (m *Mem) Sent() []Prepared {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Prepared, len(m.sent))
	copy(out, m.sent)
	return out
}

// SentTo filters sent messages by destination.
func (m *Mem) SentTo(destination string) []Prepared {
	var out []Prepared
	for _, p := range m.Sent() {
		if p.Destination == destination {
			out = append(out, p)
		}
	}
	return out
}

// Reset forgets all recorded sends.
func (m *Mem) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}
