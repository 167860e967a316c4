// Package notice keeps short-lived inline messages, such as a failed
// favorite update, that disappear on their own.
package notice

import (
	"sync"
	"time"
)

// Kind styles a notice.
type Kind int

const (
	KindInfo Kind = iota
	KindError
)

// Notice is one message on the board.
type Notice struct {
	ID      uint64
	Kind    Kind
	Text    string
	Expires time.Time
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// Board holds notices until their TTL passes. Safe for concurrent use.
type Board struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	seq   uint64
	items []Notice
}

// NewBoard creates a board whose notices live for ttl.
func NewBoard(ttl time.Duration, opts ...Option) *Board {
	b := &Board{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Post adds a notice and returns it.
func (b *Board) Post(kind Kind, text string) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	n := Notice{ID: b.seq, Kind: kind, Text: text, Expires: b.now().Add(b.ttl)}
	b.items = append(b.items, n)
	return n
}

// Info posts an informational notice.
func (b *Board) Info(text string) Notice { return b.Post(KindInfo, text) }

// Error posts an error notice.
func (b *Board) Error(text string) Notice { return b.Post(KindError, text) }

// Dismiss removes a notice before it expires.
func (b *Board) Dismiss(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range b.items {
		if n.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// Active prunes expired notices and returns the rest, oldest first.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	kept := b.items[:0]
	for _, n := range b.items {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	b.items = kept
	return append([]Notice(nil), kept...)
}
