package application

import (
	"sync"
	"time"

	"activityroster/internal/domain/entities"
)

// DefaultStatusTTL is how long a status message stays visible.
const DefaultStatusTTL = 5 * time.Second

type stopper interface {
	Stop() bool
}

// StatusBoard is the Idle -> Visible -> Idle machine of the status area.
// Showing a message supersedes the visible one at once and restarts the
// hide timer from the new message.
type StatusBoard struct {
	mu        sync.Mutex
	ttl       time.Duration
	afterFunc func(time.Duration, func()) stopper

	current entities.StatusMessage
	seq     uint64
	timer   stopper
	onHide  func()
}

func NewStatusBoard(ttl time.Duration) *StatusBoard {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusBoard{
		ttl: ttl,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// Show makes msg visible. onHide, if not nil, runs once when msg leaves the
// area, either on expiry or when a newer message replaces it.
func (b *StatusBoard) Show(msg entities.StatusMessage, onHide func()) {
	b.mu.Lock()
	previous := b.onHide
	if b.timer != nil {
		b.timer.Stop()
	}
	b.seq++
	id := b.seq
	msg.Visible = true
	b.current = msg
	b.onHide = onHide
	b.timer = b.afterFunc(b.ttl, func() { b.expire(id) })
	b.mu.Unlock()

	if previous != nil {
		previous()
	}
}

// Current returns the status area as it is now.
func (b *StatusBoard) Current() entities.StatusMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *StatusBoard) expire(id uint64) {
	b.mu.Lock()
	if id != b.seq || !b.current.Visible {
		b.mu.Unlock()
		return
	}
	b.current.Visible = false
	hide := b.onHide
	b.onHide = nil
	b.timer = nil
	b.mu.Unlock()

	if hide != nil {
		hide()
	}
}
