package view

import (
	"sync"

	"github.com/govhub/helpdesk-portal/internal/session"
)

// Notifier collects the notifications raised while handling one request.
// It is safe for concurrent use by parallel fetches.
type Notifier struct {
	mu    sync.Mutex
	items []session.Flash
}

func (n *Notifier) add(level session.FlashLevel, msg string) {
	n.mu.Lock()
	n.items = append(n.items, session.Flash{Level: level, Message: msg})
	n.mu.Unlock()
}

func (n *Notifier) Error(msg string)   { n.add(session.FlashError, msg) }
func (n *Notifier) Success(msg string) { n.add(session.FlashSuccess, msg) }
func (n *Notifier) Info(msg string)    { n.add(session.FlashInfo, msg) }

// Merge appends earlier flashes (e.g. from the session) ahead of new ones.
func (n *Notifier) Merge(flashes []session.Flash) {
	n.mu.Lock()
	n.items = append(append([]session.Flash(nil), flashes...), n.items...)
	n.mu.Unlock()
}

// Items returns a copy of the collected notifications.
func (n *Notifier) Items() []session.Flash {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]session.Flash(nil), n.items...)
}

// Count returns how many notifications of level were raised.
func (n *Notifier) Count(level session.FlashLevel) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, f := range n.items {
		if f.Level == level {
			total++
		}
	}
	return total
}
