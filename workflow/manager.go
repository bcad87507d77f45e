package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/drinkph/portal-go/models"
)

// Manager hands out one form session per client and evicts idle ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[uint]*entry

	clock         Clock
	store         DraftStore
	gateway       Gateway
	notifier      Notifier
	autoSaveDelay time.Duration
	dismissDelay  time.Duration
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

func NewManager(clock Clock, store DraftStore, gateway Gateway, notifier Notifier, autoSaveDelay, dismissDelay time.Duration) *Manager {
	return &Manager{
		sessions:      make(map[uint]*entry),
		clock:         clock,
		store:         store,
		gateway:       gateway,
		notifier:      notifier,
		autoSaveDelay: autoSaveDelay,
		dismissDelay:  dismissDelay,
	}
}

// Session returns the client's form session, creating it (and loading any
// auto-saved draft) on first use.
func (m *Manager) Session(ctx context.Context, user *models.User) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[user.ID]; ok {
		e.lastSeen = m.clock.Now()
		return e.session
	}

	clientID := user.ID
	cfg := Config{
		DraftKey:      DraftKey(user.ID),
		ClientID:      &clientID,
		AutoSaveDelay: m.autoSaveDelay,
		DismissDelay:  m.dismissDelay,
	}
	s := NewSession(ctx, cfg, m.clock, m.store, m.gateway, m.notifier)
	m.sessions[user.ID] = &entry{session: s, lastSeen: m.clock.Now()}
	return s
}

// EvictIdle closes sessions untouched for longer than maxIdle and reports
// how many were dropped. Their drafts stay in the store.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	var stale []*Session
	cutoff := m.clock.Now().Add(-maxIdle)
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

// DraftKey is the draft store key for a client.
func DraftKey(userID uint) string {
	return fmt.Sprintf("portal:draft:%d", userID)
}
