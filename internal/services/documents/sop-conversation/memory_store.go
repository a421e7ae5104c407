// internal/services/documents/sop-conversation/memory_store.go
package sopconversation

import (
	"container/list"
	"context"
	"sync"
	"time"

	"advisor-services/internal/common/metrics"
)

// MemoryStoreConfig bounds an in-process store. A zero TTL disables expiry
// and a zero MaxSessions disables the size cap.
type MemoryStoreConfig struct {
	TTL             time.Duration
	MaxSessions     int
	JanitorInterval time.Duration
	Now             func() time.Time
}

// MemoryStore keeps sessions in process. The least recently written session
// is evicted once MaxSessions is exceeded.
type MemoryStore struct {
	cfg MemoryStoreConfig

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is most recently written

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type memoryEntry struct {
	session   *Session
	expiresAt time.Time
}

// NewMemoryStore starts a janitor goroutine when JanitorInterval is positive.
// Call Close to stop it.
func NewMemoryStore(cfg MemoryStoreConfig) *MemoryStore {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &MemoryStore{
		cfg:     cfg,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if cfg.JanitorInterval > 0 && cfg.TTL > 0 {
		go s.janitor()
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[session.StudentID]; ok {
		s.removeLocked(el)
	}
	el := s.order.PushFront(&memoryEntry{
		session:   session.clone(),
		expiresAt: s.expiry(),
	})
	s.entries[session.StudentID] = el

	for s.cfg.MaxSessions > 0 && s.order.Len() > s.cfg.MaxSessions {
		s.removeLocked(s.order.Back())
	}
	s.reportLocked()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, studentID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(studentID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry.session.clone(), nil
}

func (s *MemoryStore) AppendTurn(_ context.Context, studentID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(studentID)
	if !ok {
		return ErrSessionNotFound
	}
	entry.session.Turns = append(entry.session.Turns, turn)
	entry.expiresAt = s.expiry()
	s.order.MoveToFront(s.entries[studentID])
	return nil
}

// Len reports the number of held sessions, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Sweep drops every expired session.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.cfg.Now()
	removed := 0
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if s.expiredAt(el.Value.(*memoryEntry), now) {
			s.removeLocked(el)
			removed++
		}
		el = prev
	}
	if removed > 0 {
		s.reportLocked()
	}
	return removed
}

// Close stops the janitor. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *MemoryStore) janitor() {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) liveLocked(studentID string) (*memoryEntry, bool) {
	el, ok := s.entries[studentID]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*memoryEntry)
	if s.expiredAt(entry, s.cfg.Now()) {
		s.removeLocked(el)
		s.reportLocked()
		return nil, false
	}
	return entry, true
}

func (s *MemoryStore) expiry() time.Time {
	if s.cfg.TTL <= 0 {
		return time.Time{}
	}
	return s.cfg.Now().Add(s.cfg.TTL)
}

func (s *MemoryStore) expiredAt(e *memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (s *MemoryStore) removeLocked(el *list.Element) {
	entry := s.order.Remove(el).(*memoryEntry)
	delete(s.entries, entry.session.StudentID)
}

func (s *MemoryStore) reportLocked() {
	metrics.SessionsActive.Set(float64(s.order.Len()))
}
