// Package store keeps received messages in memory for a short fixed
// lifetime. There is no persistence: a restart or an expiry both make a
// message unrecoverable, which is the point of the whole service.
package store

import (
	"sync"
	"time"

	"github.com/90umut/mailtrash/internal/logging"
	"github.com/90umut/mailtrash/internal/metrics"
	"github.com/90umut/mailtrash/internal/models"

	"github.com/google/uuid"
)

// Senders expect one-time codes to be used within minutes, so 15 minutes is
// enough headroom for delivery delays without hoarding mail.
const DefaultTTL = 15 * time.Minute

type entry struct {
	msg      *models.Message
	deadline time.Time
}

// Store maps opaque identifiers to message snapshots. Every entry carries
// its own deadline, fixed at insertion; reads never extend it. Expired
// entries are invisible to readers immediately and reclaimed by the sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl      time.Duration
	interval time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a Store with the given entry lifetime and sweep cadence.
// Non-positive values fall back to 15 minutes and 1 minute respectively.
func New(ttl, sweepInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	return &Store{
		entries:  make(map[string]entry),
		ttl:      ttl,
		interval: sweepInterval,
		stop:     make(chan struct{}),
	}
}

// Put inserts a snapshot, stamps it with a fresh opaque identifier and
// returns that identifier. The entry expires one TTL after insertion.
func (s *Store) Put(msg *models.Message) string {
	return s.putAt(msg, time.Now())
}

// putAt allows testing with a fixed "now" time for deterministic unit tests
func (s *Store) putAt(msg *models.Message, now time.Time) string {
	id := uuid.New().String()
	msg.ID = id

	s.mu.Lock()
	s.entries[id] = entry{msg: msg, deadline: now.Add(s.ttl)}
	size := len(s.entries)
	s.mu.Unlock()

	metrics.StoreSize.Set(float64(size))
	return id
}

// Get returns the snapshot for id when it exists and has not expired.
// Unknown, malformed and expired identifiers all read as absent; Get never
// fails any harder than that.
func (s *Store) Get(id string) (*models.Message, bool) {
	return s.getAt(id, time.Now())
}

func (s *Store) getAt(id string, now time.Time) (*models.Message, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || now.After(e.deadline) {
		return nil, false
	}
	return e.msg, true
}

// Len reports how many entries the store currently holds, counting entries
// past their deadline that the sweeper has not reclaimed yet.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartSweeper launches the background loop that reclaims expired entries.
func (s *Store) StartSweeper() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweepAt(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper and waits for it to exit.
func (s *Store) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Store) sweepAt(now time.Time) int {
	s.mu.Lock()

	removed := 0
	for id, e := range s.entries {
		if now.After(e.deadline) {
			delete(s.entries, id)
			removed++
		}
	}
	remaining := len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		metrics.MessagesExpired.Add(float64(removed))
		metrics.StoreSize.Set(float64(remaining))
		logging.Log.Debugf("Swept %d expired messages, %d remaining", removed, remaining)
	}
	return removed
}
