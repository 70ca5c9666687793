// Package storage provides event storage implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/loglumen/loglumen-server/internal/core"
	"github.com/loglumen/loglumen-server/pkg/logger"
)

// shardCount is the number of host shards. Hosts are distributed across
// shards so unrelated hosts never contend on the same lock.
const shardCount = 16

// DefaultPerHostCap bounds retained raw events per host when no cap is
// configured.
const DefaultPerHostCap = 1000

// MemoryStore implements core.EventSink using in-memory per-host ring
// buffers. Each host keeps at most perHostCap events; once full, appending
// evicts that host's oldest event in O(1). Recency wins over completeness.
type MemoryStore struct {
	shards     [shardCount]*shard
	perHostCap int
}

type shard struct {
	mu    sync.RWMutex
	hosts map[string]*core.EventRing
}

// NewMemoryStore creates an in-memory store retaining up to perHostCap
// events per host. A cap below 1 falls back to DefaultPerHostCap.
func NewMemoryStore(perHostCap int) *MemoryStore {
	if perHostCap < 1 {
		perHostCap = DefaultPerHostCap
	}
	s := &MemoryStore{perHostCap: perHostCap}
	for i := range s.shards {
		s.shards[i] = &shard{hosts: make(map[string]*core.EventRing)}
	}
	return s
}

// shardFor returns the shard owning the given host.
func (s *MemoryStore) shardFor(host string) *shard {
	return s.shards[murmur3.Sum32([]byte(host))%shardCount]
}

// Append inserts an event into its host's retained sequence. Events are kept
// in arrival order, not event-time order; agent clocks are not assumed to be
// synchronized. Append never fails for a validated event.
func (s *MemoryStore) Append(ctx context.Context, event core.Event) error {
	sh := s.shardFor(event.Host)

	sh.mu.Lock()
	ring, ok := sh.hosts[event.Host]
	if !ok {
		ring = core.NewEventRing(s.perHostCap)
		sh.hosts[event.Host] = ring
	}
	ring.Push(event)
	retained := ring.Len()
	sh.mu.Unlock()

	logger.Debugf("stored event: host=%s category=%s type=%s retained=%d",
		event.Host, event.Category, event.EventType, retained)

	return nil
}

// EventsForHost returns the retained events for a host in ingestion order.
// Callers needing temporal order sort by event time themselves. Unknown
// hosts yield an empty slice, not an error.
func (s *MemoryStore) EventsForHost(host string) []core.Event {
	sh := s.shardFor(host)

	sh.mu.RLock()
	defer sh.mu.RUnlock()

	ring, ok := sh.hosts[host]
	if !ok {
		return []core.Event{}
	}
	return ring.InOrder()
}

// KnownHosts returns the identifiers of all hosts with retained events,
// sorted for stable output.
func (s *MemoryStore) KnownHosts() []string {
	var hosts []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for host := range sh.hosts {
			hosts = append(hosts, host)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(hosts)
	return hosts
}

// AllEvents returns every currently retained event across all hosts, grouped
// by host in sorted order, newest first within each host.
func (s *MemoryStore) AllEvents() []core.Event {
	var out []core.Event
	for _, host := range s.KnownHosts() {
		sh := s.shardFor(host)
		sh.mu.RLock()
		if ring, ok := sh.hosts[host]; ok {
			out = append(out, ring.NewestFirst()...)
		}
		sh.mu.RUnlock()
	}
	if out == nil {
		out = []core.Event{}
	}
	return out
}

// Len returns the total number of currently retained events.
func (s *MemoryStore) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, ring := range sh.hosts {
			total += ring.Len()
		}
		sh.mu.RUnlock()
	}
	return total
}

// PerHostCap returns the configured per-host retention cap.
func (s *MemoryStore) PerHostCap() int {
	return s.perHostCap
}
