// Package aggregate maintains the running statistics derived from accepted
// events: global totals, per-category aggregates with bounded recent-event
// windows, and per-host aggregates.
package aggregate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/loglumen/loglumen-server/internal/core"
)

// DefaultRecentWindow is the capacity of each category's recent-events
// window when none is configured.
const DefaultRecentWindow = 50

// Engine applies accepted events to all aggregates. The three updates for a
// single event (global, category, host) happen under one write lock, so a
// reader taking a snapshot can never observe a partially applied event.
// Counters are cumulative: eviction of raw events from the store never
// retracts them.
type Engine struct {
	mu          sync.RWMutex
	lastUpdated time.Time
	categories  map[core.Category]*categoryStats
	hosts       map[string]*hostStats
	recentCap   int

	// total is also kept atomically for lock-free reads
	total atomic.Uint64
}

type categoryStats struct {
	total          uint64
	severityCounts map[core.Severity]uint64
	eventTypes     map[string]uint64
	recent         *core.EventRing
}

type hostStats struct {
	hostIPv4       string
	total          uint64
	lastEventRaw   string
	lastEventTime  time.Time
	severityCounts map[core.Severity]uint64
	categories     map[core.Category]uint64
}

func newSeverityCounts() map[core.Severity]uint64 {
	counts := make(map[core.Severity]uint64, len(core.Severities))
	for _, severity := range core.Severities {
		counts[severity] = 0
	}
	return counts
}

// NewEngine creates an engine with all category aggregates pre-initialized.
// recentCap bounds each category's recent-events window; below 1 falls back
// to DefaultRecentWindow.
func NewEngine(recentCap int) *Engine {
	if recentCap < 1 {
		recentCap = DefaultRecentWindow
	}
	e := &Engine{
		categories: make(map[core.Category]*categoryStats, len(core.Categories)),
		hosts:      make(map[string]*hostStats),
		recentCap:  recentCap,
	}
	for _, category := range core.Categories {
		e.categories[category] = &categoryStats{
			severityCounts: newSeverityCounts(),
			eventTypes:     make(map[string]uint64),
			recent:         core.NewEventRing(recentCap),
		}
	}
	return e
}

// Apply folds one accepted event into the global, category, and host
// aggregates as a single indivisible update.
func (e *Engine) Apply(event core.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.total.Add(1)
	e.lastUpdated = time.Now().UTC()

	cat := e.categories[event.Category]
	cat.total++
	cat.severityCounts[event.Severity]++
	cat.eventTypes[event.EventType]++
	cat.recent.Push(event)

	host, ok := e.hosts[event.Host]
	if !ok {
		host = &hostStats{
			severityCounts: newSeverityCounts(),
			categories:     make(map[core.Category]uint64),
		}
		e.hosts[event.Host] = host
	}
	host.total++
	host.severityCounts[event.Severity]++
	host.categories[event.Category]++
	if event.HostIPv4 != "" {
		// last-seen value wins
		host.hostIPv4 = event.HostIPv4
	}
	if host.lastEventTime.IsZero() || event.Timestamp.After(host.lastEventTime) {
		host.lastEventTime = event.Timestamp
		host.lastEventRaw = event.Time
	}
}

// TotalEvents returns the cumulative count of accepted events without taking
// the engine lock.
func (e *Engine) TotalEvents() uint64 {
	return e.total.Load()
}
