package aggregate

import (
	"sort"
	"time"

	"github.com/loglumen/loglumen-server/internal/core"
)

// Snapshot is a consistent point-in-time view of all aggregates, shaped for
// the dashboard stats endpoint.
type Snapshot struct {
	TotalEvents uint64             `json:"total_events"`
	LastUpdated string             `json:"last_updated"`
	Categories  []CategorySnapshot `json:"categories"`
	Nodes       []HostSnapshot     `json:"nodes"`
}

// CategorySnapshot is the dashboard view of one category aggregate.
type CategorySnapshot struct {
	Category       core.Category            `json:"category"`
	TotalCount     uint64                   `json:"total_count"`
	SeverityCounts map[core.Severity]uint64 `json:"severity_counts"`
	EventTypes     map[string]uint64        `json:"event_types"`
	RecentEvents   []core.Event             `json:"recent_events"`
}

// HostSnapshot is the dashboard view of one host aggregate.
type HostSnapshot struct {
	Host           string                   `json:"host"`
	HostIPv4       string                   `json:"host_ipv4"`
	TotalEvents    uint64                   `json:"total_events"`
	LastEventTime  string                   `json:"last_event_time"`
	SeverityCounts map[core.Severity]uint64 `json:"severity_counts"`
	Categories     map[core.Category]uint64 `json:"categories"`
}

// Snapshot copies all aggregates under the read lock and releases it before
// the caller serializes anything. Categories are ordered by name; nodes by
// total events descending, then host name.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()

	snap := Snapshot{
		TotalEvents: e.total.Load(),
		Categories:  make([]CategorySnapshot, 0, len(e.categories)),
		Nodes:       make([]HostSnapshot, 0, len(e.hosts)),
	}
	if !e.lastUpdated.IsZero() {
		snap.LastUpdated = e.lastUpdated.Format(time.RFC3339)
	}

	for category, stats := range e.categories {
		snap.Categories = append(snap.Categories, CategorySnapshot{
			Category:       category,
			TotalCount:     stats.total,
			SeverityCounts: copyCounts(stats.severityCounts),
			EventTypes:     copyCounts(stats.eventTypes),
			RecentEvents:   stats.recent.NewestFirst(),
		})
	}

	for name, stats := range e.hosts {
		snap.Nodes = append(snap.Nodes, HostSnapshot{
			Host:           name,
			HostIPv4:       stats.hostIPv4,
			TotalEvents:    stats.total,
			LastEventTime:  stats.lastEventRaw,
			SeverityCounts: copyCounts(stats.severityCounts),
			Categories:     copyCounts(stats.categories),
		})
	}

	e.mu.RUnlock()

	sort.Slice(snap.Categories, func(i, j int) bool {
		return snap.Categories[i].Category < snap.Categories[j].Category
	})
	sort.Slice(snap.Nodes, func(i, j int) bool {
		if snap.Nodes[i].TotalEvents != snap.Nodes[j].TotalEvents {
			return snap.Nodes[i].TotalEvents > snap.Nodes[j].TotalEvents
		}
		return snap.Nodes[i].Host < snap.Nodes[j].Host
	})

	return snap
}

func copyCounts[K comparable](counts map[K]uint64) map[K]uint64 {
	out := make(map[K]uint64, len(counts))
	for key, count := range counts {
		out[key] = count
	}
	return out
}
