// Package core defines the fundamental types and contracts for the Loglumen
// event collection server. All other components build on these definitions.
package core

import (
	"context"
	"time"
)

// SchemaVersion is the single event schema version this build understands.
// Agents submitting any other version are rejected at validation time.
const SchemaVersion = 1

// Category classifies an event into one of the six fixed classes agents
// report on. The set is closed; anything else fails validation.
type Category string

const (
	CategoryAuthentication      Category = "authentication"
	CategoryPrivilegeEscalation Category = "privilege_escalation"
	CategorySystem              Category = "system"
	CategoryService             Category = "service"
	CategorySoftware            Category = "software"
	CategoryRemoteAccess        Category = "remote_access"
)

// Categories lists all valid categories in canonical order.
var Categories = []Category{
	CategoryAuthentication,
	CategoryPrivilegeEscalation,
	CategorySystem,
	CategoryService,
	CategorySoftware,
	CategoryRemoteAccess,
}

// Valid reports whether c is one of the six canonical categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Severity is the urgency level of an event. Severities form a total order:
// info < warning < error < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Severities lists all valid severities in ascending order of urgency.
var Severities = []Severity{
	SeverityInfo,
	SeverityWarning,
	SeverityError,
	SeverityCritical,
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of s in the severity order, or -1 if unknown.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return i
		}
	}
	return -1
}

// OperatingSystems lists the OS values agents may report.
var OperatingSystems = []string{"windows", "linux"}

// ValidOS reports whether os is a supported operating system identifier.
func ValidOS(os string) bool {
	for _, known := range OperatingSystems {
		if os == known {
			return true
		}
	}
	return false
}

// Event is one normalized security observation, immutable once accepted.
//
// The JSON layout matches the agent wire schema exactly; multiple independent
// agent implementations produce it, so field names must not change. Time is
// kept as the raw string the agent sent (display uses it verbatim), while
// Timestamp holds the parsed instant used for last-event comparisons only.
// ID is assigned server-side when the event is accepted.
type Event struct {
	ID            string         `json:"id"`
	SchemaVersion int            `json:"schema_version"`
	Category      Category       `json:"category"`
	EventType     string         `json:"event_type"`
	Time          string         `json:"time"`
	Host          string         `json:"host"`
	HostIPv4      string         `json:"host_ipv4"`
	OS            string         `json:"os"`
	Source        string         `json:"source"`
	Severity      Severity       `json:"severity"`
	Message       string         `json:"message"`
	Data          map[string]any `json:"data"`

	Timestamp time.Time `json:"-"`
}

// EventSink stores accepted events for later retrieval. Append must not fail
// for a validated event; retention pressure is handled by eviction inside the
// sink, never surfaced to the caller.
type EventSink interface {
	// Append inserts an event into its host's retained sequence, evicting
	// the host's oldest event first when the per-host cap is exceeded.
	Append(ctx context.Context, event Event) error

	// EventsForHost returns the retained events for a host in ingestion
	// order. The result is a copy; an unknown host yields an empty slice.
	EventsForHost(host string) []Event

	// KnownHosts returns the identifiers of all hosts with retained events.
	KnownHosts() []string

	// AllEvents returns every currently retained event across all hosts.
	AllEvents() []Event

	// Len returns the total number of currently retained events.
	Len() int
}
