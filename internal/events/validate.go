// Package events validates and normalizes raw agent event records.
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fastjson"

	"github.com/loglumen/loglumen-server/internal/core"
)

// categoryAliases maps the short category names some agent builds emit to
// their canonical form. Resolution is case-insensitive.
var categoryAliases = map[string]core.Category{
	"auth":      core.CategoryAuthentication,
	"privilege": core.CategoryPrivilegeEscalation,
	"remote":    core.CategoryRemoteAccess,
}

// timeLayouts are the timestamp forms agents are known to produce: RFC 3339
// (with or without fractional seconds) and the zone-less ISO form, which is
// taken as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ValidationError describes why a single event record was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event: field %q: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Parse validates a decoded event record and returns the normalized Event.
// It is pure: it consults no shared state and rejects rather than defaults.
// The returned error, when non-nil, is always a *ValidationError naming the
// failing field.
func Parse(record *fastjson.Value) (core.Event, *ValidationError) {
	if record == nil || record.Type() != fastjson.TypeObject {
		return core.Event{}, invalid("event", "record is not a JSON object")
	}

	version := record.GetInt("schema_version")
	if version != core.SchemaVersion {
		return core.Event{}, invalid("schema_version", "unknown schema version %d (want %d)", version, core.SchemaVersion)
	}

	category, verr := parseCategory(string(record.GetStringBytes("category")))
	if verr != nil {
		return core.Event{}, verr
	}

	eventType := strings.TrimSpace(string(record.GetStringBytes("event_type")))
	if eventType == "" {
		return core.Event{}, invalid("event_type", "missing required field")
	}

	host := strings.TrimSpace(string(record.GetStringBytes("host")))
	if host == "" {
		return core.Event{}, invalid("host", "missing required field")
	}

	osName := strings.ToLower(strings.TrimSpace(string(record.GetStringBytes("os"))))
	if !core.ValidOS(osName) {
		return core.Event{}, invalid("os", "unsupported operating system %q", osName)
	}

	severity := core.Severity(strings.ToLower(strings.TrimSpace(string(record.GetStringBytes("severity")))))
	if !severity.Valid() {
		return core.Event{}, invalid("severity", "unknown severity %q", severity)
	}

	rawTime := string(record.GetStringBytes("time"))
	if rawTime == "" {
		return core.Event{}, invalid("time", "missing required field")
	}
	timestamp, verr := parseTime(rawTime)
	if verr != nil {
		return core.Event{}, verr
	}

	return core.Event{
		ID:            uuid.NewString(),
		SchemaVersion: version,
		Category:      category,
		EventType:     eventType,
		Time:          rawTime,
		Host:          host,
		HostIPv4:      string(record.GetStringBytes("host_ipv4")),
		OS:            osName,
		Source:        string(record.GetStringBytes("source")),
		Severity:      severity,
		Message:       string(record.GetStringBytes("message")),
		Data:          dataMap(record.Get("data")),
		Timestamp:     timestamp,
	}, nil
}

// parseCategory resolves aliases and validates against the closed set.
func parseCategory(raw string) (core.Category, *ValidationError) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", invalid("category", "missing required field")
	}
	if canonical, ok := categoryAliases[name]; ok {
		return canonical, nil
	}
	category := core.Category(name)
	if !category.Valid() {
		return "", invalid("category", "unknown category %q", raw)
	}
	return category, nil
}

// parseTime parses the agent timestamp. The raw string is preserved on the
// event for display; the parsed instant is only used for ordering decisions.
func parseTime(raw string) (time.Time, *ValidationError) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, invalid("time", "unparseable timestamp %q", raw)
}

// dataMap converts the event-specific payload into a plain map. The payload
// is opaque to the core; absent or non-object payloads become an empty map.
func dataMap(v *fastjson.Value) map[string]any {
	out := map[string]any{}
	if v == nil || v.Type() != fastjson.TypeObject {
		return out
	}
	obj, err := v.Object()
	if err != nil {
		return out
	}
	obj.Visit(func(key []byte, value *fastjson.Value) {
		out[string(key)] = toAny(value)
	})
	return out
}

// toAny converts a fastjson value into its encoding/json-compatible form.
func toAny(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		return dataMap(v)
	case fastjson.TypeArray:
		values, _ := v.Array()
		out := make([]any, 0, len(values))
		for _, item := range values {
			out = append(out, toAny(item))
		}
		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}
