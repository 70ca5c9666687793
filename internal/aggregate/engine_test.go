package aggregate

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loglumen/loglumen-server/internal/core"
)

func makeEvent(host string, category core.Category, severity core.Severity, eventType, rawTime string) core.Event {
	ts, _ := time.Parse(time.RFC3339, rawTime)
	return core.Event{
		ID:            fmt.Sprintf("%s-%s-%s", host, category, rawTime),
		SchemaVersion: core.SchemaVersion,
		Category:      category,
		EventType:     eventType,
		Time:          rawTime,
		Host:          host,
		HostIPv4:      "10.0.0.1",
		OS:            "linux",
		Severity:      severity,
		Timestamp:     ts,
	}
}

func categoryByName(t *testing.T, snap Snapshot, category core.Category) CategorySnapshot {
	t.Helper()
	for _, c := range snap.Categories {
		if c.Category == category {
			return c
		}
	}
	t.Fatalf("category %s missing from snapshot", category)
	return CategorySnapshot{}
}

func nodeByName(t *testing.T, snap Snapshot, host string) HostSnapshot {
	t.Helper()
	for _, n := range snap.Nodes {
		if n.Host == host {
			return n
		}
	}
	t.Fatalf("node %s missing from snapshot", host)
	return HostSnapshot{}
}

func TestEngineEmptySnapshot(t *testing.T) {
	engine := NewEngine(10)
	snap := engine.Snapshot()

	assert.Equal(t, uint64(0), snap.TotalEvents)
	assert.Empty(t, snap.LastUpdated)
	assert.Empty(t, snap.Nodes)

	// All six categories are pre-initialized, sorted by name
	require.Len(t, snap.Categories, len(core.Categories))
	for i := 1; i < len(snap.Categories); i++ {
		assert.Less(t, snap.Categories[i-1].Category, snap.Categories[i].Category)
	}
	for _, c := range snap.Categories {
		assert.Equal(t, uint64(0), c.TotalCount)
		assert.Empty(t, c.RecentEvents)
	}
}

func TestEngineExampleScenario(t *testing.T) {
	engine := NewEngine(10)

	engine.Apply(makeEvent("A", core.CategoryAuthentication, core.SeverityWarning, "ssh_login_failed", "2025-11-16T18:42:51Z"))
	engine.Apply(makeEvent("A", core.CategorySystem, core.SeverityCritical, "kernel_panic", "2025-11-16T18:43:00Z"))
	engine.Apply(makeEvent("B", core.CategoryService, core.SeverityInfo, "service_started", "2025-11-16T18:44:00Z"))

	snap := engine.Snapshot()

	assert.Equal(t, uint64(3), snap.TotalEvents)
	assert.NotEmpty(t, snap.LastUpdated)

	assert.Equal(t, uint64(1), categoryByName(t, snap, core.CategoryAuthentication).TotalCount)
	assert.Equal(t, uint64(1), categoryByName(t, snap, core.CategorySystem).TotalCount)
	assert.Equal(t, uint64(1), categoryByName(t, snap, core.CategoryService).TotalCount)
	assert.Equal(t, uint64(0), categoryByName(t, snap, core.CategorySoftware).TotalCount)

	require.Len(t, snap.Nodes, 2)
	assert.Equal(t, uint64(2), nodeByName(t, snap, "A").TotalEvents)
	assert.Equal(t, uint64(1), nodeByName(t, snap, "B").TotalEvents)

	// Nodes sort by total events descending
	assert.Equal(t, "A", snap.Nodes[0].Host)

	auth := categoryByName(t, snap, core.CategoryAuthentication)
	assert.Equal(t, uint64(1), auth.SeverityCounts[core.SeverityWarning])
	assert.Equal(t, uint64(1), auth.EventTypes["ssh_login_failed"])
	require.Len(t, auth.RecentEvents, 1)

	nodeA := nodeByName(t, snap, "A")
	assert.Equal(t, uint64(1), nodeA.SeverityCounts[core.SeverityWarning])
	assert.Equal(t, uint64(1), nodeA.SeverityCounts[core.SeverityCritical])
	assert.Equal(t, uint64(1), nodeA.Categories[core.CategoryAuthentication])
	assert.Equal(t, uint64(1), nodeA.Categories[core.CategorySystem])
	assert.Equal(t, "2025-11-16T18:43:00Z", nodeA.LastEventTime)
}

func TestEngineLastEventTimeIgnoresOlderEvents(t *testing.T) {
	engine := NewEngine(10)

	engine.Apply(makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot", "2025-11-16T18:43:00Z"))
	// Agents deliver out of order; an older event must not move the marker back
	engine.Apply(makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot", "2025-11-16T10:00:00Z"))

	snap := engine.Snapshot()
	assert.Equal(t, "2025-11-16T18:43:00Z", nodeByName(t, snap, "A").LastEventTime)
	assert.Equal(t, uint64(2), nodeByName(t, snap, "A").TotalEvents)
}

func TestEngineHostIPv4LastSeenWins(t *testing.T) {
	engine := NewEngine(10)

	first := makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot", "2025-11-16T18:43:00Z")
	first.HostIPv4 = "10.0.0.1"
	second := makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot", "2025-11-16T18:44:00Z")
	second.HostIPv4 = "10.0.0.2"

	engine.Apply(first)
	engine.Apply(second)

	snap := engine.Snapshot()
	assert.Equal(t, "10.0.0.2", nodeByName(t, snap, "A").HostIPv4)
}

func TestEngineRecentWindowBounded(t *testing.T) {
	engine := NewEngine(5)

	for i := 0; i < 20; i++ {
		engine.Apply(makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot",
			fmt.Sprintf("2025-11-16T18:43:%02dZ", i)))
	}

	snap := engine.Snapshot()
	system := categoryByName(t, snap, core.CategorySystem)

	assert.Equal(t, uint64(20), system.TotalCount, "total count is cumulative, not windowed")
	require.Len(t, system.RecentEvents, 5)
	// Newest first
	assert.Equal(t, "2025-11-16T18:43:19Z", system.RecentEvents[0].Time)
	assert.Equal(t, "2025-11-16T18:43:15Z", system.RecentEvents[4].Time)
}

func TestEngineNoDeduplication(t *testing.T) {
	engine := NewEngine(10)

	event := makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot", "2025-11-16T18:43:00Z")
	engine.Apply(event)
	engine.Apply(event)

	snap := engine.Snapshot()
	assert.Equal(t, uint64(2), snap.TotalEvents, "re-submission counts twice; there is no deduplication key")
	assert.Equal(t, uint64(2), categoryByName(t, snap, core.CategorySystem).TotalCount)
	assert.Equal(t, uint64(2), nodeByName(t, snap, "A").TotalEvents)
}

func TestEngineSnapshotIsACopy(t *testing.T) {
	engine := NewEngine(10)
	engine.Apply(makeEvent("A", core.CategorySystem, core.SeverityInfo, "boot", "2025-11-16T18:43:00Z"))

	snap := engine.Snapshot()
	snap.Categories[0].SeverityCounts[core.SeverityInfo] = 999
	snap.Nodes[0].Categories[core.CategorySystem] = 999

	fresh := engine.Snapshot()
	assert.Equal(t, uint64(1), nodeByName(t, fresh, "A").Categories[core.CategorySystem])
}

func TestEngineConcurrentApplySnapshotConsistency(t *testing.T) {
	engine := NewEngine(10)

	numGoroutines := 8
	eventsPerGoroutine := 100

	var writers, readers sync.WaitGroup
	stop := make(chan struct{})

	// Readers continuously verify snapshot coherence while writers apply
	readerErrs := make(chan string, 16)
	for i := 0; i < 2; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := engine.Snapshot()
				var categoryTotal uint64
				for _, c := range snap.Categories {
					categoryTotal += c.TotalCount
					var severityTotal, typeTotal uint64
					for _, n := range c.SeverityCounts {
						severityTotal += n
					}
					for _, n := range c.EventTypes {
						typeTotal += n
					}
					if severityTotal != c.TotalCount || typeTotal != c.TotalCount {
						select {
						case readerErrs <- fmt.Sprintf("torn category snapshot: total=%d severities=%d types=%d",
							c.TotalCount, severityTotal, typeTotal):
						default:
						}
						return
					}
				}
				if categoryTotal != snap.TotalEvents {
					select {
					case readerErrs <- fmt.Sprintf("torn snapshot: global=%d categories=%d",
						snap.TotalEvents, categoryTotal):
					default:
					}
					return
				}
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		writers.Add(1)
		go func(id int) {
			defer writers.Done()
			host := fmt.Sprintf("host-%d", id)
			category := core.Categories[id%len(core.Categories)]
			for j := 0; j < eventsPerGoroutine; j++ {
				engine.Apply(makeEvent(host, category, core.SeverityInfo, "concurrent_event", "2025-11-16T18:43:00Z"))
			}
		}(i)
	}

	// Let writers finish, then stop readers
	writers.Wait()
	close(stop)
	readers.Wait()

	select {
	case msg := <-readerErrs:
		t.Fatal(msg)
	default:
	}

	snap := engine.Snapshot()
	assert.Equal(t, uint64(numGoroutines*eventsPerGoroutine), snap.TotalEvents)
	assert.Equal(t, uint64(numGoroutines*eventsPerGoroutine), engine.TotalEvents())
}
