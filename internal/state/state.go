// Package state keeps the orrery's diagnostic event log: a thread-safe ring
// buffer of notices shown in the HUD and reported by headless runs.
package state

import (
	"sync"
	"time"
)

// EventType classifies a notice.
type EventType string

const (
	EventModeChanged   EventType = "MODE_CHANGED"
	EventModeRejected  EventType = "MODE_REJECTED"
	EventTargetChanged EventType = "TARGET_CHANGED"
	EventSpawn         EventType = "TRANSIENT_SPAWN"
	EventDespawn       EventType = "TRANSIENT_DESPAWN"
	EventTimeScale     EventType = "TIME_SCALE"
	EventTimeReset     EventType = "TIME_RESET"
	EventPause         EventType = "PAUSE"
	EventTour          EventType = "TOUR"
	EventToggle        EventType = "TOGGLE"
)

// Event is one notice.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SimTime   float64   `json:"sim_time"`
	Message   string    `json:"message"`
}

// Config holds configuration for the event log.
type Config struct {
	MaxEvents int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
	}
}

// Manager is the event log. The simulation writes; the HUD and metrics read.
type Manager struct {
	mu sync.RWMutex

	events       []Event
	maxEvents    int
	eventWriteAt int
	total        map[EventType]int

	now func() time.Time
}

// NewManager creates an empty log.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		total:     make(map[EventType]int),
		now:       time.Now,
	}
}

// Add records a notice at simulated time simTime.
func (m *Manager) Add(typ EventType, simTime float64, msg string) Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := Event{Type: typ, Timestamp: m.now(), SimTime: simTime, Message: msg}
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
	m.total[typ]++
	return e
}

// getEventsOrdered returns events oldest first. Caller holds the lock.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// Events returns every retained event, oldest first.
func (m *Manager) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getEventsOrdered()
}

// RecentEvents returns the last n events, oldest first.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Latest returns the newest event.
func (m *Manager) Latest() (Event, bool) {
	recent := m.RecentEvents(1)
	if len(recent) == 0 {
		return Event{}, false
	}
	return recent[0], true
}

// Count returns how many events of typ were ever added, including ones
// the ring has since overwritten.
func (m *Manager) Count(typ EventType) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total[typ]
}
