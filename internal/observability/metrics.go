package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters, including per-generation
// authorization decision counts.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	authCount    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		authCount:    make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAuthDecision counts an authorization outcome per token generation.
// Outcome is "accepted" or a rejection reason code.
func (m *Metrics) RecordAuthDecision(generation, outcome string) {
	if m == nil {
		return
	}
	key := generation + "|" + outcome
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authCount[key]++
}

// AuthDecisionCount returns the recorded count for a generation/outcome
// pair. Used by readiness diagnostics and tests.
func (m *Metrics) AuthDecisionCount(generation, outcome string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authCount[generation+"|"+outcome]
}
