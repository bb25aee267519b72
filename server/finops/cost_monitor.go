// Package finops tracks the spend on upstream AI calls. Every
// embedding and chat completion is metered so operators can see what
// the assistant costs before the invoice arrives.
package finops

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-million-token prices in USD. Unknown models fall back to the
// chat default so spend is overestimated rather than hidden.
var modelPricing = map[string]pricing{
	"text-embedding-3-small": {input: 0.02},
	"text-embedding-3-large": {input: 0.13},
	"gpt-4o-mini":            {input: 0.15, output: 0.60},
	"gpt-4o":                 {input: 2.50, output: 10.00},
}

var defaultPricing = pricing{input: 2.50, output: 10.00}

type pricing struct {
	input  float64
	output float64
}

// OperationStats aggregates the calls for one operation, such as
// "embedding", "chat", or "summary".
type OperationStats struct {
	Operation    string  `json:"operation"`
	Calls        int64   `json:"calls"`
	Failures     int64   `json:"failures"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`

	totalLatency time.Duration
}

// CostReport is a point-in-time snapshot of accumulated spend.
type CostReport struct {
	Since        time.Time         `json:"since"`
	TotalCalls   int64             `json:"total_calls"`
	TotalCostUSD float64           `json:"total_cost_usd"`
	ByOperation  []*OperationStats `json:"by_operation"`
}

// CostMonitor accumulates usage in memory. Safe for concurrent use.
type CostMonitor struct {
	mu    sync.Mutex
	since time.Time
	stats map[string]*OperationStats
}

// NewCostMonitor creates an empty monitor.
func NewCostMonitor() *CostMonitor {
	return &CostMonitor{
		since: time.Now(),
		stats: make(map[string]*OperationStats),
	}
}

// Record meters one provider call.
func (m *CostMonitor) Record(operation, model string, inputTokens, outputTokens int, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.statsLocked(operation)
	s.Calls++
	s.InputTokens += int64(inputTokens)
	s.OutputTokens += int64(outputTokens)
	s.CostUSD += estimateCost(model, inputTokens, outputTokens)
	s.totalLatency += latency
	s.AvgLatencyMs = float64(s.totalLatency.Milliseconds()) / float64(s.Calls)
}

// RecordFailure counts a failed call.
func (m *CostMonitor) RecordFailure(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsLocked(operation).Failures++
}

// Report returns a snapshot ordered by descending cost.
func (m *CostMonitor) Report() *CostReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := &CostReport{
		Since:       m.since,
		ByOperation: make([]*OperationStats, 0, len(m.stats)),
	}
	for _, s := range m.stats {
		clone := *s
		report.ByOperation = append(report.ByOperation, &clone)
		report.TotalCalls += s.Calls
		report.TotalCostUSD += s.CostUSD
	}
	sort.Slice(report.ByOperation, func(i, j int) bool {
		if report.ByOperation[i].CostUSD != report.ByOperation[j].CostUSD {
			return report.ByOperation[i].CostUSD > report.ByOperation[j].CostUSD
		}
		return report.ByOperation[i].Operation < report.ByOperation[j].Operation
	})
	return report
}

// Reset clears accumulated stats.
func (m *CostMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.since = time.Now()
	m.stats = make(map[string]*OperationStats)
}

func (m *CostMonitor) statsLocked(operation string) *OperationStats {
	s, ok := m.stats[operation]
	if !ok {
		s = &OperationStats{Operation: operation}
		m.stats[operation] = s
	}
	return s
}

func estimateCost(model string, inputTokens, outputTokens int) float64 {
	p, ok := modelPricing[strings.ToLower(model)]
	if !ok {
		p = defaultPricing
	}
	return (float64(inputTokens)*p.input + float64(outputTokens)*p.output) / 1e6
}
