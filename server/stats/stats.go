// Package stats keeps lightweight in-process usage counters for the
// assistant, a small alternative to an external metrics stack.
package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/orgai/hr-assistant/store"
)

// Stats is a snapshot of assistant usage.
type Stats struct {
	// Chat counters.
	TotalChats      int64  `json:"total_chats"`
	ChatsToday      int64  `json:"chats_today"`
	BlockedMessages int64  `json:"blocked_messages"`
	LastChatTime    string `json:"last_chat_time,omitempty"`

	// Auth counters.
	Logins int64 `json:"logins"`

	// Summarization counters.
	Summaries int64 `json:"summaries"`

	// Store-derived numbers, refreshed periodically.
	DocumentRequestsPending int64 `json:"document_requests_pending"`
	EmployeeCount           int64 `json:"employee_count"`

	LastUpdated string `json:"last_updated"`
}

// Collector accumulates counters and refreshes store-derived stats on
// an interval. Safe for concurrent use.
type Collector struct {
	store    *store.Store
	interval time.Duration

	mu              sync.Mutex
	totalChats      int64
	chatsToday      int64
	blockedMessages int64
	logins          int64
	summaries       int64
	lastChat        time.Time
	today           time.Time

	pendingRequests int64
	employeeCount   int64
	lastUpdated     time.Time

	stop chan struct{}
	once sync.Once
}

// NewCollector creates a collector. store may be nil in tests, in
// which case store-derived numbers stay zero.
func NewCollector(st *store.Store) *Collector {
	return &Collector{
		store:    st,
		interval: 5 * time.Minute,
		today:    startOfDay(time.Now()),
		stop:     make(chan struct{}),
	}
}

// Start launches the periodic refresh. Returns immediately.
func (c *Collector) Start(ctx context.Context) {
	c.refresh(ctx)
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-ticker.C:
				c.refresh(ctx)
			}
		}
	}()
}

// Stop halts the periodic refresh.
func (c *Collector) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// RecordChat counts one answered chat message.
func (c *Collector) RecordChat() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollDayLocked(now)
	c.totalChats++
	c.chatsToday++
	c.lastChat = now
}

// RecordBlockedMessage counts a message rejected by the language filter.
func (c *Collector) RecordBlockedMessage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockedMessages++
}

// RecordLogin counts a successful OTP verification.
func (c *Collector) RecordLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logins++
}

// RecordSummary counts a completed document summarization.
func (c *Collector) RecordSummary() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries++
}

// GetStats returns a snapshot.
func (c *Collector) GetStats() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollDayLocked(time.Now())

	s := &Stats{
		TotalChats:              c.totalChats,
		ChatsToday:              c.chatsToday,
		BlockedMessages:         c.blockedMessages,
		Logins:                  c.logins,
		Summaries:               c.summaries,
		DocumentRequestsPending: c.pendingRequests,
		EmployeeCount:           c.employeeCount,
	}
	if !c.lastChat.IsZero() {
		s.LastChatTime = c.lastChat.Format(time.RFC3339)
	}
	if !c.lastUpdated.IsZero() {
		s.LastUpdated = c.lastUpdated.Format(time.RFC3339)
	}
	return s
}

// refresh pulls store-derived numbers.
func (c *Collector) refresh(ctx context.Context) {
	if c.store == nil {
		return
	}

	var pending, employees int64
	status := store.DocumentRequestStatusPending
	if requests, err := c.store.ListDocumentRequests(ctx, &store.FindDocumentRequest{Status: &status}); err != nil {
		slog.Warn("stats refresh failed for document requests", slog.String("error", err.Error()))
	} else {
		pending = int64(len(requests))
	}
	if list, err := c.store.ListEmployees(ctx, &store.FindEmployee{}); err != nil {
		slog.Warn("stats refresh failed for employees", slog.String("error", err.Error()))
	} else {
		employees = int64(len(list))
	}

	c.mu.Lock()
	c.pendingRequests = pending
	c.employeeCount = employees
	c.lastUpdated = time.Now()
	c.mu.Unlock()
}

// rollDayLocked resets the daily counter at midnight. Caller holds the
// lock.
func (c *Collector) rollDayLocked(now time.Time) {
	day := startOfDay(now)
	if day.After(c.today) {
		c.today = day
		c.chatsToday = 0
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
