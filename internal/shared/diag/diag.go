// Package diag collects recoverable warnings from the analysis pipeline.
// Warnings are always counted; live echo to the log is throttled so a
// corpus with thousands of malformed lines cannot flood the console.
package diag

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxRetained = 100

type Collector struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	logger     *slog.Logger
	entries    []string
	total      int
	suppressed int
}

// NewCollector creates a collector echoing at most r warnings per second
// with the given burst. logger may be nil, in which case slog.Default()
// is used at warn time.
func NewCollector(r float64, b int, logger *slog.Logger) *Collector {
	return &Collector{
		limiter: rate.NewLimiter(rate.Limit(r), b),
		logger:  logger,
	}
}

// Warn records one recoverable issue. msg plus key/value args follow slog
// conventions. The warning always counts toward the total; it reaches the
// log only when the limiter admits it.
func (c *Collector) Warn(msg string, args ...any) {
	c.mu.Lock()
	c.total++
	if len(c.entries) < maxRetained {
		c.entries = append(c.entries, msg)
	}
	admitted := c.limiter.AllowN(time.Now(), 1)
	if !admitted {
		c.suppressed++
	}
	logger := c.logger
	c.mu.Unlock()

	if admitted {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn(msg, args...)
	}
}

// Total returns the number of warnings recorded so far.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Suppressed returns how many warnings were withheld from the log.
func (c *Collector) Suppressed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suppressed
}

// Entries returns the retained warning messages, capped at maxRetained.
func (c *Collector) Entries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// LogSummary emits one line totalling the run's warnings. Silent when
// nothing was recorded.
func (c *Collector) LogSummary() {
	c.mu.Lock()
	total, suppressed := c.total, c.suppressed
	logger := c.logger
	c.mu.Unlock()

	if total == 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("analysis completed with warnings", "total", total, "suppressed", suppressed)
}
