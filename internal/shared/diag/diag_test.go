package diag

import (
	"fmt"
	"testing"
)

func TestCollectorCountsEverything(t *testing.T) {
	t.Parallel()

	c := NewCollector(1000, 1000, nil)
	for i := 0; i < 10; i++ {
		c.Warn("malformed import line", "line", i)
	}

	if c.Total() != 10 {
		t.Fatalf("expected 10 warnings, got %d", c.Total())
	}
	if c.Suppressed() != 0 {
		t.Fatalf("expected no suppression with a high rate, got %d", c.Suppressed())
	}
}

func TestCollectorThrottlesEcho(t *testing.T) {
	t.Parallel()

	// Burst of 5 with a negligible refill: the rest must be suppressed.
	c := NewCollector(0.0001, 5, nil)
	for i := 0; i < 50; i++ {
		c.Warn("self import dropped", "module", fmt.Sprintf("M%d", i))
	}

	if c.Total() != 50 {
		t.Fatalf("expected total 50, got %d", c.Total())
	}
	if c.Suppressed() != 45 {
		t.Fatalf("expected 45 suppressed, got %d", c.Suppressed())
	}
}

func TestCollectorRetentionCap(t *testing.T) {
	t.Parallel()

	c := NewCollector(1, 1, nil)
	for i := 0; i < maxRetained+20; i++ {
		c.Warn("unreadable file")
	}

	if got := len(c.Entries()); got != maxRetained {
		t.Fatalf("expected %d retained entries, got %d", maxRetained, got)
	}
	if c.Total() != maxRetained+20 {
		t.Fatalf("retention cap must not affect the total, got %d", c.Total())
	}
}
