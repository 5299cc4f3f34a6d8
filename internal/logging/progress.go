package logging

// ProgressTicker rate-limits per-record progress logs to a fixed count
// interval. Workers call Tick once per processed record and log when it
// returns true, so a million-file build emits a line every interval records
// instead of one per file.
type ProgressTicker struct {
	interval int
	count    int
}

// NewProgressTicker constructs a ticker that fires every interval records.
// A non-positive interval defaults to 1000.
func NewProgressTicker(interval int) *ProgressTicker {
	if interval <= 0 {
		interval = 1000
	}
	return &ProgressTicker{interval: interval}
}

// Tick records one processed item and reports whether a progress line is due.
func (p *ProgressTicker) Tick() bool {
	if p == nil {
		return false
	}
	p.count++
	return p.count%p.interval == 0
}

// Count returns the total items recorded so far.
func (p *ProgressTicker) Count() int {
	if p == nil {
		return 0
	}
	return p.count
}

// Reset clears the ticker, e.g. when a worker moves to the next split.
func (p *ProgressTicker) Reset() {
	if p == nil {
		return
	}
	p.count = 0
}
