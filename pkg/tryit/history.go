package tryit

import "time"

// HistoryCap bounds the per-session request history.
const HistoryCap = 10

// HistoryEntry records one settled live request.
type HistoryEntry struct {
	Path       string    `json:"endpoint"`
	Method     string    `json:"method"`
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"status"`
	ElapsedMS  int64     `json:"elapsed_ms"`
}

// History is a bounded most-recent-first log of settled requests. It is
// in-memory, per-session state; nothing here is persisted.
type History struct {
	entries []HistoryEntry
}

// Add prepends an entry, evicting the oldest once the cap is reached.
func (h *History) Add(entry HistoryEntry) {
	entries := make([]HistoryEntry, 0, HistoryCap)
	entries = append(entries, entry)
	if len(h.entries) > HistoryCap-1 {
		entries = append(entries, h.entries[:HistoryCap-1]...)
	} else {
		entries = append(entries, h.entries...)
	}
	h.entries = entries
}

// Entries returns the recorded entries, most recent first.
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}
