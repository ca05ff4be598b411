package emotion

import (
	"sync"
	"time"
)

// FeedbackEntry records one user judgement about generated output.
type FeedbackEntry struct {
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes,omitempty"`
	Tone       string    `json:"tone,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// FeedbackLog is a bounded in-memory record of tone feedback. When full,
// the oldest entry is dropped. It never re-scores past analyses.
type FeedbackLog struct {
	mu       sync.Mutex
	capacity int
	entries  []FeedbackEntry
}

func NewFeedbackLog(capacity int) *FeedbackLog {
	if capacity <= 0 {
		capacity = 100
	}
	return &FeedbackLog{capacity: capacity}
}

func (l *FeedbackLog) Append(entry FeedbackEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

func (l *FeedbackLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Snapshot returns a copy of the current entries, oldest first.
func (l *FeedbackLog) Snapshot() []FeedbackEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]FeedbackEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
