package store

import (
	"sync"

	"github.com/vie2206/levelup-backend/internal/models"
)

// Ledger is an in-memory implementation of LedgerRepository.
type Ledger struct {
	mu      sync.RWMutex
	entries []models.LedgerEntry
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(entry models.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *Ledger) All() []models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns up to n entries, newest first.
func (l *Ledger) Recent(n int) []models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]models.LedgerEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Ledger) TopScore() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	top := 0.0
	for _, e := range l.entries {
		if e.Score > top {
			top = e.Score
		}
	}
	return top
}
