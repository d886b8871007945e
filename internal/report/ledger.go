package report

import (
	"sync"

	"leadlag-go/internal/leadlag"
)

// Ledger keeps scan results in memory for quick inspection.
type Ledger struct {
	mu      sync.Mutex
	results []leadlag.Result
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{results: make([]leadlag.Result, 0, capacity)}
}

// Record appends a result to the ledger.
func (l *Ledger) Record(res leadlag.Result) error {
	l.mu.Lock()
	l.results = append(l.results, res)
	l.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the recorded results.
func (l *Ledger) Snapshot() []leadlag.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]leadlag.Result, len(l.results))
	copy(out, l.results)
	return out
}

// Multi fans a result out to several recorders, stopping at the first error.
type Multi []Recorder

// Record implements Recorder.
func (m Multi) Record(res leadlag.Result) error {
	for _, r := range m {
		if err := r.Record(res); err != nil {
			return err
		}
	}
	return nil
}
