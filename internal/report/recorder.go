// Package report persists lag scans for the plotting layer.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"leadlag-go/internal/leadlag"
)

// Recorder captures finished lag scans.
type Recorder interface {
	Record(leadlag.Result) error
}

// Point is one (lag, contrast) line of a JSONL report.
type Point struct {
	Estimator string  `json:"estimator"`
	Lag       float64 `json:"lag"`
	Contrast  float64 `json:"contrast"`
}

// Summary closes a scan in a JSONL report.
type Summary struct {
	Estimator string  `json:"estimator"`
	Normalize bool    `json:"normalize"`
	Lags      int     `json:"lags"`
	LeadLag   float64 `json:"lead_lag"`
}

// JSONLRecorder appends every contrast of a scan as JSON lines, followed by a summary line.
type JSONLRecorder struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewJSONLRecorder creates/opens the target file and returns a recorder.
func NewJSONLRecorder(path string) (*JSONLRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLRecorder{
		file: file,
		enc:  json.NewEncoder(file),
	}, nil
}

// Record writes the scan to the underlying JSONL file.
func (r *JSONLRecorder) Record(res leadlag.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, lag := range res.Grid {
		if err := r.enc.Encode(Point{Estimator: res.Estimator, Lag: lag, Contrast: res.Contrasts[i]}); err != nil {
			return err
		}
	}
	return r.enc.Encode(Summary{
		Estimator: res.Estimator,
		Normalize: res.Normalize,
		Lags:      len(res.Grid),
		LeadLag:   res.LeadLag,
	})
}

// Close flushes and closes the file handle.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
