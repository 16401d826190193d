package datafix

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReportWriter persists datafix reports as timestamped JSON files, keeping
// latest.json pointed at the most recent run.
type ReportWriter struct {
	dir string
}

// NewReportWriter constructs a writer rooted at dir.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Write persists the report and returns the path of the timestamped file.
func (w *ReportWriter) Write(report Report) (string, error) {
	if w == nil || w.dir == "" {
		return "", fmt.Errorf("report writer not configured")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("fixes-%s.json", report.GeneratedAt.Format("20060102-150405"))
	target := filepath.Join(w.dir, name)
	if err := writeAtomic(target, data); err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(w.dir, "latest.json"), data); err != nil {
		return "", err
	}
	return target, nil
}

func writeAtomic(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
