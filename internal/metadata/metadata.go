package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// TableMeta documents one table for human readers of the API.
type TableMeta struct {
	Description string            `json:"description,omitempty"`
	Columns     map[string]string `json:"columns,omitempty"`
}

// Metadata mirrors the metadata.json file shipped next to the database:
// title, attribution and per-table/column descriptions.
type Metadata struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	License     string               `json:"license,omitempty"`
	LicenseURL  string               `json:"license_url,omitempty"`
	Source      string               `json:"source,omitempty"`
	SourceURL   string               `json:"source_url,omitempty"`
	Tables      map[string]TableMeta `json:"tables,omitempty"`
}

// Load reads metadata from path. A missing file is not an error; the
// service just serves without descriptions.
func Load(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, nil
		}
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}

// Table returns metadata for the named table, if any.
func (m Metadata) Table(name string) (TableMeta, bool) {
	tm, ok := m.Tables[name]
	return tm, ok
}
