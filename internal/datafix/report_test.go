package datafix

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWriterWrite(t *testing.T) {
	dir := t.TempDir()
	writer := NewReportWriter(dir)

	report := Report{
		GeneratedAt:    time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC),
		UndraftedCount: 42,
		ShootsFixes:    []FixEntry{{PlayerID: "dirtsh01", Before: "RightRight", After: "Right"}},
	}
	path, err := writer.Write(report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fixes-20250830-120000.json"), path)

	var decoded Report
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 42, decoded.UndraftedCount)
	require.Len(t, decoded.ShootsFixes, 1)
	assert.Equal(t, "Right", decoded.ShootsFixes[0].After)

	latest, err := os.ReadFile(filepath.Join(dir, "latest.json"))
	require.NoError(t, err)
	assert.Equal(t, data, latest)
}

func TestReportWriterLatestTracksNewestRun(t *testing.T) {
	dir := t.TempDir()
	writer := NewReportWriter(dir)

	first := Report{GeneratedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	second := Report{GeneratedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), UndraftedCount: 7}
	_, err := writer.Write(first)
	require.NoError(t, err)
	_, err = writer.Write(second)
	require.NoError(t, err)

	var latest Report
	data, err := os.ReadFile(filepath.Join(dir, "latest.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &latest))
	assert.EqualValues(t, 7, latest.UndraftedCount)
}

func TestReportWriterUnconfigured(t *testing.T) {
	_, err := NewReportWriter("").Write(Report{})
	require.Error(t, err)
}
