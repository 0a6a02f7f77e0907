package telemetry

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"stockbot/internal/components/telemetry/telemetrytest"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := telemetrytest.NewRecorder()
	scoped := NewScopedAPI("franknez", recorder)

	scoped.ReportBroken("client.misc-stats", "section")
	scoped.ReportWarning("client.squeeze-score")
	scoped.ReportCount("report.sections", 3)

	broken := recorder.Reports(telemetrytest.KindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, "franknez: client.misc-stats", broken[0].Id)
	require.Equal(t, []any{"section"}, broken[0].Params)

	require.True(t, recorder.HasId(telemetrytest.KindWarning, "client.squeeze-score"))
	require.Len(t, recorder.Diagnostics(), 2)

	counts := recorder.Reports(telemetrytest.KindCount)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}

func TestSlogAPI(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var out bytes.Buffer
	InitSlog(false, &out)

	tel := NewSlogAPI()
	tel.ReportDebug("hidden unless verbose")
	tel.ReportBroken("fetcher.fetch", "https://example.com")

	logged := out.String()
	require.NotContains(t, logged, "hidden unless verbose")
	require.Contains(t, logged, "broken component")
	require.Contains(t, logged, "id=fetcher.fetch")
	require.Contains(t, logged, "params.0=https://example.com")
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(output.Dir()))

	output.Write("1", "GET https://example.com")

	contents, err := os.ReadFile(filepath.Join(output.Dir(), "1.http"))
	require.NoError(t, err)
	require.Equal(t, "GET https://example.com", string(contents))
}

func TestFilesystemOutputKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("keep me"), 0600))

	first, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	first.Write("1", "first run")

	second, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.NotEqual(t, first.Dir(), second.Dir())

	contents, err := os.ReadFile(notes)
	require.NoError(t, err)
	require.Equal(t, "keep me", string(contents))

	contents, err = os.ReadFile(filepath.Join(first.Dir(), "1.http"))
	require.NoError(t, err)
	require.Equal(t, "first run", string(contents))
}
