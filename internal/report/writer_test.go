package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-attendance/internal/report"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "report-2024-01-15.csv"), report.OutputPath("out", "report", "2024-01-15", ".csv"))
	assert.Equal(t, filepath.Join("out", "outreach.csv"), report.OutputPath("out", "outreach", "", ".csv"))
	assert.Equal(t, "report.csv", report.OutputPath("", "report", "", ".csv"))
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	outputs := []report.Output{
		{Kind: report.KindReport, Path: filepath.Join(dir, "report.csv"), Data: []byte("r\n")},
		{Kind: report.KindOutreach, Path: filepath.Join(dir, "outreach.csv"), Data: []byte("o\n")},
	}

	require.NoError(t, report.WriteAll(outputs))

	for _, out := range outputs {
		got, err := os.ReadFile(out.Path)
		require.NoError(t, err)
		assert.Equal(t, out.Data, got)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staging files may be left behind")
}

// TestWriteAll_AllOrNothing makes the outreach destination unwritable and
// checks the report is not left behind.
func TestWriteAll_AllOrNothing(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.csv")
	outreachPath := filepath.Join(dir, "missing-dir", "outreach.csv")

	err := report.WriteAll([]report.Output{
		{Kind: report.KindReport, Path: reportPath, Data: []byte("r\n")},
		{Kind: report.KindOutreach, Path: outreachPath, Data: []byte("o\n")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrOutputWrite)

	var werr *report.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, report.KindOutreach, werr.Kind)
	assert.Equal(t, outreachPath, werr.Path)

	_, statErr := os.Stat(reportPath)
	assert.True(t, os.IsNotExist(statErr), "report must not exist after a failed run")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestWriteAll_RestoresPreviousRun checks a failed rerun leaves the files of
// the earlier run for the same date untouched.
func TestWriteAll_RestoresPreviousRun(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report-2024-01-15.csv")
	calendarPath := filepath.Join(dir, "outreach-2024-01-15.ics")
	outreachPath := filepath.Join(dir, "outreach-2024-01-15.csv")

	require.NoError(t, os.WriteFile(reportPath, []byte("old report\n"), 0o644))
	require.NoError(t, os.Mkdir(outreachPath, 0o755))

	err := report.WriteAll([]report.Output{
		{Kind: report.KindReport, Path: reportPath, Data: []byte("new report\n")},
		{Kind: report.KindCalendar, Path: calendarPath, Data: []byte("new calendar\n")},
		{Kind: report.KindOutreach, Path: outreachPath, Data: []byte("new outreach\n")},
	})
	require.Error(t, err)

	var werr *report.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, report.KindOutreach, werr.Kind)

	got, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, "old report\n", string(got))

	_, statErr := os.Stat(calendarPath)
	assert.True(t, os.IsNotExist(statErr), "files new to this run must be removed")

	info, err := os.Stat(outreachPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staging or backup files may be left behind")
}

func TestWriteAll_ReplacesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(reportPath, []byte("old\n"), 0o644))

	require.NoError(t, report.WriteAll([]report.Output{
		{Kind: report.KindReport, Path: reportPath, Data: []byte("new\n")},
	}))

	got, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "backup must be removed after success")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "report", report.KindReport.String())
	assert.Equal(t, "contacts", report.KindContacts.String())
	assert.Equal(t, "unknown", report.Kind(9).String())
}
