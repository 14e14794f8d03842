package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"divindex/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DIVINDEX_SHEET", "DIVINDEX_SITE_COLUMN", "DIVINDEX_DELIMITER", "DIVINDEX_WORKBOOK", "DIVINDEX_REPORT", "DIVINDEX_CHARTS"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "ERROR")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_PrintsCommunitySummary(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "sites.csv")
	require.NoError(t, os.WriteFile(input, []byte("site,oak,ash,elm\nA,5,0,3\nB,0,2,2\n"), 0o644))

	workbook := filepath.Join(dir, "charts.xlsx")
	reportPath := filepath.Join(dir, "report.md")

	out, err := execute(t, input, "s", "--no-charts", "--workbook", workbook, "--report", reportPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Shannon: "))
	assert.Contains(t, out, "Richness: 3\n")
	assert.Contains(t, out, "Chao: 3\n")
	assert.NotContains(t, out, "Rank-abundance")

	assert.FileExists(t, workbook)
	assert.FileExists(t, reportPath)
}

func TestRoot_Charts(t *testing.T) {
	clearEnv(t)
	input := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(input, []byte("oak,ash\n4,1\n0,0\n"), 0o644))

	out, err := execute(t, input, "chao")
	require.NoError(t, err)
	assert.Contains(t, out, "Comparison of Chao (chao) for each sampling site")
	assert.Contains(t, out, "Rank-abundance (log scale)")
}

func TestRoot_Delimiter(t *testing.T) {
	clearEnv(t)
	input := filepath.Join(t.TempDir(), "sites.txt")
	require.NoError(t, os.WriteFile(input, []byte("site;oak;ash;elm\nA;5;0;3\nB;0;2;2\n"), 0o644))

	out, err := execute(t, input, "s", "--no-charts", "--delimiter", "semicolon")
	require.NoError(t, err)
	assert.Contains(t, out, "Richness: 3\n")
	assert.NotContains(t, out, "skipped")

	t.Setenv("DIVINDEX_DELIMITER", ";")
	out, err = execute(t, input, "s", "--no-charts")
	require.NoError(t, err)
	assert.Contains(t, out, "Richness: 3\n")

	_, err = execute(t, input, "s", "--delimiter", "::")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestRoot_Errors(t *testing.T) {
	clearEnv(t)
	input := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(input, []byte("oak,ash\n4,1\n"), 0o644))

	_, err := execute(t, input, "Q")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = execute(t, input, "H", "--workbook", "charts.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	_, err = execute(t, filepath.Join(t.TempDir(), "missing.csv"), "H")
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))

	_, err = execute(t, input)
	assert.Error(t, err)
}

func TestIndicesCommand(t *testing.T) {
	out, err := execute(t, "indices")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "exp_H")
	assert.Contains(t, out, "Menhinick")
}

func TestSampleCommand_RoundTrips(t *testing.T) {
	clearEnv(t)
	input := filepath.Join(t.TempDir(), "sample.csv")

	out, err := execute(t, "sample", input, "--sites", "3", "--species", "5", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 sites x 5 species")

	out, err = execute(t, input, "H", "--no-charts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Shannon: "))

	_, err = execute(t, "sample", filepath.Join(t.TempDir(), "bad.csv"), "--dominance", "2")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
