package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/gf2div/internal/config"
	"github.com/Mr-Dark-debug/gf2div/internal/database"
)

// run executes the command tree with an isolated config and database.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(BuildInfo{Version: "test", BuildTime: "now", GitCommit: "abc"})
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDivideText(t *testing.T) {
	out, err := run(t, t.TempDir(), "divide", "1100110000", "11001")
	require.NoError(t, err)
	assert.Contains(t, out, "quotient   100001")
	assert.Contains(t, out, "remainder  1001")
	assert.Contains(t, out, "✓ quotient·divisor + remainder = dividend")
	assert.NotContains(t, out, "\x1b[", "no color when not writing to a terminal")
}

func TestDivideJSON(t *testing.T) {
	out, err := run(t, t.TempDir(), "divide", "101", "11", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			Quotient  string `json:"quotient"`
			Remainder string `json:"remainder"`
		} `json:"summary"`
		Trace struct {
			Steps []json.RawMessage `json:"steps"`
		} `json:"trace"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "11", doc.Summary.Quotient)
	assert.Equal(t, "0", doc.Summary.Remainder)
	assert.Len(t, doc.Trace.Steps, 3)
}

func TestDivideErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "divide", "1011", "0110")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "divisor")

	_, err = run(t, dir, "divide", "1011", "11", "--format", "yaml")
	require.Error(t, err)

	_, err = run(t, dir, "divide", "1011")
	require.Error(t, err)
}

func TestDivideSaveAndHistory(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")

	for _, in := range [][2]string{{"101", "11"}, {"1100110000", "11001"}, {"111", "11"}} {
		_, err := run(t, dir, "divide", in[0], in[1], "--save", "--db", db)
		require.NoError(t, err)
	}

	store, err := database.NewDBService(db)
	require.NoError(t, err)
	n, err := store.CountDivisions()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	divs, err := store.QueryDivisions(database.DivisionFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, database.SourceCLI, divs[0].Source)
	require.NoError(t, store.Close())

	out, err := run(t, dir, "history", "--db", db, "--divisor", "11", "--format", "json")
	require.NoError(t, err)
	var h struct {
		Stats  *database.HistoryStats `json:"stats"`
		Recent []*database.Division   `json:"recent"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Nil(t, h.Stats)
	require.Len(t, h.Recent, 2)
	assert.Equal(t, "111", h.Recent[0].Dividend, "newest first")

	out, err = run(t, dir, "history", "--db", db, "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "divisions  3 (2 divisors, 0 degenerate, 1 exact)")
}

func TestMultiply(t *testing.T) {
	out, err := run(t, t.TempDir(), "multiply", "11", "11")
	require.NoError(t, err)
	assert.Equal(t, "101\n", out)

	out, err = run(t, t.TempDir(), "multiply", "0", "101", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "0\n(0)(x^2 + 1) = 0")

	_, err = run(t, t.TempDir(), "multiply", "12", "1")
	assert.Error(t, err)
}

func TestCRC(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "crc", "11010011101100", "1011")
	require.NoError(t, err)
	assert.Contains(t, out, "crc       100\n")
	assert.Contains(t, out, "codeword  11010011101100100\n")

	out, err = run(t, dir, "crc", "11010011101100100", "1011", "--verify")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = run(t, dir, "crc", "11010011101100101", "1011", "--verify")
	assert.Error(t, err)

	_, err = run(t, dir, "crc", "1101", "0")
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")

	_, err = run(t, dir, "config", "init")
	assert.Error(t, err, "refuses to overwrite")

	_, err = run(t, dir, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Divisor, cfg.Divisor)

	out, err = run(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "divisor: \"11001\"")
	assert.Contains(t, out, "flush_interval: 500ms")
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "gf2div vtest (commit: abc, built: now)\n", out)
}
