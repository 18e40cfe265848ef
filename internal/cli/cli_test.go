package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// isolate keeps the user's real config and environment out of the run.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"ROULETTE_CONFIG", "ROULETTE_HOST", "ROULETTE_PORT", "ROULETTE_DEFAULT_NEIGHBORS", "ROULETTE_LOG_LEVEL", "ROULETTE_MAX_RADIUS"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestNeighborsTable(t *testing.T) {
	isolate(t)

	code, out, errOut := run(t, "neighbors", "3 3, 8 1, 12")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Input Numbers Only")
	assert.Contains(t, out, "Input Numbers and Neighbors")
	assert.Contains(t, out, " 3: 28 12 35 3 26 0 32\n")
	assert.Contains(t, out, " 8: 30 8 23\n")
	assert.Contains(t, out, "12: 28 12 35\n")
	assert.Contains(t, out, "10 pockets, 27.03% of the wheel")
}

func TestNeighborsJoinsArgs(t *testing.T) {
	isolate(t)

	code, out, errOut := run(t, "neighbors", "17", "2,", "0", "--format", "json")
	require.Equal(t, 0, code, errOut)

	var res struct {
		Neighbors map[string][]int `json:"neighbors"`
		Coverage  string           `json:"coverage_pct"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{2, 25, 17, 34, 6}, res.Neighbors["17"])
	assert.Equal(t, []int{26, 0, 32}, res.Neighbors["0"])
	assert.Equal(t, "21.62", res.Coverage)
}

func TestNeighborsDefaultFlag(t *testing.T) {
	isolate(t)

	code, out, errOut := run(t, "neighbors", "0", "--default", "3", "-f", "json")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"default_neighbors": 3`)
	assert.Contains(t, out, "35,")

	code, _, errOut = run(t, "neighbors", "0", "--default", "7")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "default neighbors must be between 1 and 3, got 7")
}

func TestNeighborsDefaultFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ROULETTE_DEFAULT_NEIGHBORS", "2")

	code, out, errOut := run(t, "neighbors", "26", "-f", "json")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"default_neighbors": 2`)
}

func TestNeighborsErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"too many tokens", "1 2 3", "invalid format for '1 2 3'. Use 'number count' or 'number'"},
		{"bad pair", "8 x", "invalid input format for pair '8 x'. Ensure numbers and counts are integers"},
		{"bad single", "abc", "invalid number format for 'abc'. Ensure it's an integer"},
		{"out of range", "37", "invalid number: 37. Must be between 0 and 36"},
		{"negative radius", "5 -1", "neighbor count for number 5 must be non-negative"},
		{"radius above limit", "0 9223372036854775807", "neighbor count for number 0 must be at most 100, got 9223372036854775807"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, "neighbors", tt.input)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestNeighborsMaxRadiusFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ROULETTE_MAX_RADIUS", "18")

	code, _, errOut := run(t, "neighbors", "0 19")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "must be at most 18, got 19")

	code, out, errOut := run(t, "neighbors", "0 18", "-f", "json")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"coverage_pct": "100"`)
}

func TestNeighborsUnknownFormat(t *testing.T) {
	isolate(t)

	code, _, errOut := run(t, "neighbors", "1", "--format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown format "yaml"`)
}

func TestWheel(t *testing.T) {
	isolate(t)

	code, out, errOut := run(t, "wheel")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 37)
	assert.Equal(t, []string{"0", "0", "green"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "32", "red"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"36", "26", "black"}, strings.Fields(lines[36]))
}

func TestExport(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	code, out, errOut := run(t, "export", "3 3, 8 1, 12", "--out", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "wrote "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Input Numbers Only", "Input Numbers and Neighbors"}, f.GetSheetList())
}

func TestExportInvalidInputWritesNothing(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	code, _, errOut := run(t, "export", "99", "--out", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid number: 99")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestVersion(t *testing.T) {
	isolate(t)

	code, out, _ := run(t, "version")
	require.Equal(t, 0, code)
	assert.Equal(t, "roulette dev (commit unknown, built unknown)\n", out)
}

func TestBadConfigPath(t *testing.T) {
	isolate(t)

	code, _, errOut := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "wheel")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "read config")
}

func TestServeRejectsBadPort(t *testing.T) {
	isolate(t)

	code, _, errOut := run(t, "serve", "--port", "70000")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "server.port 70000 out of range")
}
