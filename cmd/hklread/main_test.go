package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "../../test/sample.hkl"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HKLREAD_FORMAT", "")
	t.Setenv("HKLREAD_LOG_LEVEL", "")
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUsageErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"no arguments":   {},
		"two arguments":  {sample, sample},
		"wrong suffix":   {"../../test/sample.txt"},
		"unknown flag":   {"--frobnicate", sample},
		"invalid format": {"--format", "xml", sample},
	} {
		t.Run(name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error:")
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestSourceUnavailable(t *testing.T) {
	code, stdout, stderr := runCLI(t, "../../test/missing.hkl")
	assert.Equal(t, exitSourceUnavailable, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "could not open file")
}

func TestHeaderNotFound(t *testing.T) {
	code, stdout, stderr := runCLI(t, "../../test/noheader.hkl")
	assert.Equal(t, exitHeaderNotFound, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "could not find the expected header")
}

func TestStrictFailure(t *testing.T) {
	code, _, stderr := runCLI(t, "--strict", sample)
	assert.Equal(t, exitReadFailure, code)
	assert.Contains(t, stderr, "line 19")
}

func TestTable(t *testing.T) {
	code, stdout, stderr := runCLI(t, sample)
	require.Equal(t, exitOK, code, stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Found 8 reflections:", lines[0])
	assert.Equal(t, "H: 1 K: 1 L: 1 Mult: 8 d-spacing: 3.25626 |Fc|^2: 142.195", lines[1])
	assert.Contains(t, stderr, "Dropped malformed lines")
}

func TestZeroRecords(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.hkl")
	require.NoError(t, os.WriteFile(name, []byte("title\n# H   K   L     Mult    dspc                   |Fc|^2\n"), 0o644))
	code, stdout, _ := runCLI(t, name)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Found 0 reflections:\n", stdout)

	code, stdout, _ = runCLI(t, "--summary", "--shells", "3", name)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Found 0 reflections:\n", stdout)
}

func TestSummaryAndShells(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--summary", "--shells", "4", sample)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Reflections: 8 (total multiplicity 112)")
	assert.Contains(t, stdout, "multiplicity")
	assert.Contains(t, stdout, "    3.2563")
}

func TestJSON(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--format", "json", "--summary", "--shells", "2", sample)
	require.Equal(t, exitOK, code, stderr)
	var out struct {
		Count       int `json:"count"`
		Reflections []struct {
			H, K, L int
			Mult    int     `json:"multiplicity"`
			D       float64 `json:"dspacing"`
			Fc2     float64 `json:"fc2"`
		} `json:"reflections"`
		Summary struct {
			TotalMult int `json:"total_multiplicity"`
		} `json:"summary"`
		Shells []struct {
			Mult float64 `json:"multiplicity"`
		} `json:"shells"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 8, out.Count)
	require.Len(t, out.Reflections, 8)
	assert.Equal(t, -3, out.Reflections[6].H)
	assert.Equal(t, 24, out.Reflections[6].Mult)
	assert.Equal(t, 112, out.Summary.TotalMult)
	assert.Len(t, out.Shells, 2)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "hklread.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("format: hkl\nlog_level: error\n"), 0o644))
	code, stdout, stderr := runCLI(t, "--config", cfg, sample)
	require.Equal(t, exitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "# H   K   L     Mult    dspc                   |Fc|^2\n"))
	assert.Empty(t, stderr, "warnings are below the configured level")

	//flags override the file
	code, stdout, _ = runCLI(t, "--config", cfg, "--format", "table", sample)
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "Found 8 reflections:"))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("colour: red\n"), 0o644))
	code, _, _ = runCLI(t, "--config", bad, sample)
	assert.Equal(t, exitUsage, code)
}
