package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EmbeddedCatalogPasses(t *testing.T) {
	var out bytes.Buffer
	code := run("", &out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Stations: 20 (critical 3, high 10, moderate 7, low 0)")
	assert.Contains(t, out.String(), "At risk: 13, high federal dependency: 6")
	assert.Contains(t, out.String(), "All checks passed across 64 preference sets.")
	assert.Contains(t, out.String(), "Note: 9 stations never reach a top-4 list")
}

func TestRun_InvalidCatalogFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x","name":"X","state":"tx","risk_level":"dire","federal_funding":120,"needs":[],"programs":["News"]}]`), 0o600))

	var out bytes.Buffer
	code := run(path, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL")
}

func TestPreferenceCombinations(t *testing.T) {
	combos := preferenceCombinations()
	require.Len(t, combos, 64)
	for _, p := range combos {
		require.NoError(t, p.Check())
	}
}
