package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/domain/bridgetest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	records := bridgetest.ThreeBridges()
	records[1].Location = nil
	records[1].BCIHistory = nil
	records[2].BCIHistory = []float64{55}

	s := collectStats(records)
	assert.Equal(t, 2, s.located)
	assert.Equal(t, 1, s.noHistory)
	assert.Equal(t, map[string]int{"high": 1, "low": 1}, s.tierCounts)
	assert.Equal(t, map[string]int{"403": 2, "6": 1}, s.highways)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bridges.json")
	require.NoError(t, writeJSON(path, bridgetest.ThreeBridges()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []domain.BridgeRecord
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(bridgetest.ThreeBridges(), got); diff != "" {
		t.Fatalf("fixture mismatch (-want +got):\n%s", diff)
	}
}
