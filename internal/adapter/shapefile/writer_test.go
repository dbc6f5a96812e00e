package shapefile

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/domain/bridgetest"
	"github.com/couchcryptid/bridge-inspection/internal/planner"
	"github.com/couchcryptid/bridge-inspection/internal/store"
	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feature struct {
	lat, lon float64
	attrs    map[string]string
}

func readBack(t *testing.T, path string) []feature {
	t.Helper()
	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	fields := r.Fields()
	var out []feature
	for r.Next() {
		idx, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		require.True(t, ok, "expected point geometry")
		f := feature{lat: pt.Y, lon: pt.X, attrs: map[string]string{}}
		for i, field := range fields {
			f.attrs[field.String()] = strings.TrimSpace(r.ReadAttribute(idx, i))
		}
		out = append(out, f)
	}
	return out
}

func TestWriteAssignments(t *testing.T) {
	s := store.New(bridgetest.ThreeBridges())
	result, err := planner.Assign(s, planner.DefaultThresholds(), []domain.Location{
		{Lat: 43.20, Lon: -80.35},
		{Lat: 45.0368, Lon: -81.34},
	}, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plan.shp")
	n, err := WriteAssignments(path, result, s)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	features := readBack(t, path)
	require.Len(t, features, 3)

	assert.InDelta(t, 43.167233, features[0].lat, 1e-9)
	assert.InDelta(t, -80.275567, features[0].lon, 1e-9)
	assert.Equal(t, "1", features[0].attrs["ID"])
	assert.Equal(t, "Highway 24 Underpass at Highway 403", features[0].attrs["NAME"])
	assert.Equal(t, "403", features[0].attrs["HIGHWAY"])
	assert.Equal(t, "0", features[0].attrs["INSPECTOR"])
	assert.Equal(t, "low", features[0].attrs["TIER"])

	assert.Equal(t, "3", features[2].attrs["ID"])
	assert.Equal(t, "1", features[2].attrs["INSPECTOR"])
	bci, err := strconv.ParseFloat(features[2].attrs["BCI"], 64)
	require.NoError(t, err)
	assert.InDelta(t, 85.1, bci, 1e-9)
}

func TestWriteAssignments_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.shp")
	n, err := WriteAssignments(path, planner.Result{}, store.New(nil))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, readBack(t, path))
}

func TestWriteAssignments_UnknownBridge(t *testing.T) {
	result := planner.Result{Inspectors: []planner.InspectorAssignment{{
		Bridges: []planner.AssignedBridge{{ID: 42, Tier: planner.TierHigh}},
	}}}

	_, err := WriteAssignments(filepath.Join(t.TempDir(), "bad.shp"), result, store.New(nil))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}
