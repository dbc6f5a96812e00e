package planner

import (
	"testing"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/domain/bridgetest"
	"github.com/couchcryptid/bridge-inspection/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(lat, lon float64) domain.Location {
	return domain.Location{Lat: lat, Lon: lon}
}

// mixedBridges places bridges of every tier around (44.0, -80.0).
// Offsets are along the meridian: 0.1 degrees is about 11 km.
func mixedBridges() []domain.BridgeRecord {
	mk := func(id int, dLat, bci float64) domain.BridgeRecord {
		return domain.BridgeRecord{
			ID:         id,
			Name:       "BRIDGE",
			Location:   &domain.Location{Lat: 44.0 + dLat, Lon: -80.0},
			BCIHistory: []float64{bci},
		}
	}
	return []domain.BridgeRecord{
		mk(5, 0.1, 85),  // low, 11 km
		mk(4, 0.2, 55),  // high, 22 km
		mk(3, 3.0, 65),  // medium, 333 km: outside the medium radius
		mk(2, 2.0, 65),  // medium, 222 km
		mk(1, 4.0, 40),  // high, 445 km
		mk(6, 1.5, 95),  // low, 167 km: outside the low radius
		mk(7, 0.3, 101), // above every tier
	}
}

func TestAssign_ReferenceExamples(t *testing.T) {
	src := store.New(bridgetest.ThreeBridges())
	th := DefaultThresholds()

	cases := []struct {
		name       string
		inspectors []domain.Location
		max        int
		want       [][]int
	}{
		{"zero capacity", []domain.Location{loc(43.10, -80.15), loc(42.10, -81.15)}, 0, [][]int{{}, {}}},
		{"one inspector cap 1", []domain.Location{loc(43.10, -80.15)}, 1, [][]int{{1}}},
		{"one inspector cap 2", []domain.Location{loc(43.10, -80.15)}, 2, [][]int{{1, 2}}},
		{"one inspector cap 3", []domain.Location{loc(43.10, -80.15)}, 3, [][]int{{1, 2}}},
		{"split by capacity", []domain.Location{loc(43.20, -80.35), loc(43.10, -80.15)}, 1, [][]int{{1}, {2}}},
		{"first inspector takes all", []domain.Location{loc(43.20, -80.35), loc(43.10, -80.15)}, 2, [][]int{{1, 2}, {}}},
		{"second inspector near stokes", []domain.Location{loc(43.20, -80.35), loc(45.0368, -81.34)}, 2, [][]int{{1, 2}, {3}}},
		{"first inspector out of range", []domain.Location{loc(38.691, -80.85), loc(43.20, -80.35)}, 2, [][]int{{}, {1, 2}}},
		{"no inspectors", nil, 2, [][]int{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Assign(src, th, tc.inspectors, tc.max)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.BridgeIDs())
		})
	}
}

func TestAssign_TierOrderAndLabels(t *testing.T) {
	src := store.New(mixedBridges())

	got, err := Assign(src, DefaultThresholds(), []domain.Location{loc(44.0, -80.0)}, 10)
	require.NoError(t, err)
	require.Len(t, got.Inspectors, 1)

	assert.Equal(t, []AssignedBridge{
		{ID: 1, Tier: TierHigh},
		{ID: 4, Tier: TierHigh},
		{ID: 2, Tier: TierMedium},
		{ID: 5, Tier: TierLow},
	}, got.Inspectors[0].Bridges)
	assert.Equal(t, 4, got.Assigned())
}

func TestAssign_CapacityStopsAcrossTiers(t *testing.T) {
	src := store.New(mixedBridges())
	inspectors := []domain.Location{loc(44.0, -80.0), loc(44.0, -80.0)}

	got, err := Assign(src, DefaultThresholds(), inspectors, 3)
	require.NoError(t, err)

	// The first inspector fills up inside the medium tier; its low-tier
	// bridge is left for the second inspector.
	assert.Equal(t, [][]int{{1, 4, 2}, {5}}, got.BridgeIDs())
}

func TestAssign_Invariants(t *testing.T) {
	src := store.New(mixedBridges())
	inspectors := []domain.Location{loc(44.0, -80.0), loc(44.1, -80.1), loc(46.0, -80.0), loc(44.2, -80.0)}

	for _, max := range []int{0, 1, 2, 3, 5} {
		got, err := Assign(src, DefaultThresholds(), inspectors, max)
		require.NoError(t, err)
		require.Len(t, got.Inspectors, len(inspectors))

		seen := map[int]int{}
		for i, a := range got.Inspectors {
			assert.Equal(t, inspectors[i], a.Inspector, "input order preserved")
			assert.LessOrEqual(t, len(a.Bridges), max)
			for _, id := range a.IDs() {
				prev, dup := seen[id]
				assert.False(t, dup, "bridge %d assigned to inspectors %d and %d", id, prev, i)
				seen[id] = i
			}
		}
	}
}

func TestAssign_NegativeCapacity(t *testing.T) {
	src := store.New(bridgetest.ThreeBridges())
	_, err := Assign(src, DefaultThresholds(), []domain.Location{loc(43.10, -80.15)}, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

func TestAssign_EmptyHistoryInRange(t *testing.T) {
	recs := bridgetest.ThreeBridges()
	recs[1].BCIHistory = nil
	src := store.New(recs)

	_, err := Assign(src, DefaultThresholds(), []domain.Location{loc(43.10, -80.15)}, 2)
	require.ErrorIs(t, err, domain.ErrEmptyHistory)
	assert.Contains(t, err.Error(), "inspector 0")

	// Out of range of every tier, the bridge is never examined.
	got, err := Assign(src, DefaultThresholds(), []domain.Location{loc(10, 10)}, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{}}, got.BridgeIDs())
}

func TestAssignTier_SharedSet(t *testing.T) {
	assigned := map[int]struct{}{2: {}}
	out := assignTier(tierIDs{tier: TierLow, ids: []int{1, 2, 3, 4}}, assigned, nil, 2)

	assert.Equal(t, []AssignedBridge{{ID: 1, Tier: TierLow}, {ID: 3, Tier: TierLow}}, out)
	assert.Contains(t, assigned, 1)
	assert.Contains(t, assigned, 3)
	assert.NotContains(t, assigned, 4)
}

func TestAssign_WrappedLongitudeIsInRange(t *testing.T) {
	src := store.New([]domain.BridgeRecord{
		{ID: 1, Location: &domain.Location{Lat: 43.1, Lon: 279.85}, BCIHistory: []float64{50}},
		{ID: 2, Location: &domain.Location{Lat: 43.1, Lon: -80.15}, BCIHistory: []float64{65}},
	})

	got, err := Assign(src, DefaultThresholds(), []domain.Location{loc(43.1, -80.15)}, 5)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}}, got.BridgeIDs())
}
