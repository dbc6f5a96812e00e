package planner

import (
	"fmt"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
)

// AssignedBridge is one bridge handed to an inspector.
type AssignedBridge struct {
	ID   int  `json:"id"`
	Tier Tier `json:"tier"`
}

// InspectorAssignment lists the bridges of one inspector in assignment order:
// high, then medium, then low, ascending ID within a tier.
type InspectorAssignment struct {
	Inspector domain.Location  `json:"inspector"`
	Bridges   []AssignedBridge `json:"bridges"`
}

// IDs returns the assigned bridge IDs in order.
func (a InspectorAssignment) IDs() []int {
	ids := make([]int, len(a.Bridges))
	for i, b := range a.Bridges {
		ids[i] = b.ID
	}
	return ids
}

// Result holds one entry per inspector, in input order.
type Result struct {
	Inspectors []InspectorAssignment `json:"inspectors"`
}

// BridgeIDs returns the bridge IDs of every inspector, in input order.
func (r Result) BridgeIDs() [][]int {
	out := make([][]int, len(r.Inspectors))
	for i, a := range r.Inspectors {
		out[i] = a.IDs()
	}
	return out
}

// Assigned returns the total number of assigned bridges.
func (r Result) Assigned() int {
	n := 0
	for _, a := range r.Inspectors {
		n += len(a.Bridges)
	}
	return n
}

// Assign gives each inspector, in order, up to maxPerInspector bridges from
// its high, medium and low tiers. A bridge goes to the first inspector that
// reaches it and is never assigned twice.
func Assign(src BridgeSource, th Thresholds, inspectors []domain.Location, maxPerInspector int) (Result, error) {
	if maxPerInspector < 0 {
		return Result{}, fmt.Errorf("assign: %w: %d", domain.ErrInvalidCapacity, maxPerInspector)
	}

	assigned := make(map[int]struct{})
	result := Result{Inspectors: make([]InspectorAssignment, 0, len(inspectors))}

	for i, at := range inspectors {
		tiers, err := Classify(src, at, th)
		if err != nil {
			return Result{}, fmt.Errorf("assign inspector %d: %w", i, err)
		}

		ia := InspectorAssignment{Inspector: at, Bridges: []AssignedBridge{}}
		for _, t := range tiers.ordered() {
			ia.Bridges = assignTier(t, assigned, ia.Bridges, maxPerInspector)
		}
		result.Inspectors = append(result.Inspectors, ia)
	}
	return result, nil
}

// assignTier appends unassigned bridges of one tier to out until out holds
// limit entries, marking each in assigned.
func assignTier(t tierIDs, assigned map[int]struct{}, out []AssignedBridge, limit int) []AssignedBridge {
	for _, id := range t.ids {
		if len(out) >= limit {
			break
		}
		if _, taken := assigned[id]; taken {
			continue
		}
		assigned[id] = struct{}{}
		out = append(out, AssignedBridge{ID: id, Tier: t.tier})
	}
	return out
}
