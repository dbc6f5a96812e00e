// Package planner ranks bridges into priority tiers around an inspector and
// assigns bridges to inspectors under a per-inspector capacity.
package planner

import (
	"fmt"
	"slices"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
)

// Default priority thresholds. A lower BCI means a worse bridge, so the
// tier with the lowest BCI ceiling is searched over the widest radius.
const (
	DefaultHighBCI   = 60.0
	DefaultMediumBCI = 70.0
	DefaultLowBCI    = 100.0

	DefaultHighRadiusKm   = 500.0
	DefaultMediumRadiusKm = 250.0
	DefaultLowRadiusKm    = 100.0
)

// Thresholds are the BCI ceilings (ascending) and search radii of the tiers.
type Thresholds struct {
	HighBCI   float64 `json:"high_bci"`
	MediumBCI float64 `json:"medium_bci"`
	LowBCI    float64 `json:"low_bci"`

	HighRadiusKm   float64 `json:"high_radius_km"`
	MediumRadiusKm float64 `json:"medium_radius_km"`
	LowRadiusKm    float64 `json:"low_radius_km"`
}

// DefaultThresholds returns the standard provincial thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighBCI:        DefaultHighBCI,
		MediumBCI:      DefaultMediumBCI,
		LowBCI:         DefaultLowBCI,
		HighRadiusKm:   DefaultHighRadiusKm,
		MediumRadiusKm: DefaultMediumRadiusKm,
		LowRadiusKm:    DefaultLowRadiusKm,
	}
}

// Validate checks that the BCI ceilings ascend and radii are not negative.
func (t Thresholds) Validate() error {
	if t.HighBCI >= t.MediumBCI || t.MediumBCI >= t.LowBCI {
		return fmt.Errorf("bci thresholds must ascend: high %v, medium %v, low %v", t.HighBCI, t.MediumBCI, t.LowBCI)
	}
	if t.HighRadiusKm < 0 || t.MediumRadiusKm < 0 || t.LowRadiusKm < 0 {
		return fmt.Errorf("radii must not be negative")
	}
	return nil
}

// Tier is a priority level.
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// MarshalText renders the tier name in JSON output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name written by MarshalText.
func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "high":
		*t = TierHigh
	case "medium":
		*t = TierMedium
	case "low":
		*t = TierLow
	default:
		return fmt.Errorf("unknown tier %q", b)
	}
	return nil
}

// Tiers holds the bridge IDs of each tier for one inspector, ascending.
type Tiers struct {
	High   []int
	Medium []int
	Low    []int
}

// ordered returns the tiers in assignment order.
func (t Tiers) ordered() []tierIDs {
	return []tierIDs{
		{tier: TierHigh, ids: t.High},
		{tier: TierMedium, ids: t.Medium},
		{tier: TierLow, ids: t.Low},
	}
}

type tierIDs struct {
	tier Tier
	ids  []int
}

// BridgeSource is the read side of the bridge store needed for planning.
type BridgeSource interface {
	InRadius(lat, lon, radius float64) []int
	LatestBCI(id int) (float64, error)
}

// Classify computes the three tiers for an inspector at the given location.
// Radius is applied first; only bridges in range have their BCI read, and a
// bridge in range without BCI history is an error. Bridges without a location
// are never in range, so they are never classified or assigned.
func Classify(src BridgeSource, at domain.Location, th Thresholds) (Tiers, error) {
	high, err := tier(src, at, th.HighRadiusKm, func(b float64) bool {
		return b <= th.HighBCI
	})
	if err != nil {
		return Tiers{}, err
	}
	medium, err := tier(src, at, th.MediumRadiusKm, func(b float64) bool {
		return th.HighBCI < b && b <= th.MediumBCI
	})
	if err != nil {
		return Tiers{}, err
	}
	low, err := tier(src, at, th.LowRadiusKm, func(b float64) bool {
		return th.MediumBCI < b && b <= th.LowBCI
	})
	if err != nil {
		return Tiers{}, err
	}
	return Tiers{High: high, Medium: medium, Low: low}, nil
}

func tier(src BridgeSource, at domain.Location, radius float64, match func(float64) bool) ([]int, error) {
	candidates := slices.Clone(src.InRadius(at.Lat, at.Lon, radius))
	slices.Sort(candidates)

	ids := []int{}
	for _, id := range candidates {
		bci, err := src.LatestBCI(id)
		if err != nil {
			return nil, fmt.Errorf("classify: %w", err)
		}
		if match(bci) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
