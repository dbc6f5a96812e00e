package domain

import (
	"errors"
	"slices"
)

var (
	// ErrMalformedRow marks a raw row whose numeric cells cannot be parsed.
	ErrMalformedRow = errors.New("malformed bridge row")

	// ErrEmptyHistory is returned when an operation needs the most recent BCI
	// of a bridge that has never been inspected.
	ErrEmptyHistory = errors.New("bridge has no BCI history")

	// ErrNoLocation is returned when a distance is requested for a bridge
	// without coordinates.
	ErrNoLocation = errors.New("bridge has no location")

	// ErrNotFound is returned by operations whose precondition requires the
	// bridge to exist. Plain lookups report a miss with a zero value instead.
	ErrNotFound = errors.New("bridge not found")

	// ErrTooFewRecords is returned by Closest on a store with fewer than two bridges.
	ErrTooFewRecords = errors.New("at least two bridges are required")

	// ErrInvalidCapacity is returned for a negative per-inspector capacity.
	ErrInvalidCapacity = errors.New("inspector capacity must not be negative")
)

// RawRow is one unparsed line of the CSV export.
type RawRow struct {
	Line   int // 1-based line number in the source file
	Fields []string
}

// Location is a WGS-84 latitude/longitude pair in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BridgeRecord is the cleaned representation of one structure.
type BridgeRecord struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Highway  string    `json:"highway"`
	Location *Location `json:"location,omitempty"`

	YearBuilt      string `json:"year_built"`
	LastMajorRehab string `json:"last_major_rehab"` // doubles as the rebuild year
	LastMinorRehab string `json:"last_minor_rehab"`

	NumSpans    int       `json:"num_spans"`
	SpanLengths []float64 `json:"span_lengths"`
	TotalLength float64   `json:"total_length"`

	LastInspectionDate string    `json:"last_inspection_date"`
	BCIHistory         []float64 `json:"bci_history"` // most recent first
}

// LatestBCI returns the most recent condition score.
func (b BridgeRecord) LatestBCI() (float64, error) {
	if len(b.BCIHistory) == 0 {
		return 0, ErrEmptyHistory
	}
	return b.BCIHistory[0], nil
}

// Clone returns a deep copy so callers cannot alias the slices of a stored record.
func (b BridgeRecord) Clone() BridgeRecord {
	out := b
	if b.Location != nil {
		loc := *b.Location
		out.Location = &loc
	}
	out.SpanLengths = slices.Clone(b.SpanLengths)
	out.BCIHistory = slices.Clone(b.BCIHistory)
	return out
}
