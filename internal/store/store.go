// Package store holds the in-memory bridge records and answers queries over
// them. It is not safe for concurrent use; callers serialize access.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/geo"
)

// Store is an ordered list of bridge records plus a spatial index over the
// located ones. Query results follow record order.
type Store struct {
	records []domain.BridgeRecord
	index   *geo.Index
}

// New creates a store over records. IDs are expected to be unique; use
// LoadBatch to have that checked.
func New(records []domain.BridgeRecord) *Store {
	s := &Store{}
	s.replace(records)
	return s
}

// LoadBatch replaces the store contents with records. It implements
// pipeline.BatchLoader.
func (s *Store) LoadBatch(_ context.Context, records []domain.BridgeRecord) error {
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("load batch: duplicate bridge id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	s.replace(records)
	return nil
}

func (s *Store) replace(records []domain.BridgeRecord) {
	s.records = make([]domain.BridgeRecord, len(records))
	s.index = geo.NewIndex()
	for i, r := range records {
		s.records[i] = r.Clone()
		if r.Location != nil {
			s.index.Insert(r.ID, r.Location.Lat, r.Location.Lon)
		}
	}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of every record in order.
func (s *Store) Records() []domain.BridgeRecord {
	out := make([]domain.BridgeRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// FindByID returns a copy of the record with the given ID.
func (s *Store) FindByID(id int) (domain.BridgeRecord, bool) {
	r := s.find(id)
	if r == nil {
		return domain.BridgeRecord{}, false
	}
	return r.Clone(), true
}

func (s *Store) find(id int) *domain.BridgeRecord {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i]
		}
	}
	return nil
}

// LatestBCI returns the most recent BCI of a bridge.
func (s *Store) LatestBCI(id int) (float64, error) {
	r := s.find(id)
	if r == nil {
		return 0, fmt.Errorf("bridge %d: %w", id, domain.ErrNotFound)
	}
	bci, err := r.LatestBCI()
	if err != nil {
		return 0, fmt.Errorf("bridge %d: %w", id, err)
	}
	return bci, nil
}

// AverageBCI returns the mean of a bridge's BCI history, or 0 when the
// bridge is absent or has never been inspected.
func (s *Store) AverageBCI(id int) float64 {
	r := s.find(id)
	if r == nil || len(r.BCIHistory) == 0 {
		return 0
	}
	var total float64
	for _, v := range r.BCIHistory {
		total += v
	}
	return total / float64(len(r.BCIHistory))
}

// TotalLengthOnHighway sums the total length of bridges whose highway
// matches exactly.
func (s *Store) TotalLengthOnHighway(highway string) float64 {
	var length float64
	for _, r := range s.records {
		if r.Highway == highway {
			length += r.TotalLength
		}
	}
	return length
}

// DistanceBetween returns the great-circle distance in kilometres between
// the locations of two bridges. It measures position, not a difference in
// bridge length.
func DistanceBetween(a, b domain.BridgeRecord) (float64, error) {
	if a.Location == nil {
		return 0, fmt.Errorf("bridge %d: %w", a.ID, domain.ErrNoLocation)
	}
	if b.Location == nil {
		return 0, fmt.Errorf("bridge %d: %w", b.ID, domain.ErrNoLocation)
	}
	d := geo.Distance(a.Location.Lat, a.Location.Lon, b.Location.Lat, b.Location.Lon)
	return geo.Round3(d), nil
}

// Closest returns the ID of the bridge nearest to the bridge with the given
// ID, excluding that bridge itself. Ties go to the earlier record. Bridges
// without a location are not candidates.
func (s *Store) Closest(id int) (int, error) {
	if len(s.records) < 2 {
		return 0, domain.ErrTooFewRecords
	}
	target := s.find(id)
	if target == nil {
		return 0, fmt.Errorf("bridge %d: %w", id, domain.ErrNotFound)
	}
	if target.Location == nil {
		return 0, fmt.Errorf("bridge %d: %w", id, domain.ErrNoLocation)
	}

	bestID, found := 0, false
	var best float64
	for _, r := range s.records {
		if r.ID == id || r.Location == nil {
			continue
		}
		d, _ := DistanceBetween(*target, r)
		if !found || d < best {
			bestID, best, found = r.ID, d, true
		}
	}
	if !found {
		return 0, fmt.Errorf("bridge %d: no other located bridge: %w", id, domain.ErrNoLocation)
	}
	return bestID, nil
}

// InRadius returns the IDs of bridges within radius kilometres of (lat, lon),
// boundary included. Bridges without a location are never returned.
func (s *Store) InRadius(lat, lon, radius float64) []int {
	candidates, indexed := s.index.Candidates(lat, lon, radius)

	ids := []int{}
	for _, r := range s.records {
		if r.Location == nil {
			continue
		}
		if indexed {
			if _, ok := candidates[r.ID]; !ok {
				continue
			}
		}
		if geo.Distance(r.Location.Lat, r.Location.Lon, lat, lon) <= radius {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// WithBCIBelowOrEqual returns the IDs among ids whose most recent BCI is at
// most limit. IDs not in the store are ignored. A matching bridge with an
// empty history is an error.
func (s *Store) WithBCIBelowOrEqual(ids []int, limit float64) ([]int, error) {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := []int{}
	for _, r := range s.records {
		if _, ok := wanted[r.ID]; !ok {
			continue
		}
		bci, err := r.LatestBCI()
		if err != nil {
			return nil, fmt.Errorf("bridge %d: %w", r.ID, err)
		}
		if bci <= limit {
			out = append(out, r.ID)
		}
	}
	return out, nil
}

// Containing returns the IDs of bridges whose name contains search,
// ignoring case.
func (s *Store) Containing(search string) []int {
	needle := strings.ToLower(search)
	ids := []int{}
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// LogInspection records a new inspection on every bridge in ids: the date
// becomes the last inspection date and bci becomes the newest history entry.
func (s *Store) LogInspection(ids []int, date string, bci float64) {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for i := range s.records {
		r := &s.records[i]
		if _, ok := wanted[r.ID]; !ok {
			continue
		}
		r.LastInspectionDate = date
		r.BCIHistory = append([]float64{bci}, r.BCIHistory...)
	}
}

// LogRehab stores the year of a rehab (the last four characters of date) as
// the bridge's last major or minor rehab. Unknown IDs are ignored.
func (s *Store) LogRehab(id int, date string, major bool) {
	r := s.find(id)
	if r == nil {
		return
	}
	year := date
	if len(year) > 4 {
		year = year[len(year)-4:]
	}
	if major {
		r.LastMajorRehab = year
	} else {
		r.LastMinorRehab = year
	}
}
