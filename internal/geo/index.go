package geo

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

const (
	// kmPerDegree is the length of one degree of arc on the reference sphere.
	kmPerDegree = 2 * math.Pi * EarthRadiusKm / 360

	// pointExtent gives each stored point a non-degenerate rectangle, which
	// rtreego requires.
	pointExtent = 1e-7

	// searchSlackKm widens the search box so points that round down onto the
	// radius boundary are still returned as candidates.
	searchSlackKm = 0.001
)

// point is a bridge coordinate stored in the tree as a tiny rectangle.
type point struct {
	id   int
	rect rtreego.Rect
}

func (p *point) Bounds() rtreego.Rect {
	return p.rect
}

// Index is an R-tree over (lon, lat) points keyed by bridge ID. It narrows
// radius searches to a bounding box; callers still check exact distances.
type Index struct {
	tree *rtreego.Rtree
	size int

	// unbounded holds points outside [-90,90] x [-180,180]. A search box
	// cannot place them, so they are candidates for every search.
	unbounded map[int]struct{}
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	// dim = 2 (lon, lat), min children 25, max children 50
	return &Index{
		tree:      rtreego.NewTree(2, 25, 50),
		unbounded: map[int]struct{}{},
	}
}

// Insert adds a point. Coordinates outside the valid range (or not finite)
// are kept aside and returned by every non-empty search.
func (ix *Index) Insert(id int, lat, lon float64) {
	ix.size++
	if !inRange(lat, lon) {
		ix.unbounded[id] = struct{}{}
		return
	}
	rect, err := rtreego.NewRect(rtreego.Point{lon, lat}, []float64{pointExtent, pointExtent})
	if err != nil {
		ix.unbounded[id] = struct{}{}
		return
	}
	ix.tree.Insert(&point{id: id, rect: rect})
}

func inRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Size returns the number of indexed points.
func (ix *Index) Size() int {
	return ix.size
}

// Candidates returns the IDs whose coordinates lie in a box that contains
// every point within radiusKm of (lat, lon). The boolean is false when no
// such box can be expressed without wrapping (near a pole, across the
// antimeridian, or for very large radii); the caller must then scan all points.
func (ix *Index) Candidates(lat, lon, radiusKm float64) (map[int]struct{}, bool) {
	if radiusKm < 0 {
		return map[int]struct{}{}, true
	}

	r := radiusKm + searchSlackKm
	dLat := r / kmPerDegree
	if lat-dLat <= -90 || lat+dLat >= 90 {
		return nil, false
	}

	// Widest longitude offset of the circle at the query latitude.
	s := math.Sin(r/EarthRadiusKm) / math.Cos(lat*math.Pi/180)
	if s >= 1 {
		return nil, false
	}
	dLon := math.Asin(s) * 180 / math.Pi
	if lon-dLon <= -180 || lon+dLon >= 180 {
		return nil, false
	}

	box, err := rtreego.NewRect(
		rtreego.Point{lon - dLon, lat - dLat},
		[]float64{2*dLon + pointExtent, 2*dLat + pointExtent},
	)
	if err != nil {
		return nil, false
	}

	hits := ix.tree.SearchIntersect(box)
	out := make(map[int]struct{}, len(hits)+len(ix.unbounded))
	for _, h := range hits {
		out[h.(*point).id] = struct{}{}
	}
	for id := range ix.unbounded {
		out[id] = struct{}{}
	}
	return out, true
}
