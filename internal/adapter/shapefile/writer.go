// Package shapefile exports inspector assignments as an ESRI point shapefile
// so a plan can be opened in desktop GIS tools.
package shapefile

import (
	"fmt"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/planner"
	shp "github.com/jonas-p/go-shp"
)

// Attribute columns, in write order.
const (
	fieldID = iota
	fieldName
	fieldHighway
	fieldInspector
	fieldTier
	fieldBCI
)

const nameWidth = 80

// RecordLookup resolves bridge IDs to records.
type RecordLookup interface {
	FindByID(id int) (domain.BridgeRecord, bool)
}

// WriteAssignments writes one point per assigned bridge to path (and its
// .shx/.dbf siblings). INSPECTOR is the 0-based inspector position.
// Bridges without a location are skipped. It returns the number of points
// written.
func WriteAssignments(path string, result planner.Result, lookup RecordLookup) (int, error) {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return 0, fmt.Errorf("create shapefile %s: %w", path, err)
	}
	defer w.Close()

	err = w.SetFields([]shp.Field{
		shp.NumberField("ID", 10),
		shp.StringField("NAME", nameWidth),
		shp.StringField("HIGHWAY", 20),
		shp.NumberField("INSPECTOR", 6),
		shp.StringField("TIER", 8),
		shp.FloatField("BCI", 8, 1),
	})
	if err != nil {
		return 0, fmt.Errorf("set shapefile fields: %w", err)
	}

	written := 0
	for i, a := range result.Inspectors {
		for _, b := range a.Bridges {
			rec, ok := lookup.FindByID(b.ID)
			if !ok {
				return written, fmt.Errorf("bridge %d: %w", b.ID, domain.ErrNotFound)
			}
			if rec.Location == nil {
				continue
			}
			bci, err := rec.LatestBCI()
			if err != nil {
				return written, fmt.Errorf("bridge %d: %w", b.ID, err)
			}

			row := int(w.Write(&shp.Point{X: rec.Location.Lon, Y: rec.Location.Lat}))
			attrs := []struct {
				field int
				value any
			}{
				{fieldID, rec.ID},
				{fieldName, truncate(rec.Name, nameWidth)},
				{fieldHighway, rec.Highway},
				{fieldInspector, i},
				{fieldTier, b.Tier.String()},
				{fieldBCI, bci},
			}
			for _, attr := range attrs {
				if err := w.WriteAttribute(row, attr.field, attr.value); err != nil {
					return written, fmt.Errorf("write attribute %d of bridge %d: %w", attr.field, rec.ID, err)
				}
			}
			written++
		}
	}
	return written, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
