package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Positional columns of the raw export. See the package documentation.
const (
	colName           = 1
	colHighway        = 2
	colLat            = 3
	colLon            = 4
	colYearBuilt      = 5
	colLastMajor      = 6
	colLastMinor      = 7
	colNumSpans       = 8
	colSpanDetails    = 9
	colLength         = 10
	colLastInspection = 11
	colBCIHistory     = 13

	// minFields covers every fixed column up to the inspection date; the
	// current-BCI column and the history tail may be absent.
	minFields = colLastInspection + 1
)

// NormalizeBatch converts raw rows into records, assigning each its 1-based
// position as ID. The first malformed row aborts the batch.
func NormalizeBatch(rows []RawRow) ([]BridgeRecord, error) {
	records := make([]BridgeRecord, 0, len(rows))
	for i, raw := range rows {
		rec, err := NormalizeRow(IDForPosition(i), raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// IDForPosition maps a 0-based position in the batch to a bridge ID. IDs
// start at 1: the first data row is bridge 1, matching the reference data.
func IDForPosition(i int) int {
	return i + 1
}

// NormalizeRow converts one raw row into a typed record with the given ID.
// The raw row is not modified.
func NormalizeRow(id int, raw RawRow) (BridgeRecord, error) {
	f := raw.Fields
	if len(f) < minFields {
		return BridgeRecord{}, rowError(raw, "expected at least %d columns, got %d", minFields, len(f))
	}

	rec := BridgeRecord{
		ID:                 id,
		Name:               f[colName],
		Highway:            f[colHighway],
		YearBuilt:          f[colYearBuilt],
		LastMajorRehab:     f[colLastMajor],
		LastMinorRehab:     f[colLastMinor],
		LastInspectionDate: f[colLastInspection],
	}

	loc, err := parseLocation(f[colLat], f[colLon])
	if err != nil {
		return BridgeRecord{}, rowError(raw, "location: %v", err)
	}
	rec.Location = loc

	spans, err := parseSpanLengths(f[colSpanDetails])
	if err != nil {
		return BridgeRecord{}, rowError(raw, "span details: %v", err)
	}
	rec.SpanLengths = spans

	length, err := parseFloat(f[colLength])
	if err != nil {
		return BridgeRecord{}, rowError(raw, "total length: %v", err)
	}
	rec.TotalLength = length

	history, err := parseBCIHistory(tail(f, colBCIHistory))
	if err != nil {
		return BridgeRecord{}, rowError(raw, "bci history: %v", err)
	}
	rec.BCIHistory = history

	numSpans, err := strconv.Atoi(strings.TrimSpace(f[colNumSpans]))
	if err != nil {
		return BridgeRecord{}, rowError(raw, "number of spans: %v", err)
	}
	rec.NumSpans = numSpans

	if len(rec.SpanLengths) != rec.NumSpans {
		return BridgeRecord{}, rowError(raw, "%d span lengths for %d spans", len(rec.SpanLengths), rec.NumSpans)
	}

	return rec, nil
}

func rowError(raw RawRow, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", raw.Line, ErrMalformedRow, fmt.Sprintf(format, args...))
}

// parseLocation parses a coordinate pair only when both cells are non-empty.
func parseLocation(lat, lon string) (*Location, error) {
	if lat == "" || lon == "" {
		return nil, nil
	}
	la, err := parseFloat(lat)
	if err != nil {
		return nil, err
	}
	lo, err := parseFloat(lon)
	if err != nil {
		return nil, err
	}
	return &Location{Lat: la, Lon: lo}, nil
}

// parseSpanLengths reads "Total=64  (1)=12;(2)=19;" into [12 19]. The token
// before the first space is discarded.
func parseSpanLengths(details string) ([]float64, error) {
	_, rest, ok := strings.Cut(details, " ")
	if !ok {
		return nil, fmt.Errorf("no span list in %q", details)
	}

	lengths := []float64{}
	for _, piece := range strings.Split(rest, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		_, value, ok := strings.Cut(piece, "=")
		if !ok {
			return nil, fmt.Errorf("span %q has no length", piece)
		}
		v, err := parseFloat(value)
		if err != nil {
			return nil, err
		}
		lengths = append(lengths, v)
	}
	return lengths, nil
}

// parseBCIHistory drops empty cells and parses the rest in order.
func parseBCIHistory(cells []string) ([]float64, error) {
	history := []float64{}
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		v, err := parseFloat(cell)
		if err != nil {
			return nil, err
		}
		history = append(history, v)
	}
	return history, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func tail(fields []string, from int) []string {
	if from >= len(fields) {
		return nil
	}
	return fields[from:]
}
