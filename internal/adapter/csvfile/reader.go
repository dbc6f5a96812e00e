// Package csvfile reads the bridge conditions CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
)

// DefaultHeaderRows is the number of title/header lines before the data.
const DefaultHeaderRows = 2

// Extractor reads raw rows from a CSV file on disk.
// It implements pipeline.RowExtractor.
type Extractor struct {
	path       string
	headerRows int
}

// NewExtractor creates an Extractor for path that skips headerRows lines.
func NewExtractor(path string, headerRows int) *Extractor {
	return &Extractor{path: path, headerRows: headerRows}
}

// ExtractRows opens the file and reads every data row.
func (e *Extractor) ExtractRows(ctx context.Context) ([]domain.RawRow, error) {
	f, err := os.Open(e.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", e.path, err)
	}
	defer f.Close()

	rows, err := ReadRows(ctx, f, e.headerRows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", e.path, err)
	}
	return rows, nil
}

// ReadRows parses CSV from r, dropping the first skip records. Rows may have
// different widths; the BCI history tail is ragged.
func ReadRows(ctx context.Context, r io.Reader, skip int) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	var rows []domain.RawRow
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n < skip {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, domain.RawRow{Line: line, Fields: record})
	}
	return rows, nil
}
