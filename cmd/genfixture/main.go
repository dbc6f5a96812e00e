// Command genfixture normalizes a bridge conditions CSV export and writes the
// cleaned records as a JSON fixture. It uses the same domain package as the
// loader so the fixture matches real pipeline output.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -csv data/2015_bridge_conditions.csv \
//	  -out internal/domain/testdata/bridges.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/bridge-inspection/internal/adapter/csvfile"
	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/planner"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "bridge conditions CSV export")
	headerRows := flag.Int("header-rows", csvfile.DefaultHeaderRows, "lines to skip before the data")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *csvPath == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -out")
	}

	rows, err := csvfile.NewExtractor(*csvPath, *headerRows).ExtractRows(context.Background())
	if err != nil {
		return err
	}
	log.Printf("read %d rows", len(rows))

	records, err := domain.NormalizeBatch(rows)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	if err := writeJSON(*out, records); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(records)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	located    int
	noHistory  int
	tierCounts map[string]int
	highways   map[string]int
}

func collectStats(records []domain.BridgeRecord) statsResult {
	th := planner.DefaultThresholds()
	s := statsResult{
		tierCounts: map[string]int{},
		highways:   map[string]int{},
	}
	for i := range records {
		r := &records[i]
		s.highways[r.Highway]++
		if r.Location != nil {
			s.located++
		}
		bci, err := r.LatestBCI()
		if err != nil {
			s.noHistory++
			continue
		}
		switch {
		case bci <= th.HighBCI:
			s.tierCounts[planner.TierHigh.String()]++
		case bci <= th.MediumBCI:
			s.tierCounts[planner.TierMedium.String()]++
		case bci <= th.LowBCI:
			s.tierCounts[planner.TierLow.String()]++
		default:
			s.tierCounts["above"]++
		}
	}
	return s
}

type highwayCount struct {
	highway string
	count   int
}

func printStats(records []domain.BridgeRecord) {
	stats := collectStats(records)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(records))
	fmt.Printf("Located: %d\n", stats.located)
	fmt.Printf("Without BCI history: %d\n", stats.noHistory)
	fmt.Printf("By latest BCI tier: high=%d, medium=%d, low=%d, above=%d\n",
		stats.tierCounts["high"], stats.tierCounts["medium"], stats.tierCounts["low"], stats.tierCounts["above"])

	hc := make([]highwayCount, 0, len(stats.highways))
	for h, c := range stats.highways {
		hc = append(hc, highwayCount{h, c})
	}
	sort.Slice(hc, func(i, j int) bool {
		if hc[i].count != hc[j].count {
			return hc[i].count > hc[j].count
		}
		return hc[i].highway < hc[j].highway
	})
	fmt.Printf("Highways (%d), top 5:", len(hc))
	for _, h := range hc[:min(5, len(hc))] {
		fmt.Printf(" %s=%d", h.highway, h.count)
	}
	fmt.Println()
}
