package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/couchcryptid/bridge-inspection/internal/adapter/shapefile"
	"github.com/couchcryptid/bridge-inspection/internal/config"
	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/observability"
	"github.com/couchcryptid/bridge-inspection/internal/planner"
	"github.com/couchcryptid/bridge-inspection/internal/store"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage")

type app struct {
	cfg     *config.Config
	store   *store.Store
	logger  *slog.Logger
	metrics *observability.Metrics
	out     *printer
	stderr  io.Writer
}

type command struct {
	run   func(a *app, args []string) error
	usage string
}

var commands = map[string]command{
	"assign":   {(*app).assign, "plan inspector assignments"},
	"show":     {(*app).show, "print one bridge record"},
	"average":  {(*app).average, "average BCI of a bridge"},
	"highway":  {(*app).highway, "total bridge length on a highway"},
	"distance": {(*app).distance, "distance between two bridges"},
	"closest":  {(*app).closest, "nearest other bridge"},
	"radius":   {(*app).radius, "bridges within a radius of a point"},
	"below":    {(*app).below, "bridges whose latest BCI is at most a limit"},
	"search":   {(*app).search, "bridges whose name contains a string"},
	"inspect":  {(*app).inspect, "log an inspection (in memory) and print the result"},
	"rehab":    {(*app).rehab, "log a rehab (in memory) and print the result"},
}

// dispatch runs the named subcommand, defaulting to assign, and returns the
// process exit code.
func (a *app) dispatch(args []string) int {
	name := "assign"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n\n", name)
		a.usage()
		return exitUsage
	}

	err := cmd.run(a, args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return exitUsage
	default:
		a.logger.Error("command failed", "command", name, "error", err)
		return exitFailure
	}
}

func (a *app) usage() {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintln(a.stderr, "commands:")
	for _, n := range names {
		fmt.Fprintf(a.stderr, "  %-9s %s\n", n, commands[n].usage)
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return errUsage
	}
	return nil
}

// requireFlags fails when any of the named flags was not given.
func requireFlags(fs *flag.FlagSet, names ...string) error {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	for _, n := range names {
		if !seen[n] {
			fmt.Fprintf(fs.Output(), "-%s is required\n", n)
			fs.Usage()
			return errUsage
		}
	}
	return nil
}

func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bridge id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *app) assign(args []string) error {
	fs := a.flagSet("assign")
	inspectors := fs.String("inspectors", "", `inspector locations "lat,lon;lat,lon" (default INSPECTORS)`)
	maxPer := fs.Int("max", a.cfg.MaxPerInspector, "maximum bridges per inspector")
	shpOut := fs.String("shapefile", a.cfg.ShapefileOut, "also write the plan as a point shapefile")
	if err := parse(fs, args); err != nil {
		return err
	}

	locs := a.cfg.Inspectors
	if *inspectors != "" {
		var err error
		if locs, err = config.ParseInspectors(*inspectors); err != nil {
			return fmt.Errorf("invalid -inspectors: %w", err)
		}
	}
	if len(locs) == 0 {
		fmt.Fprintln(a.stderr, "no inspectors: set INSPECTORS or pass -inspectors")
		return errUsage
	}

	report, err := planner.New(a.store, a.cfg.Thresholds, a.logger, a.metrics).Plan(locs, *maxPer)
	if err != nil {
		return err
	}

	if *shpOut != "" {
		n, err := shapefile.WriteAssignments(*shpOut, report.Result, a.store)
		if err != nil {
			return err
		}
		a.logger.Info("assignment shapefile written", "path", *shpOut, "points", n)
	}

	return a.out.emit(report, func(w io.Writer) {
		row(w, "INSPECTOR", "LAT", "LON", "ID", "TIER", "BCI", "NAME")
		for i, insp := range report.Inspectors {
			if len(insp.Bridges) == 0 {
				row(w, i, num(insp.Inspector.Lat), num(insp.Inspector.Lon), "-", "-", "-", "-")
				continue
			}
			for _, b := range insp.Bridges {
				rec, _ := a.store.FindByID(b.ID)
				bci, _ := rec.LatestBCI()
				row(w, i, num(insp.Inspector.Lat), num(insp.Inspector.Lon), b.ID, b.Tier, num(bci), rec.Name)
			}
		}
	})
}

func (a *app) show(args []string) error {
	fs := a.flagSet("show")
	id := fs.Int("id", 0, "bridge ID")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	rec, ok := a.store.FindByID(*id)
	if !ok {
		return fmt.Errorf("bridge %d: %w", *id, domain.ErrNotFound)
	}
	return a.out.emit(rec, func(w io.Writer) {
		loc := "-"
		if rec.Location != nil {
			loc = num(rec.Location.Lat) + ", " + num(rec.Location.Lon)
		}
		row(w, "ID", rec.ID)
		row(w, "NAME", rec.Name)
		row(w, "HIGHWAY", rec.Highway)
		row(w, "LOCATION", loc)
		row(w, "BUILT", rec.YearBuilt)
		row(w, "MAJOR REHAB", rec.LastMajorRehab)
		row(w, "MINOR REHAB", rec.LastMinorRehab)
		row(w, "SPANS", rec.NumSpans)
		row(w, "SPAN LENGTHS", joinFloats(rec.SpanLengths))
		row(w, "TOTAL LENGTH", num(rec.TotalLength))
		row(w, "LAST INSPECTION", rec.LastInspectionDate)
		row(w, "BCI HISTORY", joinFloats(rec.BCIHistory))
	})
}

func (a *app) average(args []string) error {
	fs := a.flagSet("average")
	id := fs.Int("id", 0, "bridge ID")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	v := struct {
		ID         int     `json:"id"`
		AverageBCI float64 `json:"average_bci"`
	}{*id, a.store.AverageBCI(*id)}
	return a.out.emit(v, func(w io.Writer) {
		row(w, "ID", "AVERAGE BCI")
		row(w, v.ID, num(v.AverageBCI))
	})
}

func (a *app) highway(args []string) error {
	fs := a.flagSet("highway")
	name := fs.String("name", "", "highway name, matched exactly")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "name"); err != nil {
		return err
	}

	v := struct {
		Highway     string  `json:"highway"`
		TotalLength float64 `json:"total_length"`
	}{*name, a.store.TotalLengthOnHighway(*name)}
	return a.out.emit(v, func(w io.Writer) {
		row(w, "HIGHWAY", "TOTAL LENGTH")
		row(w, v.Highway, num(v.TotalLength))
	})
}

func (a *app) distance(args []string) error {
	fs := a.flagSet("distance")
	from := fs.Int("from", 0, "first bridge ID")
	to := fs.Int("to", 0, "second bridge ID")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "from", "to"); err != nil {
		return err
	}

	d, err := a.distanceKm(*from, *to)
	if err != nil {
		return err
	}
	v := struct {
		From       int     `json:"from"`
		To         int     `json:"to"`
		DistanceKm float64 `json:"distance_km"`
	}{*from, *to, d}
	return a.out.emit(v, func(w io.Writer) {
		row(w, "FROM", "TO", "KM")
		row(w, v.From, v.To, num(v.DistanceKm))
	})
}

func (a *app) distanceKm(from, to int) (float64, error) {
	ra, ok := a.store.FindByID(from)
	if !ok {
		return 0, fmt.Errorf("bridge %d: %w", from, domain.ErrNotFound)
	}
	rb, ok := a.store.FindByID(to)
	if !ok {
		return 0, fmt.Errorf("bridge %d: %w", to, domain.ErrNotFound)
	}
	return store.DistanceBetween(ra, rb)
}

func (a *app) closest(args []string) error {
	fs := a.flagSet("closest")
	id := fs.Int("id", 0, "bridge ID")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	nearest, err := a.store.Closest(*id)
	if err != nil {
		return err
	}
	d, err := a.distanceKm(*id, nearest)
	if err != nil {
		return err
	}
	v := struct {
		ID         int     `json:"id"`
		Closest    int     `json:"closest"`
		DistanceKm float64 `json:"distance_km"`
	}{*id, nearest, d}
	return a.out.emit(v, func(w io.Writer) {
		row(w, "ID", "CLOSEST", "KM")
		row(w, v.ID, v.Closest, num(v.DistanceKm))
	})
}

func (a *app) radius(args []string) error {
	fs := a.flagSet("radius")
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	km := fs.Float64("km", 0, "radius in kilometres")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "lat", "lon", "km"); err != nil {
		return err
	}
	return a.emitIDs(a.store.InRadius(*lat, *lon, *km))
}

func (a *app) below(args []string) error {
	fs := a.flagSet("below")
	idList := fs.String("ids", "", "comma-separated bridge IDs (default all)")
	limit := fs.Float64("limit", 0, "BCI limit, inclusive")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "limit"); err != nil {
		return err
	}

	ids, err := parseIDs(*idList)
	if err != nil {
		return err
	}
	if *idList == "" {
		for _, r := range a.store.Records() {
			ids = append(ids, r.ID)
		}
	}

	matched, err := a.store.WithBCIBelowOrEqual(ids, *limit)
	if err != nil {
		return err
	}
	return a.emitIDs(matched)
}

func (a *app) search(args []string) error {
	fs := a.flagSet("search")
	q := fs.String("q", "", "text to look for in bridge names, ignoring case")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "q"); err != nil {
		return err
	}
	return a.emitIDs(a.store.Containing(*q))
}

func (a *app) inspect(args []string) error {
	fs := a.flagSet("inspect")
	idList := fs.String("ids", "", "comma-separated bridge IDs")
	date := fs.String("date", "", "inspection date, MM/DD/YYYY")
	bci := fs.Float64("bci", 0, "measured BCI")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "ids", "date", "bci"); err != nil {
		return err
	}

	ids, err := parseIDs(*idList)
	if err != nil {
		return err
	}
	a.store.LogInspection(ids, *date, *bci)
	a.logger.Warn("inspection logged in memory only; the data file is unchanged", "bridges", len(ids))
	return a.emitIDs(ids)
}

func (a *app) rehab(args []string) error {
	fs := a.flagSet("rehab")
	id := fs.Int("id", 0, "bridge ID")
	date := fs.String("date", "", "rehab date; its last four characters are kept as the year")
	major := fs.Bool("major", false, "record a major rather than a minor rehab")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id", "date"); err != nil {
		return err
	}

	a.store.LogRehab(*id, *date, *major)
	a.logger.Warn("rehab logged in memory only; the data file is unchanged", "id", *id)
	return a.emitIDs([]int{*id})
}

// bridgeSummary is the per-bridge line of list results.
type bridgeSummary struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Highway   string   `json:"highway"`
	LatestBCI *float64 `json:"latest_bci,omitempty"`
	Inspected string   `json:"last_inspection_date"`
}

// emitIDs prints the bridges with the given IDs, in the given order. IDs not
// in the store are skipped.
func (a *app) emitIDs(ids []int) error {
	list := make([]bridgeSummary, 0, len(ids))
	for _, id := range ids {
		rec, ok := a.store.FindByID(id)
		if !ok {
			continue
		}
		s := bridgeSummary{ID: rec.ID, Name: rec.Name, Highway: rec.Highway, Inspected: rec.LastInspectionDate}
		if bci, err := rec.LatestBCI(); err == nil {
			s.LatestBCI = &bci
		}
		list = append(list, s)
	}

	return a.out.emit(list, func(w io.Writer) {
		row(w, "ID", "BCI", "HIGHWAY", "INSPECTED", "NAME")
		for _, s := range list {
			bci := "-"
			if s.LatestBCI != nil {
				bci = num(*s.LatestBCI)
			}
			row(w, s.ID, bci, s.Highway, s.Inspected, s.Name)
		}
	})
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = num(f)
	}
	return strings.Join(parts, " ")
}
