package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/bridge-inspection/internal/config"
	"golang.org/x/term"
)

// resolveFormat turns "auto" into a table on a terminal and JSON otherwise.
func resolveFormat(format string, f *os.File) string {
	if format != config.OutputAuto {
		return format
	}
	if term.IsTerminal(int(f.Fd())) {
		return config.OutputTable
	}
	return config.OutputJSON
}

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

// emit writes v as indented JSON, or calls table to render the aligned form.
func (p *printer) emit(v any, table func(tw io.Writer)) error {
	if p.format == config.OutputJSON {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func row(w io.Writer, cols ...any) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
