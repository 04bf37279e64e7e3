// Package render turns result lists into terminal text.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"sleepcalc/internal/cycle"
)

// Label describes the sleep an entry gives, e.g. "7.5 hours (5 cycles)".
func Label(e cycle.Entry) string {
	unit := "cycles"
	if e.Cycles == 1 {
		unit = "cycle"
	}
	return fmt.Sprintf("%s hours (%d %s)", e.Hours, e.Cycles, unit)
}

// Table writes a heading and one row per entry. Recommended rows are
// highlighted when colorize is set.
func Table(w io.Writer, heading string, entries []cycle.Entry, colorize bool) error {
	title := color.New(color.Bold)
	rec := color.New(color.FgGreen, color.Bold)
	dim := color.New(color.FgHiBlack)
	for _, c := range []*color.Color{title, rec, dim} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if _, err := title.Fprintln(w, heading); err != nil {
		return err
	}
	for _, e := range entries {
		var err error
		label := fmt.Sprintf("  %-22s", Label(e))
		if e.Recommended {
			_, err = fmt.Fprintf(w, "%s %s\n", label, rec.Sprintf("%8s  *", e.Display))
		} else {
			_, err = fmt.Fprintf(w, "%s %s\n", label, dim.Sprintf("%8s", e.Display))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Result is the JSON form of a calculation.
type Result struct {
	Mode    cycle.Mode    `json:"mode"`
	Input   string        `json:"input"`
	Heading string        `json:"heading"`
	Entries []cycle.Entry `json:"entries"`
}

func NewResult(mode cycle.Mode, at cycle.Clock, entries []cycle.Entry) Result {
	return Result{Mode: mode, Input: at.String(), Heading: mode.Heading(), Entries: entries}
}

// JSON writes r indented.
func JSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
