// Package screens holds one view per feature area. Every screen follows the
// same shape: fetch, render, optionally mutate, then re-fetch or patch its
// local list. Failures surface as transient notices and never clear state
// that already rendered.
package screens

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

// UI is where a screen talks to the terminal. Tables and detail views go to
// Out; transient notices (the toast analog) go to Err so piped output stays
// clean.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func NewUI() *UI {
	return &UI{Out: os.Stdout, Err: os.Stderr}
}

func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.Out, format, args...)
}

// Notify prints a non-blocking notice.
func (u *UI) Notify(format string, args ...any) {
	fmt.Fprintf(u.Err, format+"\n", args...)
}

// NotifyError reports a failed action without aborting the screen.
func (u *UI) NotifyError(format string, args ...any) {
	fmt.Fprintf(u.Err, "error: "+format+"\n", args...)
}

// table writes aligned columns to Out.
func (u *UI) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(u.Out, 0, 4, 2, ' ', 0)
	printRow(w, header)
	for _, row := range rows {
		printRow(w, row)
	}
	_ = w.Flush()
}

func printRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// formatClock renders elapsed seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
