package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/coursecheck/internal/lint"
)

type styles struct {
	ok   lipgloss.Style
	fail lipgloss.Style
	warn lipgloss.Style
	dim  lipgloss.Style
}

// newStyles binds styles to w so that colour is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		fail: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		warn: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		dim:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

func renderReport(w io.Writer, rep *lint.Report) {
	st := newStyles(w)
	if rep.LoadError != "" {
		fmt.Fprintf(w, "%s loading course structure: %s\n", st.fail.Render("FAIL"), rep.LoadError)
	}
	for _, v := range rep.Structure {
		fmt.Fprintf(w, "%s %s\n", st.fail.Render("FAIL"), v.String())
	}
	writeFileLines(w, st, rep.Files)

	summary := fmt.Sprintf("%d lessons checked, %d failed, %d structure violations, %d warnings",
		rep.FilesTotal, rep.FilesBad, len(rep.Structure), rep.Warnings)
	if rep.OK() {
		fmt.Fprintf(w, "%s %s\n", st.ok.Render("OK"), st.dim.Render(summary))
	} else {
		fmt.Fprintf(w, "%s %s\n", st.fail.Render("FAILED"), st.dim.Render(summary))
	}
}

func renderFiles(w io.Writer, results []lint.FileResult) {
	st := newStyles(w)
	writeFileLines(w, st, results)
	bad := 0
	for _, r := range results {
		if !r.OK() {
			bad++
		}
	}
	summary := fmt.Sprintf("%d lessons checked, %d failed", len(results), bad)
	if bad == 0 {
		fmt.Fprintf(w, "%s %s\n", st.ok.Render("OK"), st.dim.Render(summary))
	} else {
		fmt.Fprintf(w, "%s %s\n", st.fail.Render("FAILED"), st.dim.Render(summary))
	}
}

func writeFileLines(w io.Writer, st styles, results []lint.FileResult) {
	for _, r := range results {
		if !r.OK() {
			fmt.Fprintf(w, "%s %s\n", st.fail.Render("FAIL"), r.Message())
		}
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "%s lesson file '%s': %s\n", st.warn.Render("WARN"), r.Path, warn.String())
		}
	}
}
