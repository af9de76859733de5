package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/diag"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	locColor     = color.New(color.Faint)
)

func configureColor(cmd *cobra.Command) {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		// fatih/color already auto-detects; just force off for pipes
		if !isTerminal(os.Stdout) {
			color.NoColor = true
		}
	}
}

// renderBag prints accumulated diagnostics with source context, sorted and
// deduplicated for a stable order.
func renderBag(w io.Writer, fset *source.FileSet, bag *diag.Bag) {
	if bag == nil {
		return
	}
	bag.Sort()
	bag.Dedup()
	for _, d := range bag.Items() {
		renderDiagnostic(w, fset, d)
	}
}

func renderDiagnostic(w io.Writer, fset *source.FileSet, d diag.Diagnostic) {
	sev := infoColor
	switch d.Severity {
	case diag.SevError:
		sev = errorColor
	case diag.SevWarning:
		sev = warningColor
	}

	if fset == nil || int(d.Primary.File) >= fset.Len() {
		fmt.Fprintf(w, "%s[%s]: %s\n", sev.Sprint(strings.ToLower(d.Severity.String())), d.Code, d.Message)
		return
	}
	file := fset.Get(d.Primary.File)
	start, _ := fset.Resolve(d.Primary)
	fmt.Fprintf(w, "%s %s[%s]: %s\n",
		locColor.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col),
		sev.Sprint(strings.ToLower(d.Severity.String())), d.Code, d.Message)
	if line := file.GetLine(start.Line); line != "" {
		fmt.Fprintf(w, "    %s\n", line)
		if start.Col > 0 {
			fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", int(start.Col-1)), sev.Sprint("^"))
		}
	}
	for _, note := range d.Notes {
		noteStart, _ := fset.Resolve(note.Span)
		fmt.Fprintf(w, "  %s note: %s\n",
			locColor.Sprintf("%s:%d:%d", fset.Get(note.Span.File).Path, noteStart.Line, noteStart.Col),
			note.Msg)
	}
}
