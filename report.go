package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

const failedListingLimit = 10

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// saveMapping writes outcomes as indented JSON keyed by original URL. Errors
// are logged only.
func saveMapping(outcomes Outcomes, path string) bool {
	f, err := os.Create(path)
	if err != nil {
		slog.Warn("mappingSave", "file", path, "error", err)
		return false
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(outcomes); err != nil {
		f.Close()
		slog.Warn("mappingSave", "file", path, "error", err)
		return false
	}

	if err := f.Close(); err != nil {
		slog.Warn("mappingSave", "file", path, "error", err)
		return false
	}

	slog.Info("mappingSave", "file", path, "entries", len(outcomes), "status", "saved")
	return true
}

func printSummary(w io.Writer, outcomes Outcomes) {
	t := outcomes.tally()
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, bold("MIGRATION SUMMARY"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total images processed:   %d\n", t.total)
	fmt.Fprintf(w, "%s  %d\n", green("Successfully uploaded:  "), t.success)
	fmt.Fprintf(w, "%s  %d\n", yellow("Skipped (existing):     "), t.skipped)
	fmt.Fprintf(w, "%s  %d\n", red("Download failed:        "), t.downloadFailed)
	fmt.Fprintf(w, "%s  %d\n", red("Upload failed:          "), t.uploadFailed)
	fmt.Fprintf(w, "%s  %d\n", yellow("Other errors:           "), t.errors)
	fmt.Fprintln(w, rule)

	failed := failedURLs(outcomes)
	if len(failed) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, red("Failed images:"))
	for _, u := range failed[:min(len(failed), failedListingLimit)] {
		o := outcomes[u]
		detail := o.Error
		if detail == "" {
			detail = "N/A"
		}
		fmt.Fprintf(w, "  - %s\n", u)
		fmt.Fprintf(w, "    Status: %s, Error: %s\n", o.Status, detail)
	}
	if len(failed) > failedListingLimit {
		fmt.Fprintf(w, "  ... and %d more (see mapping file for details)\n", len(failed)-failedListingLimit)
	}
}

func failedURLs(outcomes Outcomes) []string {
	var failed []string
	for u, o := range outcomes {
		if o.failed() {
			failed = append(failed, u)
		}
	}
	sort.Strings(failed)
	return failed
}
