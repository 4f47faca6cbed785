package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gumcrawl/gumcrawl/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose includes every item line rather than just the counts.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-item detail lines.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         GUMCRAWL RESULT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Search:         %s\n", result.SeedURL)
	fmt.Fprintf(&sb, "Started:        %s\n", result.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "Elapsed:        %s\n", result.Elapsed.Round(10*time.Millisecond))
	fmt.Fprintf(&sb, "Listing Pages:  %d\n", result.Pages)
	fmt.Fprintf(&sb, "Items Parsed:   %d\n", len(result.Items))
	fmt.Fprintf(&sb, "Failures:       %d\n\n", len(result.Failures))

	if w.verbose && len(result.Items) > 0 {
		sb.WriteString("ITEMS\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		for _, item := range result.Items {
			price := item.Price
			if !item.HasPrice() {
				price = "-"
			}
			fmt.Fprintf(&sb, "  %-12s %-9s %s\n", item.ID, price, item.Title)
		}
		sb.WriteString("\n")
	}

	if len(result.Failures) > 0 {
		sb.WriteString("FAILURES\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		for _, f := range result.Failures {
			fmt.Fprintf(&sb, "  [%s] %s\n      %s\n", f.Kind, f.URL, f.Message)
		}
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}
