package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/gumcrawl/gumcrawl/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeItems(md, result)
	w.writeFailures(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.Result) {
	md.H1("Gumcrawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Search", "`" + result.SeedURL + "`"},
			{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", result.Elapsed.String()},
			{"Listing Pages", strconv.Itoa(result.Pages)},
			{"Items Parsed", strconv.Itoa(len(result.Items))},
			{"Failures", strconv.Itoa(len(result.Failures))},
		},
	})
	md.PlainText("")
}

// writeItems writes the parsed items table.
func (w *MarkdownWriter) writeItems(md *markdown.Markdown, result *model.Result) {
	md.H2("Items")
	md.PlainText("")

	if len(result.Items) == 0 {
		md.PlainText("No items were parsed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		price := item.Price
		if !item.HasPrice() {
			price = "-"
		} else if item.Negotiable {
			price += " (negotiable)"
		}
		rows = append(rows, []string{
			item.ID,
			"[" + item.Title + "](" + item.URL + ")",
			price,
			item.Location,
			item.Seller.Name,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Title", "Price", "Location", "Seller"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the failures table, grouped by kind ordering in the result.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, result *model.Result) {
	md.H2("Failures")
	md.PlainText("")

	if len(result.Failures) == 0 {
		md.PlainText("No failures occurred.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		rows = append(rows, []string{
			string(f.Kind),
			"`" + f.URL + "`",
			f.Message,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "URL", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}
