package report

import (
	"encoding/json"
	"io"

	"github.com/gumcrawl/gumcrawl/internal/model"
)

// JSONWriter outputs results in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	indent  bool
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion embeds the generating tool version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonReport wraps the result with output metadata, keeping
// output-specific fields out of the core model.
type jsonReport struct {
	Version string        `json:"version,omitempty"`
	Result  *model.Result `json:"result"`
}

// Write outputs the result in JSON format.
func (w *JSONWriter) Write(result *model.Result) (int, error) {
	wrapped := jsonReport{Version: w.version, Result: result}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(wrapped, "", "  ")
	} else {
		data, err = json.Marshal(wrapped)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}
