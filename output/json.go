package output

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/linqcat/linq"
)

// JSONLinesFormatter writes one JSON value per line
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a new JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLinesFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each item of the result on its own line
func (j *JSONLinesFormatter) Format(v linq.Value) error {
	encoder := json.NewEncoder(j.writer)
	encoder.SetEscapeHTML(false)
	for _, item := range items(v) {
		if err := encoder.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter writes the whole result as one indented JSON document
type JSONFormatter struct {
	writer io.Writer
	indent string
}

// NewJSONFormatter creates a new JSON formatter indenting with two spaces
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: "  "}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the result. An empty list is written as [].
func (j *JSONFormatter) Format(v linq.Value) error {
	if list, ok := v.(linq.List); ok && list == nil {
		v = linq.List{}
	}

	encoder := json.NewEncoder(j.writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", j.indent)
	return encoder.Encode(v)
}
