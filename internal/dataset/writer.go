// Package dataset writes training examples as line-delimited JSON and
// orchestrates the render-and-write pass over a corpus.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kxstack/anomaly-trainset/internal/models"
)

// Writer emits one JSON object per line. Key order follows the
// TrainingExample struct (instruction, input, output) and HTML escaping is
// off so the text survives byte-for-byte.
type Writer struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewWriter wraps w for line-delimited JSON output.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &Writer{buf: buf, enc: enc}
}

// Write appends one example as a single line. Nothing is written on encode
// failure: a partial line would corrupt the file for every later reader.
func (w *Writer) Write(example models.TrainingExample) error {
	// Encode terminates the line with '\n'.
	if err := w.enc.Encode(example); err != nil {
		return fmt.Errorf("encode example: %w", err)
	}
	return nil
}

// Flush pushes buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}
