package output

import (
	"bytes"
	"io"
	"sync"
)

// LineWriter is a line-buffered io.Writer that runs every complete line
// through a Formatter. Log chunks arrive at arbitrary byte offsets, so a
// partial line is held until its newline shows up or Flush is called.
type LineWriter struct {
	mu        sync.Mutex
	w         io.Writer
	formatter Formatter
	buf       []byte
	lines     int
}

// NewLineWriter creates a writer that formats lines with f before writing
// them to w. A nil formatter passes lines through.
func NewLineWriter(w io.Writer, f Formatter) *LineWriter {
	if f == nil {
		f = NewPassthroughFormatter()
	}
	return &LineWriter{w: w, formatter: f}
}

// Write buffers data and writes complete lines.
func (lw *LineWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	n = len(p)
	lw.buf = append(lw.buf, p...)

	for {
		idx := bytes.IndexByte(lw.buf, '\n')
		if idx < 0 {
			break
		}
		line := string(bytes.TrimSuffix(lw.buf[:idx], []byte{'\r'}))
		lw.buf = lw.buf[idx+1:]
		if err := lw.writeLine(line); err != nil {
			return n, err
		}
	}

	return n, nil
}

// Flush writes any remaining buffered content as a final line.
func (lw *LineWriter) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if len(lw.buf) == 0 {
		return nil
	}
	line := string(lw.buf)
	lw.buf = nil
	return lw.writeLine(line)
}

// Lines returns the number of lines written so far.
func (lw *LineWriter) Lines() int {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.lines
}

func (lw *LineWriter) writeLine(line string) error {
	lw.lines++
	_, err := io.WriteString(lw.w, lw.formatter.ProcessLine(line)+"\n")
	return err
}
