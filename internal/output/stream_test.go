package output

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upper is a formatter that makes processing visible.
type upper struct{}

func (upper) Name() string                  { return "upper" }
func (upper) ProcessLine(line string) string { return strings.ToUpper(line) }

func TestLineWriter(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, nil)

	_, err := lw.Write([]byte("partial"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = lw.Write([]byte(" line\n"))
	require.NoError(t, err)
	assert.Equal(t, "partial line\n", buf.String())
	assert.Equal(t, 1, lw.Lines())
}

func TestLineWriterMultipleLines(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, upper{})

	input := []byte("one\ntwo\r\nthr")
	n, err := lw.Write(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, "ONE\nTWO\n", buf.String())

	_, err = lw.Write([]byte("ee\n"))
	require.NoError(t, err)
	assert.Equal(t, "ONE\nTWO\nTHREE\n", buf.String())
	assert.Equal(t, 3, lw.Lines())
}

func TestLineWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, nil)

	_, err := lw.Write([]byte("no newline"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	require.NoError(t, lw.Flush())
	assert.Equal(t, "no newline\n", buf.String())
}

func TestLineWriterFlushEmpty(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, nil)

	require.NoError(t, lw.Flush())
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, lw.Lines())
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLineWriterPropagatesErrors(t *testing.T) {
	lw := NewLineWriter(brokenWriter{}, nil)

	_, err := lw.Write([]byte("line\n"))
	assert.Error(t, err)
}

func TestLineWriterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = lw.Write([]byte("line\n"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, lw.Lines())
	assert.Equal(t, 100, strings.Count(buf.String(), "line\n"))
}

func TestANSIPassthrough(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, NewPassthroughFormatter())

	ansiLine := "\033[31mRed text\033[0m\n"
	_, err := lw.Write([]byte(ansiLine))
	require.NoError(t, err)
	assert.Equal(t, ansiLine, buf.String())
}
