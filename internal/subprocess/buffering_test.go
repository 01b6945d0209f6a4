package subprocess

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wagiedev/gemini-mcp-go/internal/config"
)

// mockChunkReader delivers data in controlled chunks to simulate various buffering scenarios.
type mockChunkReader struct {
	chunks [][]byte
	index  int
}

func newMockChunkReader(chunks ...string) *mockChunkReader {
	byteChunks := make([][]byte, len(chunks))
	for i, chunk := range chunks {
		byteChunks[i] = []byte(chunk)
	}

	return &mockChunkReader{chunks: byteChunks}
}

func (r *mockChunkReader) Read(p []byte) (int, error) {
	if r.index >= len(r.chunks) {
		return 0, io.EOF
	}

	chunk := r.chunks[r.index]
	r.index++

	n := copy(p, chunk)

	return n, nil
}

// collectLines runs scanLines to completion and returns every line.
func collectLines(t *testing.T, reader io.Reader, maxLineSize int) []string {
	t.Helper()

	var lines []string

	err := scanLines(reader, maxLineSize, func(line string) bool {
		lines = append(lines, line)

		return true
	})
	require.NoError(t, err)

	return lines
}

// TestMultipleJSONObjectsInSingleRead tests lines delivered in one read.
func TestMultipleJSONObjectsInSingleRead(t *testing.T) {
	reader := newMockChunkReader(
		`{"type":"init","session_id":"s1"}` + "\n" + `{"type":"message","role":"assistant","content":"hi"}` + "\n",
	)

	lines := collectLines(t, reader, config.DefaultMaxLineSize)

	require.Equal(t, []string{
		`{"type":"init","session_id":"s1"}`,
		`{"type":"message","role":"assistant","content":"hi"}`,
	}, lines)
}

// TestSplitJSONAcrossMultipleReads tests a single line split across reads.
func TestSplitJSONAcrossMultipleReads(t *testing.T) {
	obj := map[string]any{
		"type":    "message",
		"role":    "assistant",
		"content": strings.Repeat("x", 1000),
	}

	data, err := json.Marshal(obj)
	require.NoError(t, err)

	data = append(data, '\n')

	reader := newMockChunkReader(string(data[:100]), string(data[100:250]), string(data[250:]))
	lines := collectLines(t, reader, config.DefaultMaxLineSize)

	require.Len(t, lines, 1)
	require.JSONEq(t, string(data[:len(data)-1]), lines[0])
}

// TestTrailingWhitespaceStripped tests that only trailing whitespace is removed.
func TestTrailingWhitespaceStripped(t *testing.T) {
	reader := newMockChunkReader("  indented \t\r\n", "crlf\r\n", "tail   ")

	lines := collectLines(t, reader, config.DefaultMaxLineSize)

	require.Equal(t, []string{"  indented", "crlf", "tail"}, lines)
}

// TestBlankLinesPassedThrough tests that empty lines are delivered as empty strings.
func TestBlankLinesPassedThrough(t *testing.T) {
	reader := newMockChunkReader("a\n\n\nb\n")

	lines := collectLines(t, reader, config.DefaultMaxLineSize)

	require.Equal(t, []string{"a", "", "", "b"}, lines)
}

// TestLargeLineAcrossChunks tests a line larger than the initial scan buffer.
func TestLargeLineAcrossChunks(t *testing.T) {
	line := `{"type":"message","content":"` + strings.Repeat("z", 200*1024) + `"}`
	data := line + "\n"

	chunkSize := 64 * 1024

	var chunks []string

	for i := 0; i < len(data); i += chunkSize {
		end := min(i+chunkSize, len(data))
		chunks = append(chunks, data[i:end])
	}

	lines := collectLines(t, newMockChunkReader(chunks...), config.DefaultMaxLineSize)

	require.Equal(t, []string{line}, lines)
}

// TestMaxLineSizeExceeded tests that exceeding the line limit returns an error.
func TestMaxLineSizeExceeded(t *testing.T) {
	customLimit := 1024
	reader := strings.NewReader("ok\n" + strings.Repeat("x", customLimit+100) + "\n")

	var lines []string

	err := scanLines(reader, customLimit, func(line string) bool {
		lines = append(lines, line)

		return true
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "token too long")
	require.Equal(t, []string{"ok"}, lines)
}

// TestScanLinesStopsWhenCallbackDeclines tests early exit from the scan loop.
func TestScanLinesStopsWhenCallbackDeclines(t *testing.T) {
	reader := newMockChunkReader("one\ntwo\nthree\n")

	var lines []string

	err := scanLines(reader, config.DefaultMaxLineSize, func(line string) bool {
		lines = append(lines, line)

		return line != "two"
	})

	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, lines)
}
