package logreader

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func collect(t *testing.T, lines <-chan Line, errors <-chan error) []Line {
	t.Helper()
	var out []Line
	for line := range lines {
		out = append(out, line)
	}
	for err := range errors {
		require.NoError(t, err)
	}
	return out
}

func TestReadFileNumbersLines(t *testing.T) {
	path := writeTempLog(t, "access.log", "first\nsecond\nthird\n")

	reader := NewLogReader()
	lines, errors := reader.ReadFile(context.Background(), path)
	got := collect(t, lines, errors)

	require.Len(t, got, 3)
	assert.Equal(t, Line{Number: 1, Text: "first"}, got[0])
	assert.Equal(t, Line{Number: 2, Text: "second"}, got[1])
	assert.Equal(t, Line{Number: 3, Text: "third"}, got[2])
}

func TestReadFileSanitizesInvalidUTF8(t *testing.T) {
	path := writeTempLog(t, "access.log", "ok\nbad \xff\xfe line\n")

	reader := NewLogReader()
	lines, errors := reader.ReadFile(context.Background(), path)
	got := collect(t, lines, errors)

	require.Len(t, got, 2)
	assert.Equal(t, "bad  line", got[1].Text)
}

func TestReadFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(file)
	_, err = gz.Write([]byte("compressed line\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())

	reader := NewLogReader()
	lines, errors := reader.ReadFile(context.Background(), path)
	got := collect(t, lines, errors)

	require.Len(t, got, 1)
	assert.Equal(t, "compressed line", got[0].Text)
}

func TestReadFileMissing(t *testing.T) {
	reader := NewLogReader()
	lines, errors := reader.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.log"))

	for range lines {
		t.Fatal("no lines expected")
	}
	err := <-errors
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	path := writeTempLog(t, "access.log", "0123456789")

	reader := NewLogReader()
	info, err := reader.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, int64(10), info.Size)
	assert.False(t, info.IsGzipped)

	_, err = reader.Stat(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}
