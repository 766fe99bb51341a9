package recorder

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func testRecorder(t *testing.T, dir string, c *clock) *Recorder {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r, err := newRecorder(dir, "asterix", true, logger, c.now)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func readGzip(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	return string(data)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{name: "Existing directory", dir: ""},
		{name: "Nested directory creation", dir: "nested/records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), tt.dir)
			c := &clock{time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}

			r := testRecorder(t, dir, c)
			assert.DirExists(t, dir)
			assert.Equal(t, filepath.Join(dir, "asterix_2024-06-01.jsonl"), r.CurrentFile())
			assert.FileExists(t, r.CurrentFile())
		})
	}
}

func TestWrite(t *testing.T) {
	c := &clock{time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	r := testRecorder(t, t.TempDir(), c)

	n, err := r.Write([]byte("{\"category\":48}\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	content, err := os.ReadFile(r.CurrentFile())
	require.NoError(t, err)
	assert.Equal(t, "{\"category\":48}\n", string(content))
}

func TestDateRotation(t *testing.T) {
	dir := t.TempDir()
	c := &clock{time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)}
	r := testRecorder(t, dir, c)

	_, err := r.Write([]byte("day one\n{\"partial\":"))
	require.NoError(t, err)

	// a line that started before midnight stays in the old file
	c.t = c.t.Add(2 * time.Second)
	_, err = r.Write([]byte("true}\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "asterix_2024-06-01.jsonl"), r.CurrentFile())

	_, err = r.Write([]byte("day two\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "asterix_2024-06-02.jsonl"), r.CurrentFile())

	require.NoError(t, r.Close())

	assert.NoFileExists(t, filepath.Join(dir, "asterix_2024-06-01.jsonl"))
	assert.Equal(t, "day one\n{\"partial\":true}\n", readGzip(t, filepath.Join(dir, "asterix_2024-06-01.jsonl.gz")))

	content, err := os.ReadFile(filepath.Join(dir, "asterix_2024-06-02.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "day two\n", string(content))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	c := &clock{time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	r := testRecorder(t, dir, c)

	extra := []string{"asterix_2024-05-30.jsonl.gz", "asterix_2024-05-31.jsonl", "other.txt"}
	for _, name := range extra {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := r.Files()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "asterix_2024-05-30.jsonl.gz"),
		filepath.Join(dir, "asterix_2024-05-31.jsonl"),
		r.CurrentFile(),
	}, files)
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	c := &clock{time.Now()}
	r := testRecorder(t, dir, c)

	oldFile := filepath.Join(dir, "asterix_2023-01-01.jsonl.gz")
	require.NoError(t, os.WriteFile(oldFile, []byte("old"), 0644))
	oldTime := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	recentFile := filepath.Join(dir, "asterix_2023-12-31.jsonl")
	require.NoError(t, os.WriteFile(recentFile, []byte("recent"), 0644))

	removed, err := r.Cleanup(5)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, recentFile)
	assert.FileExists(t, r.CurrentFile())

	for _, days := range []int{0, -1} {
		_, err := r.Cleanup(days)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maxDays must be positive")
	}
}

func TestClose(t *testing.T) {
	c := &clock{time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	r := testRecorder(t, t.TempDir(), c)

	require.NoError(t, r.Close())
	_, err := r.Write([]byte("late\n"))
	assert.Error(t, err)
}
