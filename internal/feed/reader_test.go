package feed

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readAll(t *testing.T, r *Reader) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestReaderPipeDelimited(t *testing.T) {
	path := writeFeed(t, "brand|title|price\nNike|Phantom GT|89.99\n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"brand", "title", "price"}, r.Header())
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nike", rows[0]["brand"])
	assert.Equal(t, "89.99", rows[0]["price"])
}

func TestReaderDetectsComma(t *testing.T) {
	path := writeFeed(t, "brand,title,price\nNike,Phantom,10\n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Phantom", rows[0]["title"])
}

func TestReaderDetectsTab(t *testing.T) {
	path := writeFeed(t, "brand\ttitle\nNike\tPhantom\n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nike", rows[0]["brand"])
}

func TestReaderStripsBOMAndLowercasesHeader(t *testing.T) {
	path := writeFeed(t, "\ufeffBrand|Title\nNike|Phantom\n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"brand", "title"}, r.Header())
}

func TestReaderPadsAndTruncates(t *testing.T) {
	path := writeFeed(t, "brand|title|price\nNike|Phantom\nAdidas|Predator|10|extra\n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0]["price"])
	assert.Equal(t, "10", rows[1]["price"])
}

func TestReaderSkipsBlankLines(t *testing.T) {
	path := writeFeed(t, "brand|title\n\nNike|Phantom\n   \n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Len(t, readAll(t, r), 1)
}

func TestReaderLatin1Fallback(t *testing.T) {
	// "Botín" in Latin-1: í is 0xED
	content := append([]byte("brand|title\n"), []byte{'N', 'i', 'k', 'e', '|', 'B', 'o', 't', 0xED, 'n', '\n'}...)
	path := filepath.Join(t.TempDir(), "latin1.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Botín", rows[0]["title"])
}

func TestReaderMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReaderEmptyFile(t *testing.T) {
	_, err := Open(writeFeed(t, ""))
	assert.Error(t, err)
}

func TestRowGet(t *testing.T) {
	row := Row{"a": "", "b": " x ", "c": "y"}
	assert.Equal(t, "x", row.Get("a", "b", "c"))
	assert.Equal(t, "", row.Get("a", "missing"))
}
