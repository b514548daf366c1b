// Package feed reads delimited merchant feed files (Sprinter SSV/CSV) as a
// lazy, forward-only stream of row mappings.
package feed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Row maps header column name (lowercased) to the row's raw cell value.
type Row map[string]string

// Get returns the first non-empty value among the given column names.
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// RowSource is the stream the import pipeline consumes. Next returns io.EOF
// when the feed is exhausted.
type RowSource interface {
	Next() (Row, error)
}

type Reader struct {
	f       *os.File
	scanner *bufio.Scanner
	header  []string
	delim   string
}

// Open reads the header line, strips a leading BOM and auto-detects the
// delimiter among '|', ',' and tab by counting occurrences.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read feed header: %w", err)
		}
		return nil, fmt.Errorf("feed %s is empty", path)
	}
	headerLine := strings.TrimPrefix(decodeLine(scanner.Text()), "\ufeff")
	delim := detectDelimiter(headerLine)

	var header []string
	for _, h := range strings.Split(headerLine, delim) {
		header = append(header, strings.ToLower(strings.TrimSpace(h)))
	}

	return &Reader{f: f, scanner: scanner, header: header, delim: delim}, nil
}

// Header returns the lowercased column names.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next non-blank row. Rows with a field count different from
// the header are padded or truncated to fit.
func (r *Reader) Next() (Row, error) {
	for {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read feed row: %w", err)
			}
			return nil, io.EOF
		}
		line := decodeLine(r.scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, r.delim)
		for len(fields) < len(r.header) {
			fields = append(fields, "")
		}
		row := make(Row, len(r.header))
		for i, h := range r.header {
			row[h] = strings.TrimSpace(fields[i])
		}
		return row, nil
	}
}

func (r *Reader) Close() error {
	return r.f.Close()
}

func detectDelimiter(header string) string {
	best, bestCount := "|", strings.Count(header, "|")
	if n := strings.Count(header, ","); n > bestCount {
		best, bestCount = ",", n
	}
	if n := strings.Count(header, "\t"); n > bestCount {
		best = "\t"
	}
	return best
}

// decodeLine converts non-UTF-8 input (merchant exports are occasionally
// Latin-1) to UTF-8.
func decodeLine(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}
