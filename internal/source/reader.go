package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// LineReader lazily yields lines from a plain or gzip-compressed log file.
// The file is never loaded into memory as a whole.
type LineReader struct {
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	lineNo  int
}

// Open opens a log file for line-by-line reading. Files ending in .gz are
// transparently decompressed.
func Open(path string) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var r io.Reader = f
	var gz *gzip.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &LineReader{file: f, gz: gz, scanner: scanner}, nil
}

// Scan advances to the next line
func (r *LineReader) Scan() bool {
	if r.scanner.Scan() {
		r.lineNo++
		return true
	}
	return false
}

// Line returns the current line without its trailing newline
func (r *LineReader) Line() string {
	return r.scanner.Text()
}

// LineNo returns the 1-based number of the current line
func (r *LineReader) LineNo() int {
	return r.lineNo
}

// Err returns the first error encountered while scanning
func (r *LineReader) Err() error {
	return r.scanner.Err()
}

// Close releases the underlying file and decompressor
func (r *LineReader) Close() error {
	if r.gz != nil {
		if err := r.gz.Close(); err != nil {
			r.file.Close()
			return err
		}
	}
	return r.file.Close()
}
