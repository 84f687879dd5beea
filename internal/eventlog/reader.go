package eventlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// NotFoundError indicates the log file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("log file %s not found", e.Path)
}

// IOError indicates the log file exists but could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read log file %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Summary describes a completed pass over a log file.
type Summary struct {
	Lines   int
	Skipped int
}

// Decoder yields one Record per decodable line of its input.
type Decoder struct {
	r       *bufio.Reader
	lines   int
	skipped int
	done    bool
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next record. Lines that are not valid JSON are skipped.
// It returns io.EOF once the input is exhausted; any other error comes from
// the underlying reader.
func (d *Decoder) Next() (Record, error) {
	for !d.done {
		line, err := d.r.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return Record{}, err
			}
			d.done = true
			if len(line) == 0 {
				break
			}
		}
		d.lines++

		var v any
		if jsonErr := json.Unmarshal(bytes.TrimSpace(line), &v); jsonErr != nil {
			d.skipped++
			continue
		}
		return recordFrom(v), nil
	}
	return Record{}, io.EOF
}

// Summary reports the lines consumed so far.
func (d *Decoder) Summary() Summary {
	return Summary{Lines: d.lines, Skipped: d.skipped}
}

// Open opens the log file at path for decoding. The caller must close the
// returned file.
func Open(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &IOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Path: path, Err: errors.New("is a directory")}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return f, nil
}

// Scan decodes the log file at path, calling fn for each record in file
// order. The file is closed before Scan returns.
func Scan(path string, fn func(Record)) (Summary, error) {
	f, err := Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	return scan(path, f, fn)
}

// scan decodes r, calling fn for each record. A read error stops the pass
// and is reported as an IOError for path.
func scan(path string, r io.Reader, fn func(Record)) (Summary, error) {
	dec := NewDecoder(r)
	for {
		rec, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return dec.Summary(), nil
			}
			return dec.Summary(), &IOError{Path: path, Err: err}
		}
		fn(rec)
	}
}
