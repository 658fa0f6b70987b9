// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/anira-bench/anirabench/benchunit"
)

// A Reader reads the benchmark log format.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Result it returns; a caller should Clone anything it needs to
// retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error // current I/O error

	result    Result
	resultErr error

	interns map[string]string
}

// A SyntaxError represents a syntax error on a particular line of a
// benchmark log.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noResult = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader to parse the benchmark log format from
// r. fileName is used in error messages and as the label of every
// result.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. Results
// read from the new input carry label. Reset also forgets the host
// configuration of the previous input.
func (r *Reader) Reset(ior io.Reader, fileName, label string) {
	r.s = bufio.NewScanner(ior)
	// Harness output may contain very long banner lines.
	r.s.Buffer(nil, 1<<20)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.resultErr = noResult
	if r.interns == nil {
		r.interns = make(map[string]string)
	}
	r.result = Result{Label: label}
}

var (
	iterationMarker = []byte("SingleIteration")
	hostPrefix      = []byte("Model:")

	// iterationLine matches one timed iteration. Benchmark names
	// from newer harness versions carry extra segments between the
	// benchmark and the model; those are skipped.
	iterationLine = regexp.MustCompile(`SingleIteration/([^/\s]+)/([^/\s]+)/(?:\S*/)?([^/\s]+)/([a-z]+)/([0-9]+)/iteration:([0-9]+)/repetition:([0-9]+)\s+([0-9]+(?:\.[0-9]*)?|\.[0-9]+)\s*(\S+)`)

	hostLine = regexp.MustCompile(`^Model:\s*(\S*)\s*\|\s*Backend:\s*(\S*)\s*\|\s*Host Sample Rate:\s*([0-9]+(?:\.[0-9]*)?)\s*Hz`)
)

// Scan advances the reader to the next result and reports whether a
// result was read.
// The caller should use the Result method to get the result.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := r.s.Bytes()
		if bytes.Contains(line, iterationMarker) {
			// At this point we commit to this being an
			// iteration line. If it's malformed, we treat
			// that as an error.
			r.resultErr = r.parseIterationLine(line)
			return true
		}
		if bytes.HasPrefix(line, hostPrefix) {
			r.parseHostLine(line)
			continue
		}
		// Ignore the line.
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
		return false
	}
	r.err = nil
	return false
}

// parseIterationLine parses line as a timed iteration and updates
// r.result.
func (r *Reader) parseIterationLine(line []byte) error {
	m := iterationLine.FindSubmatch(line)
	if m == nil {
		return r.syntaxError("malformed iteration line")
	}

	bufferSize, err := strconv.Atoi(string(m[5]))
	if err != nil {
		return r.syntaxError("parsing buffer size: " + numError(err))
	}
	iteration, err := strconv.Atoi(string(m[6]))
	if err != nil {
		return r.syntaxError("parsing iteration: " + numError(err))
	}
	repetition, err := strconv.Atoi(string(m[7]))
	if err != nil {
		return r.syntaxError("parsing repetition: " + numError(err))
	}
	runtime, err := strconv.ParseFloat(string(m[8]), 64)
	if err != nil {
		return r.syntaxError("parsing runtime: " + numError(err))
	}
	unit := r.intern(m[9])
	tidied, factor := benchunit.Tidy(unit)
	if factor == 0 {
		return r.syntaxError(fmt.Sprintf("unknown runtime unit %q", unit))
	}

	res := &r.result
	res.Fixture = r.intern(m[1])
	res.Benchmark = r.intern(m[2])
	res.Model = r.intern(m[3])
	res.Backend = r.intern(m[4])
	res.BufferSize = bufferSize
	res.Iteration = iteration
	res.Repetition = repetition
	if tidied == unit {
		res.Runtime, res.OrigRuntime, res.OrigUnit = runtime, 0, ""
	} else {
		res.Runtime, res.OrigRuntime, res.OrigUnit = runtime*factor, runtime, unit
	}
	return nil
}

// parseHostLine updates the host configuration from a banner line.
// Malformed banners are ignored; they are informational only.
func (r *Reader) parseHostLine(line []byte) {
	m := hostLine.FindSubmatch(line)
	if m == nil {
		return
	}
	rate, err := strconv.ParseFloat(string(m[3]), 64)
	if err != nil {
		return
	}
	r.result.SampleRate = rate
}

func (r *Reader) syntaxError(msg string) error {
	return &SyntaxError{r.fileName, r.lineNum, msg}
}

func numError(err error) string {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err.Error()
	}
	return err.Error()
}

func (r *Reader) intern(x []byte) string {
	const maxIntern = 1024
	if s, ok := r.interns[string(x)]; ok {
		return s
	}
	if len(r.interns) >= maxIntern {
		// Evict a random item from the interns table.
		for k := range r.interns {
			delete(r.interns, k)
			break
		}
	}
	s := string(x)
	r.interns[s] = s
	return s
}

// Result returns the last result read, or an error if the result was
// malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Result object, as it will be
// overwritten by the next call to Scan.
func (r *Reader) Result() (*Result, error) {
	if r.resultErr != nil {
		return nil, r.resultErr
	}
	return &r.result, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
