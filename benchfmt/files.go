// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"io"
	"os"
	"strings"
)

// A Files reads benchmark results from a sequence of input files.
//
// This reader adds a label to every result. By default, the label is
// the path of the input. If AllowLabels is set, an input of the form
// "label=path" reads path and uses label.
type Files struct {
	// Paths is the list of files to read.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated as
	// consisting of stdin.
	AllowStdin bool

	// AllowLabels indicates that custom labels are allowed in the
	// form "label=path".
	AllowLabels bool

	inited  bool
	pos     int
	file    io.ReadCloser
	isStdin bool
	reader  Reader
	err     error
}

func (f *Files) init() {
	f.inited = true
	if f.AllowStdin && len(f.Paths) == 0 {
		f.Paths = []string{"-"}
	}
}

// Scan advances the reader to the next result in the sequence of
// files and reports whether a result was read. The caller should use
// the Result method to get the result.
//
// If Scan reaches the end of the file sequence, or if an I/O error
// occurs, it returns false. In this case, the caller should use the
// Err method to check for errors.
func (f *Files) Scan() bool {
	if !f.inited {
		f.init()
	}
	if f.err != nil {
		return false
	}

	for {
		if f.file == nil {
			if f.pos >= len(f.Paths) {
				return false
			}
			if err := f.open(f.Paths[f.pos]); err != nil {
				f.err = err
				return false
			}
			f.pos++
		}

		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		if cerr := f.close(); err == nil {
			err = cerr
		}
		if err != nil {
			f.err = err
			return false
		}
	}
}

// SplitLabel splits an input argument of the form "label=path". If arg
// has no "=", both label and path are arg.
func SplitLabel(arg string) (label, path string) {
	if i := strings.Index(arg, "="); i >= 0 {
		return arg[:i], arg[i+1:]
	}
	return arg, arg
}

func (f *Files) open(path string) error {
	label := path
	if f.AllowLabels {
		label, path = SplitLabel(path)
	}

	if f.AllowStdin && path == "-" {
		f.file, f.isStdin = os.Stdin, true
	} else {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		f.file, f.isStdin = file, false
	}
	f.reader.Reset(f.file, path, label)
	return nil
}

func (f *Files) close() error {
	var err error
	if !f.isStdin {
		err = f.file.Close()
	}
	f.file = nil
	return err
}

// Result returns the record that was just read by Scan. See
// Reader.Result.
func (f *Files) Result() (*Result, error) {
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}
