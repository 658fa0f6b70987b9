// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchproc/internal/parse"
)

// A Filter filters benchmark results.
type Filter struct {
	// match is the filter function that implements this filter.
	match matcher
}

type matcher func(*benchfmt.Result) bool

// NewFilter constructs a result filter from a boolean filter
// expression, such as "backend:onnx buffer:(512 2048)". See "go doc
// github.com/anira-bench/anirabench/benchproc/syntax" for a
// description of filter syntax.
//
// An empty query matches everything.
func NewFilter(query string) (*Filter, error) {
	if query == "" {
		return &Filter{func(*benchfmt.Result) bool { return true }}, nil
	}
	q, err := parse.ParseFilter(query)
	if err != nil {
		return nil, err
	}
	m, err := newMatcher(query, q)
	if err != nil {
		return nil, err
	}
	return &Filter{m}, nil
}

func newMatcher(query string, q parse.Filter) (matcher, error) {
	switch q := q.(type) {
	case *parse.FilterOp:
		subs := make([]matcher, len(q.Exprs))
		for i, sub := range q.Exprs {
			m, err := newMatcher(query, sub)
			if err != nil {
				return nil, err
			}
			subs[i] = m
		}
		switch q.Op {
		case parse.OpNot:
			return func(r *benchfmt.Result) bool { return !subs[0](r) }, nil
		case parse.OpAnd:
			return func(r *benchfmt.Result) bool {
				for _, m := range subs {
					if !m(r) {
						return false
					}
				}
				return true
			}, nil
		case parse.OpOr:
			return func(r *benchfmt.Result) bool {
				for _, m := range subs {
					if m(r) {
						return true
					}
				}
				return false
			}, nil
		}
		panic("unknown filter op")

	case *parse.FilterMatch:
		ext, err := newExtractor(q.Key)
		if err != nil {
			return nil, &parse.SyntaxError{Query: query, Off: q.Off, Msg: err.Error()}
		}
		return func(r *benchfmt.Result) bool { return q.Match(ext(r)) }, nil
	}
	panic("unknown filter node")
}

// Apply reports whether res matches f.
func (f *Filter) Apply(res *benchfmt.Result) bool {
	return f.match(res)
}
