// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse implements the filter expression language described
// in benchproc/syntax.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// A Filter is a node in the filter expression tree.
type Filter interface {
	isFilter()
	String() string
}

// Op is a boolean operator.
type Op int

const (
	OpAnd Op = 1 + iota
	OpOr
	OpNot
)

// A FilterOp combines the results of its sub-expressions. An OpAnd
// with no sub-expressions matches everything.
type FilterOp struct {
	Op    Op
	Exprs []Filter
}

// A FilterMatch tests a key against a literal value or, if Regexp is
// non-nil, against a regular expression.
type FilterMatch struct {
	Key    string
	Regexp *regexp.Regexp
	Lit    string

	Off int // Byte offset of the key in the original query.
}

func (*FilterOp) isFilter()    {}
func (*FilterMatch) isFilter() {}

func (q *FilterOp) String() string {
	var op string
	switch q.Op {
	case OpNot:
		return "-" + q.Exprs[0].String()
	case OpAnd:
		if len(q.Exprs) == 0 {
			return "*"
		}
		op = " AND "
	case OpOr:
		op = " OR "
	}
	parts := make([]string, len(q.Exprs))
	for i, e := range q.Exprs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, op) + ")"
}

func (q *FilterMatch) String() string {
	if q.Regexp != nil {
		return quoteWord(q.Key) + ":/" + q.Regexp.String() + "/"
	}
	return quoteWord(q.Key) + ":" + quoteWord(q.Lit)
}

func quoteWord(s string) string {
	if s == "" || strings.ContainsAny(s, " \t()\":") || strings.IndexAny(s[:1], "-*/") == 0 {
		return strconv.Quote(s)
	}
	return s
}

// Match reports whether value satisfies q.
func (q *FilterMatch) Match(value string) bool {
	if q.Regexp != nil {
		return q.Regexp.MatchString(value)
	}
	return q.Lit == value
}

// ParseFilter parses a filter expression into a Filter tree.
func ParseFilter(q string) (Filter, error) {
	p := &parser{lexer{q: q}}
	f, err := p.expr()
	if err != nil {
		return nil, err
	}
	t, err := p.l.key()
	if err != nil {
		return nil, err
	}
	if t.Kind != tokEOF {
		return nil, p.l.errorAt(t.Off, "unexpected "+strconv.Quote(t.Tok))
	}
	return f, nil
}

type parser struct {
	l lexer
}

// expr = andExpr {"OR" andExpr}
func (p *parser) expr() (Filter, error) {
	var terms []Filter
	for {
		q, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		terms = append(terms, q)

		t, err := p.l.peekKey()
		if err != nil {
			return nil, err
		}
		if t.Kind != tokOr {
			break
		}
		p.l.key()
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return &FilterOp{OpOr, terms}, nil
}

// andExpr = match {"AND"? match}
func (p *parser) andExpr() (Filter, error) {
	var terms []Filter
	for {
		t, err := p.l.peekKey()
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case tokAnd:
			if len(terms) == 0 {
				return nil, p.l.errorAt(t.Off, "unexpected \"AND\"")
			}
			p.l.key()
			continue
		case '(', '-', '*', tokWord, tokQuoted:
			q, err := p.match()
			if err != nil {
				return nil, err
			}
			terms = append(terms, q)
			continue
		case ')', tokOr, tokEOF:
			if len(terms) == 0 {
				return nil, p.l.errorAt(t.Off, "expected key:value or subexpression")
			}
		default:
			return nil, p.l.errorAt(t.Off, "unexpected "+strconv.Quote(t.Tok))
		}
		break
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return &FilterOp{OpAnd, terms}, nil
}

// match = "(" expr ")" | "-" match | "*" | key ":" value | key ":" "(" value {value} ")"
func (p *parser) match() (Filter, error) {
	t, err := p.l.key()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case '(':
		q, err := p.expr()
		if err != nil {
			return nil, err
		}
		closer, err := p.l.key()
		if err != nil {
			return nil, err
		}
		if closer.Kind != ')' {
			return nil, p.l.errorAt(closer.Off, "missing \")\"")
		}
		return q, nil
	case '-':
		q, err := p.match()
		if err != nil {
			return nil, err
		}
		return &FilterOp{OpNot, []Filter{q}}, nil
	case '*':
		return &FilterOp{OpAnd, nil}, nil
	case tokWord, tokQuoted:
		return p.keyValue(t)
	}
	return nil, p.l.errorAt(t.Off, "expected key:value or subexpression")
}

func (p *parser) keyValue(key tok) (Filter, error) {
	colon, err := p.l.key()
	if err != nil {
		return nil, err
	}
	if colon.Kind != ':' {
		return nil, p.l.errorAt(key.Off, "expected key:value")
	}

	val, err := p.l.value()
	if err != nil {
		return nil, err
	}
	switch val.Kind {
	case tokWord, tokQuoted, tokRegexp:
		return mkMatch(key, val), nil
	case '(':
		var terms []Filter
		for {
			val, err := p.l.value()
			if err != nil {
				return nil, err
			}
			switch val.Kind {
			case ')':
				if len(terms) == 0 {
					return nil, p.l.errorAt(val.Off, "nothing to match")
				}
				if len(terms) == 1 {
					return terms[0], nil
				}
				return &FilterOp{OpOr, terms}, nil
			case tokWord, tokQuoted, tokRegexp:
				terms = append(terms, mkMatch(key, val))
			default:
				return nil, p.l.errorAt(val.Off, "expected value")
			}
		}
	}
	return nil, p.l.errorAt(key.Off, "expected key:value")
}

func mkMatch(key, val tok) Filter {
	if val.Kind == tokRegexp {
		return &FilterMatch{Key: key.Tok, Regexp: val.Regexp, Off: key.Off}
	}
	return &FilterMatch{Key: key.Tok, Lit: val.Tok, Off: key.Off}
}
