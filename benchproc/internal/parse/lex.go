// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"
)

// A SyntaxError is an error produced by parsing a malformed
// expression.
type SyntaxError struct {
	Query string // The original query string
	Off   int    // Byte offset of the error in Query
	Msg   string // Error message
}

func (e *SyntaxError) Error() string {
	// Show the query with a caret under the offending position.
	pos := e.Off
	if pos > len(e.Query) {
		pos = len(e.Query)
	}
	return "syntax error: " + e.Msg + "\n\t" + e.Query + "\n\t" + strings.Repeat(" ", pos) + "^"
}

// Token kinds.
const (
	tokEOF    = 0
	tokWord   = 'w'
	tokQuoted = 'q'
	tokRegexp = 'r'
	tokAnd    = 'A'
	tokOr     = 'O'
)

type tok struct {
	Kind   byte
	Tok    string
	Off    int
	Regexp *regexp.Regexp
}

// lexer splits a query into tokens. Whether a ':' or a '/' is
// special depends on whether the lexer expects a key or a value, so
// tokens are produced on demand by the parser.
type lexer struct {
	q   string
	pos int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.q) && (l.q[l.pos] == ' ' || l.q[l.pos] == '\t') {
		l.pos++
	}
}

// peekKey returns the next token in key position without consuming
// it.
func (l *lexer) peekKey() (tok, error) {
	save := l.pos
	t, err := l.key()
	l.pos = save
	return t, err
}

// key lexes the next token in key position.
func (l *lexer) key() (tok, error) {
	l.skipSpace()
	if l.pos == len(l.q) {
		return tok{Kind: tokEOF, Off: l.pos}, nil
	}
	off := l.pos
	switch c := l.q[l.pos]; c {
	case '(', ')', ':', '-', '*':
		l.pos++
		return tok{Kind: c, Tok: l.q[off:l.pos], Off: off}, nil
	case '"':
		return l.quoted()
	}
	w := l.word(" \t():")
	switch w {
	case "AND":
		return tok{Kind: tokAnd, Tok: w, Off: off}, nil
	case "OR":
		return tok{Kind: tokOr, Tok: w, Off: off}, nil
	}
	return tok{Kind: tokWord, Tok: w, Off: off}, nil
}

// value lexes the next token in value position.
func (l *lexer) value() (tok, error) {
	l.skipSpace()
	if l.pos == len(l.q) {
		return tok{Kind: tokEOF, Off: l.pos}, nil
	}
	off := l.pos
	switch c := l.q[l.pos]; c {
	case '(', ')':
		l.pos++
		return tok{Kind: c, Tok: l.q[off:l.pos], Off: off}, nil
	case '"':
		return l.quoted()
	case '/':
		return l.regexp()
	}
	return tok{Kind: tokWord, Tok: l.word(" \t()"), Off: off}, nil
}

func (l *lexer) word(stop string) string {
	start := l.pos
	for l.pos < len(l.q) && !strings.ContainsRune(stop, rune(l.q[l.pos])) {
		l.pos++
	}
	return l.q[start:l.pos]
}

func (l *lexer) quoted() (tok, error) {
	off := l.pos
	lit, err := strconv.QuotedPrefix(l.q[off:])
	if err != nil {
		return tok{}, l.errorAt(off, "bad quoted string")
	}
	s, err := strconv.Unquote(lit)
	if err != nil {
		return tok{}, l.errorAt(off, "bad quoted string")
	}
	l.pos += len(lit)
	return tok{Kind: tokQuoted, Tok: s, Off: off}, nil
}

func (l *lexer) regexp() (tok, error) {
	off := l.pos
	// Find the closing "/", skipping escaped characters.
	end := -1
	for i := off + 1; i < len(l.q); i++ {
		if l.q[i] == '\\' {
			i++
			continue
		}
		if l.q[i] == '/' {
			end = i
			break
		}
	}
	if end < 0 {
		return tok{}, l.errorAt(off, "missing close \"/\"")
	}
	expr := strings.ReplaceAll(l.q[off+1:end], `\/`, `/`)
	re, err := regexp.Compile(expr)
	if err != nil {
		// Strip the "error parsing regexp: " prefix.
		msg := err.Error()
		if e, ok := err.(*syntax.Error); ok {
			msg = e.Code.String() + ": `" + e.Expr + "`"
		}
		return tok{}, l.errorAt(off+1, msg)
	}
	l.pos = end + 1
	return tok{Kind: tokRegexp, Tok: expr, Off: off, Regexp: re}, nil
}

func (l *lexer) errorAt(off int, msg string) error {
	return &SyntaxError{l.q, off, msg}
}
