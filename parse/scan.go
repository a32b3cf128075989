// This file is part of ada - https://github.com/db47h/ada
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// All is the arity of operators that work on the whole stack.
const All = -1

// Operator is the part of an operator descriptor that the parser needs.
type Operator struct {
	Arity   int  // operands consumed, or All
	Results int  // values pushed, or All if the depth is unchanged
	Limit   int  // if positive, the depth after the operator is at most Limit
	Keep    bool // operands are left on the stack
	Prec    int  // infix precedence, higher binds tighter
	Right   bool // right-associative
	Infix   bool // may be written between its two operands
}

// Lexicon resolves names while parsing.
type Lexicon interface {
	// Operator returns the operator registered under name.
	Operator(name string) (Operator, bool)
	// Known reports whether name is an operator or a register.
	Known(name string) bool
	// Depth returns the number of values already on the stack the line is
	// evaluated against.
	Depth() int
}

type nilLexicon struct{}

func (nilLexicon) Operator(string) (Operator, bool) { return Operator{}, false }
func (nilLexicon) Known(string) bool                { return false }
func (nilLexicon) Depth() int                       { return 0 }

const opChars = "+-*/^%!<>=~&|@#$?"

func isOpChar(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(opChars, byte(r)) >= 0
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentRune(r rune) bool  { return isIdentStart(r) || unicode.IsDigit(r) }
func isDigit(b byte) bool      { return '0' <= b && b <= '9' }
func isHex(b byte) bool        { return isDigit(b) || 'a' <= b|0x20 && b|0x20 <= 'f' }
func isBin(b byte) bool        { return b == '0' || b == '1' }

// IsIdent reports whether s is a valid identifier: a letter or underscore
// followed by letters, digits or underscores.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || !isIdentRune(r) {
			return false
		}
	}
	return true
}

// IsOperatorName reports whether s is made of operator characters only.
func IsOperatorName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isOpChar(r) {
			return false
		}
	}
	return true
}

func malformed(pos int, text string) error {
	return errors.WithStack(&SyntaxError{Pos: pos, Msg: fmt.Sprintf("malformed number %q", text)})
}

// scanNumber scans the number literal starting at src[start]. The caller
// must have checked that a literal actually starts there.
func scanNumber(src string, start int) (Token, int, error) {
	i := start
	if src[i] == '+' || src[i] == '-' {
		i++
	}
	neg := src[start] == '-'

	if i+1 < len(src) && src[i] == '0' && (src[i+1]|0x20 == 'x' || src[i+1]|0x20 == 'b') {
		base, digit := 16, isHex
		if src[i+1]|0x20 == 'b' {
			base, digit = 2, isBin
		}
		j := i + 2
		for j < len(src) && digit(src[j]) {
			j++
		}
		if j == i+2 || j < len(src) && (isDigit(src[j]) || src[j] == '.') {
			return Token{}, j, malformed(start, src[start:j+min(1, len(src)-j)])
		}
		n, err := strconv.ParseUint(src[i+2:j], base, 64)
		if err != nil {
			return Token{}, j, malformed(start, src[start:j])
		}
		v := float64(n)
		if neg {
			v = -v
		}
		return Token{Kind: Number, Text: src[start:j], Num: v, Pos: start}, j, nil
	}

	j, digits := i, 0
	for j < len(src) {
		if isDigit(src[j]) {
			j++
			digits++
			continue
		}
		// thousands separator
		if src[j] == ',' && digits > 0 && j+1 < len(src) && isDigit(src[j+1]) {
			j++
			continue
		}
		break
	}
	if j < len(src) && src[j] == '.' {
		j++
		for j < len(src) && isDigit(src[j]) {
			j++
			digits++
		}
	}
	if digits == 0 {
		return Token{}, j, malformed(start, src[start:j])
	}
	if j < len(src) && src[j]|0x20 == 'e' {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		switch {
		case k < len(src) && isDigit(src[k]):
			for k < len(src) && isDigit(src[k]) {
				k++
			}
			j = k
		case k > j+1:
			// exponent sign without digits
			return Token{}, k, malformed(start, src[start:k])
		}
		// otherwise the 'e' starts the next token
	}
	if j < len(src) && src[j] == '.' {
		return Token{}, j + 1, malformed(start, src[start:j+1])
	}

	text := src[start:j]
	v, err := strconv.ParseFloat(strings.Replace(text, ",", "", -1), 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Token{}, j, malformed(start, text)
		}
		// out of range: v is ±Inf or 0, keep it
	}
	return Token{Kind: Number, Text: text, Num: v, Pos: start}, j, nil
}

type scanner struct {
	src  string
	pos  int
	lex  Lexicon
	toks []Token
}

// Tokenize splits line into tokens. Names are resolved against lex, which may
// be nil.
func Tokenize(line string, lex Lexicon) ([]Token, error) {
	if lex == nil {
		lex = nilLexicon{}
	}
	s := &scanner{src: line, lex: lex}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.toks, nil
}

func (s *scanner) errorf(pos int, format string, args ...interface{}) error {
	return errors.WithStack(&SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (s *scanner) emit(t Token) {
	s.toks = append(s.toks, t)
}

func (s *scanner) byteAt(i int) byte {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		r, w := utf8.DecodeRuneInString(s.src[s.pos:])
		switch {
		case r == utf8.RuneError && w == 1:
			return s.errorf(s.pos, "illegal UTF-8 encoding")
		case unicode.IsSpace(r) || r == ',':
			s.pos += w
		case r == '(':
			s.emit(Token{Kind: OpenParen, Text: "(", Pos: s.pos})
			s.pos++
		case r == ')':
			s.emit(Token{Kind: CloseParen, Text: ")", Pos: s.pos})
			s.pos++
		case s.atNumber():
			t, end, err := scanNumber(s.src, s.pos)
			if err != nil {
				return err
			}
			s.emit(t)
			s.pos = end
		case r == '>' && s.atStore():
			s.store()
		case isIdentStart(r):
			s.word()
		case isOpChar(r):
			if err := s.operator(); err != nil {
				return err
			}
		default:
			return s.errorf(s.pos, "unexpected character %q", r)
		}
	}
	return nil
}

// atWordStart reports whether s.pos is at the start of a word.
func (s *scanner) atWordStart() bool {
	if s.pos == 0 {
		return true
	}
	switch s.src[s.pos-1] {
	case ' ', '\t', '\n', '\r', '\v', '\f', '(', ',':
		return true
	}
	return false
}

func (s *scanner) atNumber() bool {
	b := s.src[s.pos]
	switch {
	case isDigit(b):
		return true
	case b == '.':
		return isDigit(s.byteAt(s.pos + 1))
	case b == '+' || b == '-':
		if !s.atWordStart() {
			return false
		}
		n := s.byteAt(s.pos + 1)
		return isDigit(n) || n == '.' && isDigit(s.byteAt(s.pos+2))
	}
	return false
}

func (s *scanner) atStore() bool {
	k := s.pos + 1
	if b := s.byteAt(k); b == '+' || b == '-' {
		k++
	}
	if k >= len(s.src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s.src[k:])
	return isIdentStart(r)
}

// identEnd returns the end of the identifier run starting at i.
func (s *scanner) identEnd(i int) int {
	for i < len(s.src) {
		r, w := utf8.DecodeRuneInString(s.src[i:])
		if !isIdentRune(r) {
			break
		}
		i += w
	}
	return i
}

func (s *scanner) store() {
	k := s.pos + 1
	if b := s.byteAt(k); b == '+' || b == '-' {
		k++
	}
	end := s.identEnd(k)
	s.emit(Token{Kind: Symbol, Text: s.src[s.pos:end], Pos: s.pos})
	s.pos = end
}

// longest returns the end of the longest known name in s.src[i:end], or i if
// there is none.
func (s *scanner) longest(i, end int) int {
	for j := end; j > i; j-- {
		if j < len(s.src) && !utf8.RuneStart(s.src[j]) {
			continue
		}
		if s.lex.Known(s.src[i:j]) {
			return j
		}
	}
	return i
}

func (s *scanner) word() {
	end := s.identEnd(s.pos)
	w := s.src[s.pos:end]
	if !s.lex.Known(w) && strings.IndexAny(w, "0123456789") >= 0 {
		if toks, ok := s.split(s.pos, end); ok {
			s.toks = append(s.toks, toks...)
			s.pos = end
			return
		}
	}
	s.emit(Token{Kind: Symbol, Text: w, Pos: s.pos})
	s.pos = end
}

// split tries to cut s.src[start:end] into known names and numbers, as in
// "pi2" or "sqrt16".
func (s *scanner) split(start, end int) ([]Token, bool) {
	var toks []Token
	for i := start; i < end; {
		if isDigit(s.src[i]) {
			t, j, err := scanNumber(s.src[:end], i)
			if err != nil {
				return nil, false
			}
			toks = append(toks, t)
			i = j
			continue
		}
		j := s.longest(i, end)
		if j == i {
			return nil, false
		}
		toks = append(toks, Token{Kind: Symbol, Text: s.src[i:j], Pos: i})
		i = j
	}
	return toks, true
}

func (s *scanner) operator() error {
	end := s.pos
	for end < len(s.src) && isOpChar(rune(s.src[end])) {
		end++
	}
	j := s.longest(s.pos, end)
	if j == s.pos {
		return s.errorf(s.pos, "unknown operator %q", s.src[s.pos:end])
	}
	s.emit(Token{Kind: Symbol, Text: s.src[s.pos:j], Pos: s.pos})
	s.pos = j
	return nil
}
