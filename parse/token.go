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
)

// Kind is the kind of a Token.
type Kind int

// Token kinds.
const (
	Number Kind = iota
	Symbol
	OpenParen
	CloseParen
)

var kindNames = [...]string{
	Number:     "number",
	Symbol:     "symbol",
	OpenParen:  "(",
	CloseParen: ")",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Token is a lexical element of an input line.
type Token struct {
	Kind Kind
	Text string  // source text
	Num  float64 // value of a Number token
	Pos  int     // byte offset in the input line
}

// Num returns a Number token for v.
func Num(v float64) Token {
	return Token{Kind: Number, Text: strconv.FormatFloat(v, 'g', -1, 64), Num: v, Pos: -1}
}

// Sym returns a Symbol token.
func Sym(name string) Token {
	return Token{Kind: Symbol, Text: name, Pos: -1}
}

func (t Token) String() string {
	return t.Text
}

// Equal reports whether t and u have the same kind and text. Positions are
// ignored.
func (t Token) Equal(u Token) bool {
	return t.Kind == u.Kind && t.Text == u.Text
}

// Store symbol prefixes.
const (
	StorePrefix    = ">"
	StoreAddPrefix = ">+"
	StoreSubPrefix = ">-"
)

// StoreTarget splits a register store symbol into its prefix and register
// name. ok is false if name is not a store symbol.
func StoreTarget(name string) (prefix, reg string, ok bool) {
	if !strings.HasPrefix(name, StorePrefix) {
		return "", "", false
	}
	for _, p := range [...]string{StoreAddPrefix, StoreSubPrefix, StorePrefix} {
		if strings.HasPrefix(name, p) && IsIdent(name[len(p):]) {
			return p, name[len(p):], true
		}
	}
	return "", "", false
}

// SyntaxError reports a malformed token or unbalanced parentheses.
type SyntaxError struct {
	Pos int // byte offset in the input line, -1 if unknown
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error at column %d: %s", e.Pos+1, e.Msg)
}
