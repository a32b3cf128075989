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
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pkg/errors"
)

// pending is an entry of the normalizer side stack: either a held back infix
// operator or an opening parenthesis.
type pending struct {
	tok   Token
	op    Operator
	depth int // operands available in the enclosing segment when pushed
}

// effect returns the number of operands left in a segment of depth d after
// applying op.
func effect(op Operator, d int) int {
	switch {
	case op.Results == All:
	case op.Keep:
		d += op.Results
	case op.Arity == All:
		d = op.Results
	default:
		if d -= op.Arity; d < 0 {
			d = 0
		}
		d += op.Results
	}
	if op.Limit > 0 && d > op.Limit {
		d = op.Limit
	}
	return d
}

// startsOperand reports whether t begins a value: a number, a group, a
// register or a nullary operator such as a constant.
func startsOperand(t Token, lex Lexicon) bool {
	switch t.Kind {
	case Number, OpenParen:
		return true
	case Symbol:
		op, ok := lex.Operator(t.Text)
		return !ok || op.Arity == 0
	}
	return false
}

// Normalize converts a token sequence mixing postfix entry and parenthesized
// infix expressions into pure postfix order. Parentheses are removed.
//
// Normalize works in a single pass with a side stack of held back operators.
// An infix operator is held back only when its operands are not all there
// yet: the outer segment starts with the lex.Depth() values already on the
// stack, a parenthesized group starts empty. Input that is already postfix
// and has no parentheses is returned unchanged.
func Normalize(toks []Token, lex Lexicon) ([]Token, error) {
	if lex == nil {
		lex = nilLexicon{}
	}
	out := make([]Token, 0, len(toks))
	side := arraystack.New()
	depth := lex.Depth() // operands available so far in the current segment

	// unwind pops the held back operator p to the output.
	unwind := func(p *pending) {
		out = append(out, p.tok)
		depth = effect(p.op, p.depth+depth)
	}

	for k, t := range toks {
		switch t.Kind {
		case Number:
			out = append(out, t)
			depth++
		case OpenParen:
			side.Push(&pending{tok: t, depth: depth})
			depth = 0
		case CloseParen:
			for {
				v, ok := side.Pop()
				if !ok {
					return nil, errors.WithStack(&SyntaxError{Pos: t.Pos, Msg: "unbalanced parentheses: unexpected ')'"})
				}
				p := v.(*pending)
				if p.tok.Kind == OpenParen {
					depth += p.depth
					break
				}
				unwind(p)
			}
		case Symbol:
			op, ok := lex.Operator(t.Text)
			if !ok {
				// register or unresolved name
				out = append(out, t)
				depth++
				continue
			}
			// held back only when written between its operands
			if !op.Infix || depth == 0 || depth >= op.Arity || k+1 >= len(toks) || !startsOperand(toks[k+1], lex) {
				out = append(out, t)
				depth = effect(op, depth)
				continue
			}
			for {
				v, ok := side.Peek()
				if !ok {
					break
				}
				p := v.(*pending)
				if p.tok.Kind == OpenParen || p.op.Prec < op.Prec || p.op.Prec == op.Prec && op.Right {
					break
				}
				side.Pop()
				unwind(p)
			}
			side.Push(&pending{tok: t, op: op, depth: depth})
			depth = 0
		default:
			return nil, errors.Errorf("parse: invalid token kind %v", t.Kind)
		}
	}

	for !side.Empty() {
		v, _ := side.Pop()
		p := v.(*pending)
		if p.tok.Kind == OpenParen {
			return nil, errors.WithStack(&SyntaxError{Pos: p.tok.Pos, Msg: "unbalanced parentheses: missing ')'"})
		}
		unwind(p)
	}
	return out, nil
}

// Parse tokenizes and normalizes line.
func Parse(line string, lex Lexicon) ([]Token, error) {
	toks, err := Tokenize(line, lex)
	if err != nil {
		return nil, err
	}
	return Normalize(toks, lex)
}

// Format renders a token sequence as text, tokens separated by a single
// space.
func Format(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
