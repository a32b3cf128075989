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

package calc

import (
	"strconv"

	"github.com/db47h/ada/parse"
)

// All is the arity of operators working on the whole stack.
const All = parse.All

// Kind tells built-in operators from user definitions.
type Kind int

// Operator kinds.
const (
	Builtin Kind = iota
	User
)

func (k Kind) String() string {
	if k == User {
		return "user"
	}
	return "builtin"
}

// Op describes an operator, function or constant. Registered ops are never
// modified: redefining a name registers a new Op, and lookups return copies.
type Op struct {
	Name     string
	Arity    int  // operands consumed, or All
	Results  int  // values pushed, or All for whole stack rearrangements
	Limit    int  // if positive, the stack holds at most Limit values afterwards
	Prec     int  // infix precedence, higher binds tighter
	Right    bool // right-associative
	Infix    bool
	Kind     Kind
	Help     string
	Behavior Behavior
}

// Behavior is implemented by Native, Macro, Constant and LastX.
type Behavior interface {
	behavior()
}

// Native is a built-in behavior. Fn receives the operands bottom first,
// i.e. y then x for a binary operator, and returns the values to push. If
// Keep is set, the operands are left on the stack. Pole, if set, reports
// operands that make Fn divide by zero.
type Native struct {
	Fn   func(args []Value) []Value
	Keep bool
	Pole func(args []Value) bool
}

// Macro is a user operation: a postfix token sequence evaluated against the
// caller's stack.
type Macro struct {
	Body []parse.Token
}

// Constant pushes a fixed value.
type Constant struct {
	Value Value
}

// LastX pushes the x operand of the last operation that consumed its
// operands.
type LastX struct{}

func (Native) behavior()   {}
func (Macro) behavior()    {}
func (Constant) behavior() {}
func (LastX) behavior()    {}

// clone returns a copy of op that shares nothing mutable with it.
func (op Op) clone() Op {
	if m, ok := op.Behavior.(Macro); ok {
		op.Behavior = Macro{Body: append([]parse.Token(nil), m.Body...)}
	}
	return op
}

// operator returns the parser's view of op.
func (op Op) operator() parse.Operator {
	n, _ := op.Behavior.(Native)
	return parse.Operator{
		Arity:   op.Arity,
		Results: op.Results,
		Limit:   op.Limit,
		Keep:    n.Keep,
		Prec:    op.Prec,
		Right:   op.Right,
		Infix:   op.Infix,
	}
}

// Usage returns a one line summary of the stack effect of op, like
// "sqrt: 1 -> 1".
func (op Op) Usage() string {
	in, out := "all", "1"
	if op.Arity != All {
		in = strconv.Itoa(op.Arity)
	}
	switch {
	case op.Results == All:
		out = "all"
	case op.Results >= 0:
		out = strconv.Itoa(op.Results)
	}
	if n, ok := op.Behavior.(Native); ok && n.Keep {
		out = in + "+" + out
	}
	if op.Limit > 0 {
		out = "at most " + strconv.Itoa(op.Limit)
	}
	s := op.Name + ": " + in + " -> " + out
	if op.Infix {
		s += ", infix"
		if op.Right {
			s += " right-assoc"
		}
		s += " prec " + strconv.Itoa(op.Prec)
	}
	return s
}

// Source returns the body of a user operation in postfix form, or "" for
// other ops.
func (op Op) Source() string {
	if m, ok := op.Behavior.(Macro); ok {
		return parse.Format(m.Body)
	}
	return ""
}
