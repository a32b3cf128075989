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
	"fmt"
	"strings"

	"github.com/db47h/ada/parse"
)

// SyntaxError reports a malformed token or unbalanced parentheses.
type SyntaxError = parse.SyntaxError

// NameError reports a symbol that is neither an operator nor a register.
type NameError struct {
	Name string
	Pos  int // byte offset in the input line, -1 if unknown
}

func (e *NameError) Error() string {
	return fmt.Sprintf("unknown name %q", e.Name)
}

// StackUnderflowError is returned when an operator finds fewer operands on
// the stack than its arity. It is always detected before the stack is
// modified.
type StackUnderflowError struct {
	Op   string
	Need int
	Have int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("%s: stack underflow: need %d, have %d", e.Op, e.Need, e.Have)
}

// ArityMismatchError is returned by Define when the declared arity of an
// operation does not match the number of operands its body requires.
type ArityMismatchError struct {
	Name     string
	Claimed  int
	Required int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s: declared arity %d, body requires %d", e.Name, e.Claimed, e.Required)
}

// DefinitionCycleError is returned by Define when an operation would refer to
// itself, directly or through other user operations. Path lists the
// operations involved, starting and ending with Name.
type DefinitionCycleError struct {
	Name string
	Path []string
}

func (e *DefinitionCycleError) Error() string {
	return fmt.Sprintf("%s: definition cycle: %s", e.Name, strings.Join(e.Path, " -> "))
}

// CallDepthError is returned when nested user operations exceed the
// session's call depth limit.
type CallDepthError struct {
	Name  string
	Limit int
}

func (e *CallDepthError) Error() string {
	return fmt.Sprintf("%s: call depth limit %d exceeded", e.Name, e.Limit)
}

// Warning is a non fatal annotation of an evaluation, such as a division by
// zero. The offending value is kept on the stack.
type Warning struct {
	Op  string
	Pos int
	Msg string
}

func (w Warning) String() string {
	if w.Pos < 0 {
		return w.Op + ": " + w.Msg
	}
	return fmt.Sprintf("%s (column %d): %s", w.Op, w.Pos+1, w.Msg)
}
