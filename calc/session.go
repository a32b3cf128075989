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
	"io"
	"sort"
	"strconv"

	"fortio.org/log"
	"github.com/db47h/ada/internal/iox"
	"github.com/db47h/ada/parse"
	"github.com/pkg/errors"
)

// DefaultMaxCallDepth is the default limit on nested user operation calls.
const DefaultMaxCallDepth = 256

// Result is the outcome of a Submit call.
type Result struct {
	Stack    []Value // stack contents after the call, bottom first
	Warnings []Warning
}

// TapeEntry records one Submit call.
type TapeEntry struct {
	Seq      int
	Input    string
	Stack    []Value // stack after the call
	Warnings []Warning
	Err      error // nil on success
}

// Session is a calculator session: a value stack, named registers, an
// operator registry and a tape of past input.
//
// A Session is not safe for concurrent use.
type Session struct {
	stack    Stack
	regs     map[string]Value
	ops      *Registry
	tape     []TapeEntry
	lastx    Value
	maxCalls int
	tapeOff  bool
}

// Option interface
type Option func(*Session) error

// MaxCallDepth sets the maximum nesting of user operations. The default is
// DefaultMaxCallDepth.
func MaxCallDepth(n int) Option {
	return func(s *Session) error {
		if n < 1 {
			return errors.Errorf("invalid call depth %d", n)
		}
		s.maxCalls = n
		return nil
	}
}

// NoTape disables recording of submitted lines.
func NoTape() Option {
	return func(s *Session) error { s.tapeOff = true; return nil }
}

// SetOptions sets the provided options.
func (s *Session) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

// New returns a new session with an empty stack and the built-in operators.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		regs:     make(map[string]Value),
		ops:      NewRegistry(),
		maxCalls: DefaultMaxCallDepth,
	}
	if err := s.SetOptions(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// lexicon exposes the session names to the parser, on top of a stack
// holding depth values.
type lexicon struct {
	s     *Session
	depth int
}

func (l lexicon) Operator(name string) (parse.Operator, bool) {
	if op, ok := l.s.ops.get(name); ok {
		return op.operator(), true
	}
	if prefix, _, ok := parse.StoreTarget(name); ok {
		if prefix == parse.StorePrefix {
			return parse.Operator{Arity: 1, Keep: true}, true
		}
		return parse.Operator{Arity: 1}, true
	}
	return parse.Operator{}, false
}

func (l lexicon) Known(name string) bool {
	if _, ok := l.s.ops.get(name); ok {
		return true
	}
	_, ok := l.s.regs[name]
	return ok
}

func (l lexicon) Depth() int { return l.depth }

// Lexicon returns the parser view of the session's operators, registers and
// current stack depth.
func (s *Session) Lexicon() parse.Lexicon { return lexicon{s, s.stack.Len()} }

// Submit evaluates one line of input. On error, the stack and registers are
// left as they were before the call. Every call is recorded on the tape.
func (s *Session) Submit(line string) (Result, error) {
	var res Result
	toks, err := parse.Parse(line, s.Lexicon())
	if err == nil {
		f := s.stage()
		if err = f.run(toks); err == nil {
			f.commit()
			res.Warnings = f.warn
		}
	}
	res.Stack = s.stack.Values()
	if err != nil {
		log.LogVf("submit %q: %v", line, err)
	}
	if !s.tapeOff {
		s.tape = append(s.tape, TapeEntry{
			Seq:      len(s.tape) + 1,
			Input:    line,
			Stack:    s.stack.Values(),
			Warnings: append([]Warning(nil), res.Warnings...),
			Err:      err,
		})
	}
	return res, err
}

// Tape returns a copy of the tape.
func (s *Session) Tape() []TapeEntry {
	tape := make([]TapeEntry, len(s.tape))
	for i, e := range s.tape {
		e.Stack = append([]Value(nil), e.Stack...)
		e.Warnings = append([]Warning(nil), e.Warnings...)
		tape[i] = e
	}
	return tape
}

// Operators returns copies of the registered operators in listing order.
func (s *Session) Operators() []Op {
	return s.ops.Ops()
}

// Lookup returns a copy of the operator registered under name.
func (s *Session) Lookup(name string) (Op, bool) {
	return s.ops.Lookup(name)
}

// Describe returns the help text for an operator or register.
func (s *Session) Describe(name string) (string, error) {
	if op, ok := s.ops.get(name); ok {
		d := op.Usage()
		if op.Help != "" {
			d += "\n\t" + op.Help
		}
		if src := op.Source(); src != "" {
			d += "\n\tdefined as: " + src
		}
		return d, nil
	}
	if v, ok := s.regs[name]; ok {
		return name + ": register = " + strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return "", errors.WithStack(&NameError{Name: name, Pos: -1})
}

func validName(name string) bool {
	return parse.IsIdent(name) || parse.IsOperatorName(name) && name[0] != '>'
}

// Define defines or redefines the user operation name. body is a line of
// input, RPN or infix, evaluated whenever name is invoked. If arity is not
// negative, it must match the number of operands body requires, and body is
// parsed as if that many values were on the stack. Names used in body that
// are not defined yet are resolved when name is invoked; the stack effect of
// name is updated when they get defined.
func (s *Session) Define(name, body string, arity int) error {
	return s.define(name, body, arity, "")
}

func (s *Session) define(name, body string, arity int, help string) error {
	if !validName(name) {
		return errors.Errorf("invalid operation name %q", name)
	}
	lex := lexicon{s: s}
	if arity > 0 {
		lex.depth = arity
	}
	toks, err := parse.Parse(body, lex)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if len(toks) == 0 {
		return errors.Errorf("%s: empty definition", name)
	}
	need, results := s.stackEffect(toks)
	if arity >= 0 && arity != need {
		return errors.WithStack(&ArityMismatchError{Name: name, Claimed: arity, Required: need})
	}
	if path := s.cycle(name, toks); path != nil {
		return errors.WithStack(&DefinitionCycleError{Name: name, Path: path})
	}
	s.ops.Define(&Op{
		Name:     name,
		Arity:    need,
		Results:  results,
		Kind:     User,
		Help:     help,
		Behavior: Macro{Body: toks},
	})
	log.Debugf("defined %s (%d -> %d): %s", name, need, results, parse.Format(toks))
	s.refresh(name)
	return nil
}

// refresh recomputes the stack effect of the user operations that refer,
// directly or not, to name.
func (s *Session) refresh(name string) {
	changed := map[string]bool{name: true}
	for n := s.ops.Len(); len(changed) > 0 && n > 0; n-- {
		next := make(map[string]bool)
		for _, op := range s.ops.all() {
			m, ok := op.Behavior.(Macro)
			if !ok || op.Name == name || !refers(m.Body, changed) {
				continue
			}
			need, results := s.stackEffect(m.Body)
			if need == op.Arity && results == op.Results {
				continue
			}
			log.Debugf("%s: stack effect changed to %d -> %d", op.Name, need, results)
			c := *op
			c.Arity, c.Results = need, results
			s.ops.Define(&c)
			next[op.Name] = true
		}
		changed = next
	}
}

func refers(body []parse.Token, names map[string]bool) bool {
	for _, t := range body {
		if t.Kind == parse.Symbol && names[t.Text] {
			return true
		}
	}
	return false
}

// DefineConstant defines or redefines a user constant.
func (s *Session) DefineConstant(name string, v Value) error {
	return s.defineConstant(name, v, "")
}

func (s *Session) defineConstant(name string, v Value, help string) error {
	if !parse.IsIdent(name) {
		return errors.Errorf("invalid constant name %q", name)
	}
	s.ops.Define(&Op{Name: name, Results: 1, Kind: User, Help: help, Behavior: Constant{v}})
	log.Debugf("defined constant %s = %v", name, v)
	s.refresh(name)
	return nil
}

// Undefine removes a user operation or constant. A built-in operator of the
// same name becomes visible again.
func (s *Session) Undefine(name string) error {
	if err := s.ops.Undefine(name); err != nil {
		return err
	}
	s.refresh(name)
	return nil
}

// ResetOperators removes all user operations and constants.
func (s *Session) ResetOperators() {
	s.ops.Reset()
}

// Reset returns the session to its initial state: empty stack, no
// registers, no user definitions and an empty tape.
func (s *Session) Reset() {
	s.stack.Clear()
	s.regs = make(map[string]Value)
	s.ops.Reset()
	s.tape = nil
	s.lastx = 0
}

// Push pushes values onto the stack.
func (s *Session) Push(v ...Value) {
	s.stack.Push(v...)
}

// Ingest pushes a column of values in order, the last one ending up in x.
func (s *Session) Ingest(column []Value) {
	s.stack.Push(column...)
	log.Debugf("ingested %d values", len(column))
}

// Stack returns a copy of the stack, bottom first.
func (s *Session) Stack() []Value {
	return s.stack.Values()
}

// Depth returns the stack depth.
func (s *Session) Depth() int {
	return s.stack.Len()
}

// Register returns the value of register name.
func (s *Session) Register(name string) (Value, bool) {
	v, ok := s.regs[name]
	return v, ok
}

// SetRegister sets register name to v, creating it if necessary.
func (s *Session) SetRegister(name string, v Value) error {
	if !parse.IsIdent(name) {
		return errors.Errorf("invalid register name %q", name)
	}
	s.regs[name] = v
	return nil
}

// DeleteRegister removes register name and reports whether it existed.
func (s *Session) DeleteRegister(name string) bool {
	_, ok := s.regs[name]
	delete(s.regs, name)
	return ok
}

// Registers returns a copy of the register bank.
func (s *Session) Registers() map[string]Value {
	m := make(map[string]Value, len(s.regs))
	for k, v := range s.regs {
		m[k] = v
	}
	return m
}

// RegisterNames returns the sorted register names.
func (s *Session) RegisterNames() []string {
	names := make([]string, 0, len(s.regs))
	for k := range s.regs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Stats returns summary statistics of the stack, leaving it untouched.
func (s *Session) Stats() (Summary, error) {
	return summarize(s.stack.v)
}

func fmtValue(v Value) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Dump writes the stack, registers, user definitions and tape to w in a
// line oriented text form.
func (s *Session) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	ew.WriteString("stack:")
	for _, v := range s.stack.v {
		ew.WriteString(" " + fmtValue(v))
	}
	ew.WriteString("\n")
	for _, name := range s.RegisterNames() {
		ew.Printf("register %s = %s\n", name, fmtValue(s.regs[name]))
	}
	for _, op := range s.ops.all() {
		if op.Kind != User {
			continue
		}
		switch b := op.Behavior.(type) {
		case Constant:
			ew.Printf("constant %s = %s\n", op.Name, fmtValue(b.Value))
		case Macro:
			ew.Printf("operation %s/%d = %s\n", op.Name, op.Arity, parse.Format(b.Body))
		}
	}
	for _, e := range s.tape {
		ew.Printf("%d\t%s\t", e.Seq, e.Input)
		if e.Err != nil {
			ew.Printf("error: %v\n", e.Err)
			continue
		}
		ew.WriteString("[")
		for i, v := range e.Stack {
			if i > 0 {
				ew.WriteString(" ")
			}
			ew.WriteString(fmtValue(v))
		}
		ew.WriteString("]\n")
	}
	return ew.Err
}
