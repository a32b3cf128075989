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
	"math"

	"fortio.org/log"
	"github.com/db47h/ada/parse"
	"github.com/pkg/errors"
)

// frame is the staging area of one Submit. Nothing reaches the session
// until commit.
type frame struct {
	s     *Session
	base  []Value // committed stack, read only
	lo    int     // base[:lo] is untouched
	top   []Value // staged values above base[:lo]
	regs  map[string]Value
	warn  []Warning
	lastx Value
	calls int
}

func (s *Session) stage() *frame {
	return &frame{s: s, base: s.stack.v, lo: len(s.stack.v), regs: make(map[string]Value), lastx: s.lastx}
}

func (f *frame) commit() {
	f.s.stack.v = append(f.s.stack.v[:f.lo], f.top...)
	for k, v := range f.regs {
		f.s.regs[k] = v
	}
	f.s.lastx = f.lastx
}

func (f *frame) depth() int { return f.lo + len(f.top) }

// pull moves values from base to top until top holds at least n values.
func (f *frame) pull(n int) {
	k := n - len(f.top)
	if k <= 0 {
		return
	}
	t := make([]Value, 0, n+4)
	t = append(t, f.base[f.lo-k:f.lo]...)
	f.top = append(t, f.top...)
	f.lo -= k
}

// peek returns a copy of the n top values, bottom first.
func (f *frame) peek(n int) []Value {
	f.pull(n)
	return append([]Value(nil), f.top[len(f.top)-n:]...)
}

func (f *frame) pop(n int) []Value {
	a := f.peek(n)
	f.top = f.top[:len(f.top)-n]
	return a
}

func (f *frame) push(v ...Value) {
	f.top = append(f.top, v...)
}

func (f *frame) register(name string) (Value, bool) {
	if v, ok := f.regs[name]; ok {
		return v, true
	}
	v, ok := f.s.regs[name]
	return v, ok
}

func (f *frame) run(toks []parse.Token) error {
	for _, t := range toks {
		if err := f.step(t); err != nil {
			return err
		}
	}
	return nil
}

func (f *frame) step(t parse.Token) error {
	switch t.Kind {
	case parse.Number:
		f.push(t.Num)
		return nil
	case parse.Symbol:
	default:
		return errors.WithStack(&SyntaxError{Pos: t.Pos, Msg: "unexpected " + t.Kind.String()})
	}
	if op, ok := f.s.ops.get(t.Text); ok {
		return f.apply(op, t.Pos)
	}
	if v, ok := f.register(t.Text); ok {
		f.push(v)
		return nil
	}
	if prefix, name, ok := parse.StoreTarget(t.Text); ok {
		return f.store(t.Text, prefix, name)
	}
	return errors.WithStack(&NameError{Name: t.Text, Pos: t.Pos})
}

func (f *frame) apply(op *Op, pos int) error {
	if op.Arity != All && f.depth() < op.Arity {
		return errors.WithStack(&StackUnderflowError{Op: op.Name, Need: op.Arity, Have: f.depth()})
	}
	log.LogVf("eval %s, depth %d", op.Name, f.depth())
	switch b := op.Behavior.(type) {
	case Constant:
		f.push(b.Value)
	case LastX:
		f.push(f.lastx)
	case Native:
		n := op.Arity
		if n == All {
			n = f.depth()
		}
		var args []Value
		if b.Keep {
			args = f.peek(n)
		} else {
			args = f.pop(n)
			if n > 0 {
				f.lastx = args[n-1]
			}
		}
		res := b.Fn(args)
		f.check(op.Name, b, pos, args, res)
		f.push(res...)
	case Macro:
		if f.calls >= f.s.maxCalls {
			return errors.WithStack(&CallDepthError{Name: op.Name, Limit: f.s.maxCalls})
		}
		f.calls++
		err := f.run(b.Body)
		f.calls--
		if err != nil {
			return errors.Wrap(err, op.Name)
		}
	default:
		panic(errors.Errorf("%s: invalid behavior %T", op.Name, op.Behavior))
	}
	return nil
}

// check records a warning if op produced a NaN or an infinity out of finite
// operands.
func (f *frame) check(op string, n Native, pos int, args, res []Value) {
	for _, a := range args {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return
		}
	}
	for _, r := range res {
		var msg string
		switch {
		case !math.IsNaN(r) && !math.IsInf(r, 0):
			continue
		case n.Pole != nil && n.Pole(args):
			msg = "division by zero"
		case math.IsNaN(r):
			msg = "undefined result"
		default:
			msg = "result out of range"
		}
		f.warn = append(f.warn, Warning{Op: op, Pos: pos, Msg: msg})
		return
	}
}

func (f *frame) store(sym, prefix, name string) error {
	if f.depth() < 1 {
		return errors.WithStack(&StackUnderflowError{Op: sym, Need: 1})
	}
	if prefix == parse.StorePrefix {
		f.regs[name] = f.peek(1)[0]
		return nil
	}
	x := f.pop(1)[0]
	v, _ := f.register(name)
	if prefix == parse.StoreAddPrefix {
		v += x
	} else {
		v -= x
	}
	f.regs[name] = v
	return nil
}

// stackEffect computes the number of operands a postfix sequence needs and
// the number of values it leaves in their place. Whole stack operators
// require nothing.
func (s *Session) stackEffect(toks []parse.Token) (need, results int) {
	d := 0
	use := func(n int) {
		if d < n {
			need += n - d
			d = n
		}
	}
	for _, t := range toks {
		if t.Kind != parse.Symbol {
			d++
			continue
		}
		op, ok := s.ops.get(t.Text)
		if !ok {
			if prefix, _, ok := parse.StoreTarget(t.Text); ok {
				use(1)
				if prefix != parse.StorePrefix {
					d--
				}
			} else {
				// register or forward reference
				d++
			}
			continue
		}
		n, _ := op.Behavior.(Native)
		switch {
		case op.Arity == All && op.Results == All:
		case op.Arity == All && n.Keep:
			d += op.Results
		case op.Arity == All:
			d = op.Results
		case n.Keep:
			use(op.Arity)
			d += op.Results
		default:
			use(op.Arity)
			d += op.Results - op.Arity
		}
		if op.Limit > 0 && d > op.Limit {
			d = op.Limit
		}
	}
	return need, d
}

// cycle returns the path from name back to itself through the user
// operations referenced by body, or nil.
func (s *Session) cycle(name string, body []parse.Token) []string {
	seen := make(map[string]bool)
	var walk func(body []parse.Token, path []string) []string
	walk = func(body []parse.Token, path []string) []string {
		for _, t := range body {
			if t.Kind != parse.Symbol {
				continue
			}
			if t.Text == name {
				return append(path, name)
			}
			if seen[t.Text] {
				continue
			}
			seen[t.Text] = true
			op, ok := s.ops.get(t.Text)
			if !ok {
				continue
			}
			if m, ok := op.Behavior.(Macro); ok {
				if p := walk(m.Body, append(path, t.Text)); p != nil {
					return p
				}
			}
		}
		return nil
	}
	return walk(body, []string{name})
}
