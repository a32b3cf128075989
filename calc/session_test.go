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

package calc_test

import (
	"bytes"
	"math"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/db47h/ada/calc"
	"github.com/pkg/errors"
)

func TestSubmit_errors(t *testing.T) {
	s := newSession(t)
	s.Push(1, 2)
	if err := s.SetRegister("reg", 7); err != nil {
		t.Fatal(err)
	}

	_, err := s.Submit("3 4 + + + +")
	if e, ok := errors.Cause(err).(*calc.StackUnderflowError); !ok || e.Op != "+" || e.Need != 2 || e.Have != 1 {
		t.Errorf("expected underflow on +, got %v", err)
	}
	_, err = s.Submit("1 foo")
	if e, ok := errors.Cause(err).(*calc.NameError); !ok || e.Name != "foo" || e.Pos != 2 {
		t.Errorf("expected name error, got %v", err)
	}
	_, err = s.Submit("(1 + 2")
	if _, ok := errors.Cause(err).(*calc.SyntaxError); !ok {
		t.Errorf("expected syntax error, got %v", err)
	}
	_, err = s.Submit("1 2..3")
	if _, ok := errors.Cause(err).(*calc.SyntaxError); !ok {
		t.Errorf("expected syntax error, got %v", err)
	}
	_, err = s.Submit("5 >reg >new drop drop drop drop drop")
	if _, ok := errors.Cause(err).(*calc.StackUnderflowError); !ok {
		t.Errorf("expected underflow, got %v", err)
	}

	// nothing changed
	if st := s.Stack(); !sameStack(st, V{1, 2}) {
		t.Errorf("stack modified: %v", st)
	}
	if v, _ := s.Register("reg"); v != 7 {
		t.Errorf("register reg modified: %v", v)
	}
	if _, ok := s.Register("new"); ok {
		t.Error("register new created")
	}

	// the session still works
	res, err := s.Submit("+ reg +")
	if err != nil || !sameStack(res.Stack, V{10}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
}

func TestSubmit_continued(t *testing.T) {
	data := []struct {
		stack V
		in    string
		want  V
	}{
		{V{3}, "5 + 2 *", V{16}},
		{V{100}, "10 / 2 +", V{12}},
		{V{2}, "3 ^ 2 -", V{6}},
		{V{1, 2}, "+ 2 /", V{1.5}},
		{V{4}, "* (2 + 1)", V{12}},
	}
	for _, d := range data {
		s := newSession(t)
		s.Push(d.stack...)
		res, err := s.Submit(d.in)
		if err != nil {
			t.Errorf("%v %q: %+v", d.stack, d.in, err)
			continue
		}
		if !sameStack(res.Stack, d.want) {
			t.Errorf("%v %q: expected %v, got %v", d.stack, d.in, d.want, res.Stack)
		}
	}
}

func TestSubmit_storeUnderflow(t *testing.T) {
	s := newSession(t)
	_, err := s.Submit(">a")
	if e, ok := errors.Cause(err).(*calc.StackUnderflowError); !ok || e.Op != ">a" {
		t.Errorf("expected underflow, got %v", err)
	}
}

func TestRegisters(t *testing.T) {
	s := newSession(t)
	if err := s.SetRegister("rate", 0.5); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister("2bad", 1); err == nil {
		t.Error("invalid name accepted")
	}
	res, err := s.Submit("10 rate * >half")
	if err != nil {
		t.Fatal(err)
	}
	if !sameStack(res.Stack, V{5}) {
		t.Errorf("got %v", res.Stack)
	}
	if v, ok := s.Register("half"); !ok || v != 5 {
		t.Errorf("half = %v, %v", v, ok)
	}
	if names := s.RegisterNames(); !reflect.DeepEqual(names, []string{"half", "rate"}) {
		t.Errorf("got names %v", names)
	}

	// operators shadow registers
	if err := s.SetRegister("e", 42); err != nil {
		t.Fatal(err)
	}
	res, _ = s.Submit("c e")
	if !sameStack(res.Stack, V{math.E}) {
		t.Errorf("register e not shadowed: %v", res.Stack)
	}

	if !s.DeleteRegister("rate") || s.DeleteRegister("rate") {
		t.Error("DeleteRegister")
	}
	if _, err := s.Submit("rate"); err == nil {
		t.Error("deleted register still visible")
	}
	regs := s.Registers()
	regs["half"] = 0
	if v, _ := s.Register("half"); v != 5 {
		t.Error("Registers did not return a copy")
	}
}

func TestDefine(t *testing.T) {
	s := newSession(t)
	for _, d := range []struct {
		name, body string
		arity      int
	}{
		{"sq", "dup *", -1},
		{"avg2", "+ 2 /", 2},
		{"hyp", "sq swap sq + sqrt", 2},
		{"twenty", "(2 + 3) * 4", 0},
		{"++", "1 +", 1},
	} {
		if err := s.Define(d.name, d.body, d.arity); err != nil {
			t.Fatalf("%s: %+v", d.name, err)
		}
	}
	data := []struct {
		in    string
		stack V
	}{
		{"3 sq", V{9}},
		{"3 5 avg2", V{4}},
		{"3 4 hyp", V{5}},
		{"twenty 1 +", V{21}},
		{"1 ++ ++", V{3}},
		{"2 + (3 sq)", V{11}},
		{"1 2 avg2 * 4", V{6}},
	}
	for _, d := range data {
		res, err := s.Submit("c " + d.in)
		if err != nil {
			t.Errorf("%q: %+v", d.in, err)
			continue
		}
		if !sameStack(res.Stack, d.stack) {
			t.Errorf("%q: expected %v, got %v", d.in, d.stack, res.Stack)
		}
	}

	op, ok := s.Lookup("hyp")
	if !ok || op.Arity != 2 || op.Results != 1 || op.Kind != calc.User {
		t.Errorf("bad descriptor %+v", op)
	}

	// underflow is checked before running the body
	s.Submit("c 1")
	_, err := s.Submit("hyp")
	if e, ok := errors.Cause(err).(*calc.StackUnderflowError); !ok || e.Op != "hyp" {
		t.Errorf("expected underflow, got %v", err)
	}
	if st := s.Stack(); !sameStack(st, V{1}) {
		t.Errorf("stack modified: %v", st)
	}
}

func TestDefine_errors(t *testing.T) {
	s := newSession(t)
	err := s.Define("sq", "dup *", 2)
	if e, ok := errors.Cause(err).(*calc.ArityMismatchError); !ok || e.Claimed != 2 || e.Required != 1 {
		t.Errorf("expected arity mismatch, got %v", err)
	}
	if err = s.Define("loop", "loop 1 +", -1); err == nil {
		t.Error("direct recursion accepted")
	} else if e, ok := errors.Cause(err).(*calc.DefinitionCycleError); !ok || !reflect.DeepEqual(e.Path, []string{"loop", "loop"}) {
		t.Errorf("expected cycle error, got %v", err)
	}

	// forward references are fine until they close a cycle
	if err = s.Define("a", "b 1 +", -1); err != nil {
		t.Fatal(err)
	}
	err = s.Define("b", "a 2 *", -1)
	if e, ok := errors.Cause(err).(*calc.DefinitionCycleError); !ok || !reflect.DeepEqual(e.Path, []string{"b", "a", "b"}) {
		t.Errorf("expected cycle error, got %v", err)
	}
	if _, ok := s.Lookup("b"); ok {
		t.Error("b defined")
	}
	_, err = s.Submit("1 a")
	if e, ok := errors.Cause(err).(*calc.NameError); !ok || e.Name != "b" {
		t.Errorf("expected name error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "a: ") {
		t.Errorf("error does not name the operation: %v", err)
	}

	for _, name := range []string{"", "2x", ">a", "a b", "("} {
		if err := s.Define(name, "1", -1); err == nil {
			t.Errorf("invalid name %q accepted", name)
		}
	}
	if err := s.Define("empty", "  ", -1); err == nil {
		t.Error("empty body accepted")
	}
	if err := s.Define("unbalanced", "(1 +", -1); err == nil {
		t.Error("unbalanced body accepted")
	}
}

func TestDefine_redefine(t *testing.T) {
	s := newSession(t)
	if err := s.Define("f", "2 *", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Define("g", "f 1 +", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Define("f", "3 *", 1); err != nil {
		t.Fatal(err)
	}
	res, err := s.Submit("1 g")
	if err != nil || !sameStack(res.Stack, V{4}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
	// f keeps its listing position
	var names []string
	for _, op := range s.Operators() {
		if op.Kind == calc.User {
			names = append(names, op.Name)
		}
	}
	if !reflect.DeepEqual(names, []string{"f", "g"}) {
		t.Errorf("got %v", names)
	}
}

func TestDefine_builtin(t *testing.T) {
	s := newSession(t)
	if err := s.Define("+", "*", -1); err != nil {
		t.Fatal(err)
	}
	if res, err := s.Submit("2 3 +"); err != nil || !sameStack(res.Stack, V{6}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
	if op, _ := s.Lookup("+"); op.Kind != calc.User {
		t.Errorf("+ is %v", op.Kind)
	}
	s.ResetOperators()
	if res, err := s.Submit("c 2 3 +"); err != nil || !sameStack(res.Stack, V{5}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
	if op, ok := s.Lookup("+"); !ok || op.Kind != calc.Builtin || !op.Infix {
		t.Errorf("built-in + not restored: %+v", op)
	}
}

func TestDefine_forward(t *testing.T) {
	s := newSession(t)
	if err := s.Define("f", "g", -1); err != nil {
		t.Fatal(err)
	}
	if err := s.Define("h", "f 10 *", -1); err != nil {
		t.Fatal(err)
	}
	if op, _ := s.Lookup("f"); op.Arity != 0 || op.Results != 1 {
		t.Errorf("f: %s", op.Usage())
	}
	if err := s.Define("g", "+", -1); err != nil {
		t.Fatal(err)
	}
	for _, d := range []struct{ name, usage string }{
		{"f", "f: 2 -> 1"},
		{"h", "h: 2 -> 1"},
	} {
		if op, _ := s.Lookup(d.name); op.Usage() != d.usage {
			t.Errorf("expected %q, got %q", d.usage, op.Usage())
		}
	}
	if res, err := s.Submit("2 3 h"); err != nil || !sameStack(res.Stack, V{50}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
	if err := s.Undefine("g"); err != nil {
		t.Fatal(err)
	}
	if op, _ := s.Lookup("h"); op.Arity != 0 || op.Results != 1 {
		t.Errorf("h: %s", op.Usage())
	}
	if err := s.DefineConstant("g", 4); err != nil {
		t.Fatal(err)
	}
	if res, err := s.Submit("c h"); err != nil || !sameStack(res.Stack, V{40}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
}

func TestDefine_trim(t *testing.T) {
	s := newSession(t)
	if err := s.Define("t2", "trim +", -1); err != nil {
		t.Fatal(err)
	}
	op, _ := s.Lookup("t2")
	if op.Arity != 2 || op.Results != 1 {
		t.Errorf("t2: %s", op.Usage())
	}
	if op, _ := s.Lookup("trim"); op.Usage() != "trim: all -> at most 4" {
		t.Errorf("got %q", op.Usage())
	}
	res, err := s.Submit("1 2 3 4 5 6 t2")
	if err != nil || !sameStack(res.Stack, V{3, 4, 11}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
}

func TestLookup_copy(t *testing.T) {
	s := newSession(t)
	mul, _ := s.Lookup("*")
	op, _ := s.Lookup("+")
	op.Behavior = mul.Behavior
	op.Arity = 3
	if again, _ := s.Lookup("+"); again.Arity == op.Arity {
		t.Error("Lookup shares the registered operator")
	}
	ops := s.Operators()
	for i := range ops {
		ops[i].Behavior = mul.Behavior
	}
	if err := s.Define("sum3", "+ +", 3); err != nil {
		t.Fatal(err)
	}
	u, _ := s.Lookup("sum3")
	u.Behavior.(calc.Macro).Body[0].Text = "*"

	for _, s := range []*calc.Session{s, newSession(t)} {
		if res, err := s.Submit("2 3 +"); err != nil || !sameStack(res.Stack, V{5}) {
			t.Errorf("got %v, %v", res.Stack, err)
		}
	}
	if res, err := s.Submit("c 2 3 4 sum3"); err != nil || !sameStack(res.Stack, V{9}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
}

func TestUndefine(t *testing.T) {
	s := newSession(t)
	n := len(s.Operators())
	if err := s.DefineConstant("pi", 3); err != nil {
		t.Fatal(err)
	}
	if err := s.DefineConstant("answer", 42); err != nil {
		t.Fatal(err)
	}
	if res, _ := s.Submit("pi answer"); !sameStack(res.Stack, V{3, 42}) {
		t.Errorf("got %v", res.Stack)
	}
	if err := s.Undefine("pi"); err != nil {
		t.Fatal(err)
	}
	if res, _ := s.Submit("c pi"); !sameStack(res.Stack, V{math.Pi}) {
		t.Errorf("built-in pi not restored: %v", res.Stack)
	}
	if err := s.Undefine("sqrt"); err == nil {
		t.Error("built-in removed")
	}
	if err := s.Undefine("nothing"); err == nil {
		t.Error("undefined name removed")
	}
	s.ResetOperators()
	if _, ok := s.Lookup("answer"); ok {
		t.Error("answer survived ResetOperators")
	}
	if len(s.Operators()) != n {
		t.Errorf("expected %d operators, got %d", n, len(s.Operators()))
	}
}

func TestMaxCallDepth(t *testing.T) {
	s := newSession(t, calc.MaxCallDepth(1))
	if err := s.Define("inc", "1 +", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Define("inc2", "inc inc", 1); err != nil {
		t.Fatal(err)
	}
	if res, err := s.Submit("0 inc"); err != nil || !sameStack(res.Stack, V{1}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
	_, err := s.Submit("inc2")
	if e, ok := errors.Cause(err).(*calc.CallDepthError); !ok || e.Name != "inc" {
		t.Errorf("expected call depth error, got %v", err)
	}
	if _, err := calc.New(calc.MaxCallDepth(0)); err == nil {
		t.Error("MaxCallDepth(0) accepted")
	}
}

func TestTape(t *testing.T) {
	s := newSession(t)
	s.Submit("1 2 +")
	s.Submit("foo")
	s.Submit("1 0 /")
	tape := s.Tape()
	if len(tape) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(tape))
	}
	for i, e := range tape {
		if e.Seq != i+1 {
			t.Errorf("entry %d: seq %d", i, e.Seq)
		}
	}
	if tape[0].Input != "1 2 +" || tape[0].Err != nil || !sameStack(tape[0].Stack, V{3}) {
		t.Errorf("bad entry %+v", tape[0])
	}
	if tape[1].Err == nil || !sameStack(tape[1].Stack, V{3}) {
		t.Errorf("bad entry %+v", tape[1])
	}
	if len(tape[2].Warnings) != 1 || !sameStack(tape[2].Stack, V{3, math.Inf(1)}) {
		t.Errorf("bad entry %+v", tape[2])
	}

	s.Reset()
	if len(s.Tape()) != 0 || s.Depth() != 0 {
		t.Error("Reset did not clear the session")
	}

	s = newSession(t, calc.NoTape())
	s.Submit("1")
	if len(s.Tape()) != 0 {
		t.Error("NoTape")
	}
}

func TestTape_copy(t *testing.T) {
	s := newSession(t)
	res, _ := s.Submit("1 2")
	res.Stack[0] = 99
	s.Tape()[0].Stack[1] = 77
	s.Submit("1 0 /")
	s.Tape()[1].Warnings[0].Msg = "changed"
	tape := s.Tape()
	if !sameStack(tape[0].Stack, V{1, 2}) {
		t.Errorf("got %v", tape[0].Stack)
	}
	if tape[1].Warnings[0].Msg != "division by zero" {
		t.Errorf("got %v", tape[1].Warnings)
	}
	if !sameStack(s.Stack(), V{1, 2, math.Inf(1)}) {
		t.Errorf("got %v", s.Stack())
	}
}

func TestDescriptors(t *testing.T) {
	s := newSession(t)
	if err := s.Define("sq", "dup *", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Define("cube", "dup sq *", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.DefineConstant("g", 9.81); err != nil {
		t.Fatal(err)
	}
	ops := s.UserOperations()
	want := []calc.OpDescriptor{{Name: "sq", Arity: 1, Body: "dup *"}, {Name: "cube", Arity: 1, Body: "dup sq *"}}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("got %+v", ops)
	}
	cs := s.UserConstants()
	if !reflect.DeepEqual(cs, []calc.ConstDescriptor{{Name: "g", Value: 9.81}}) {
		t.Errorf("got %+v", cs)
	}
	if _, err := s.SaveOperation("sqrt"); err == nil {
		t.Error("saved a built-in")
	}
	if _, err := s.SaveOperation("g"); err == nil {
		t.Error("saved a constant as an operation")
	}
	if _, err := s.SaveConstant("sq"); err == nil {
		t.Error("saved an operation as a constant")
	}

	r := newSession(t)
	for _, d := range ops {
		if err := r.LoadOperation(d); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range cs {
		if err := r.LoadConstant(d); err != nil {
			t.Fatal(err)
		}
	}
	if res, err := r.Submit("2 cube g"); err != nil || !sameStack(res.Stack, V{8, 9.81}) {
		t.Errorf("got %v, %v", res.Stack, err)
	}
}

func TestDescribe(t *testing.T) {
	s := newSession(t)
	s.Define("sq", "dup *", 1)
	s.SetRegister("reg", 2)
	for name, want := range map[string]string{
		"+":    "+: 2 -> 1, infix prec 1\n\ty plus x",
		"^":    "^: 2 -> 1, infix right-assoc prec 3\n\ty to the power of x",
		"sum":  "sum: all -> all+1\n\tsum of the stack",
		"dup":  "dup: 1 -> 1+1\n\tduplicate x",
		"sq":   "sq: 1 -> 1\n\tdefined as: dup *",
		"reg":  "reg: register = 2",
		"pi":   "pi: 0 -> 1\n\tpi",
		"ru":   "ru: all -> all\n\troll the stack up: x becomes y and the bottom value becomes x (same as rollup)",
		"sqrt": "sqrt: 1 -> 1\n\tsquare root of x",
	} {
		got, err := s.Describe(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
	if _, err := s.Describe("nope"); err == nil {
		t.Error("no error for unknown name")
	}
}

func TestStats(t *testing.T) {
	s := newSession(t)
	if _, err := s.Stats(); err == nil {
		t.Error("no error on empty stack")
	}
	s.Ingest(V{2, 4, 4, 4, 5, 5, 7, 9})
	sum, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 8 || !same(sum.Mean, 5) || !same(sum.Median, 4.5) || !same(sum.Min, 2) ||
		!same(sum.Max, 9) || !same(sum.Sum, 40) || !same(sum.SDev, math.Sqrt(32.0/7)) {
		t.Errorf("got %+v", sum)
	}
	if s.Depth() != 8 {
		t.Error("stack modified")
	}

	s.Reset()
	s.Push(3)
	sum, _ = s.Stats()
	if !math.IsNaN(sum.SDev) || sum.Median != 3 {
		t.Errorf("got %+v", sum)
	}
}

func TestMedian(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		n := rnd.Intn(50) + 1
		v := make(V, n)
		for j := range v {
			// few distinct values to exercise duplicates
			v[j] = calc.Value(rnd.Intn(10))
		}
		s := newSession(t)
		s.Ingest(v)
		sum, err := s.Stats()
		if err != nil {
			t.Fatal(err)
		}
		sorted := append(V(nil), v...)
		sort.Float64s(sorted)
		want := sorted[n/2]
		if n%2 == 0 {
			want = (sorted[n/2-1] + sorted[n/2]) / 2
		}
		if sum.Median != want {
			t.Fatalf("%v: expected median %v, got %v", v, want, sum.Median)
		}
		if !reflect.DeepEqual(s.Stack(), []calc.Value(v)) {
			t.Fatal("stack modified")
		}
	}
}

func TestDump(t *testing.T) {
	s := newSession(t)
	s.Define("sq", "dup *", 1)
	s.DefineConstant("g", 9.81)
	s.Submit("3 sq >nine")
	s.Submit("oops")
	var b bytes.Buffer
	if err := s.Dump(&b); err != nil {
		t.Fatal(err)
	}
	want := "stack: 9\n" +
		"register nine = 9\n" +
		"operation sq/1 = dup *\n" +
		"constant g = 9.81\n" +
		"1\t3 sq >nine\t[9]\n" +
		"2\toops\terror: unknown name \"oops\"\n"
	if b.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, b.String())
	}
}
