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


package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fortio.org/log"
	"github.com/db47h/ada/calc"
	"github.com/db47h/ada/parse"
	"github.com/db47h/ada/store"
	"github.com/pkg/errors"
)

// command is a shell meta command, invoked as :name args.
type command struct {
	name string
	args string
	help string
	show bool // print the register view afterwards
	run  func(sh *shell, args []string, rest string) error
}

var commands []*command

func init() {
	commands = []*command{
		{name: "q", help: "quit", run: cmdQuit},
		{name: "help", args: "[name]", help: "list commands, or describe an operator, register or command", run: cmdHelp},
		{name: "ops", help: "list operators", run: cmdOps},
		{name: "def", args: "name[/arity] body", help: "define an operation", run: cmdDef},
		{name: "const", args: "name [value]", help: "define a constant, x by default", run: cmdConst},
		{name: "undef", args: "name", help: "remove a user operation or constant", run: cmdUndef},
		{name: "regs", help: "list registers", run: cmdRegs},
		{name: "rm", args: "name", help: "delete a register", run: cmdRm},
		{name: "tape", help: "show the session tape", run: cmdTape},
		{name: "stats", help: "summary statistics of the stack", run: cmdStats},
		{name: "list", help: "list user operations and constants", run: cmdList},
		{name: "decbin", help: "show x in binary", run: cmdDecBin},
		{name: "dechex", help: "show x in hexadecimal", run: cmdDecHex},
		{name: "rgb", args: "#rrggbb", help: "push the red, green and blue components of a color", show: true, run: cmdRGB},
		{name: "hex", help: "show the color with components z, y and x as #RRGGBB", run: cmdHex},
		{name: "alpha", help: "show the hex alpha byte of the opacity x, in percent", run: cmdAlpha},
		{name: "import", args: "file", help: "push a column of numbers read from file", show: true, run: cmdImport},
		{name: "save", args: "[file]", help: "save user definitions and registers", run: cmdSave},
		{name: "load", args: "[file]", help: "load user definitions and registers", run: cmdLoad},
		{name: "reset", help: "remove all user operations and constants", run: cmdReset},
		{name: "new", help: "start over with an empty session", show: true, run: cmdNew},
		{name: "set", args: "[prec|sep value]", help: "show or change display settings", show: true, run: cmdSet},
	}
}

func lookupCommand(name string) *command {
	for _, c := range commands {
		if c.name == name {
			return c
		}
	}
	if name == "quit" {
		return commands[0]
	}
	return nil
}

func (c *command) usage() string {
	if c.args == "" {
		return ":" + c.name
	}
	return ":" + c.name + " " + c.args
}

func usageError(c *command) error {
	return errors.Errorf("usage: %s", c.usage())
}

func cmdQuit(sh *shell, _ []string, _ string) error {
	sh.quit = true
	return nil
}

func cmdHelp(sh *shell, args []string, _ string) error {
	if len(args) == 0 {
		lines := []string{
			"Enter numbers and operators, in RPN or infix with parentheses.",
			"An empty line duplicates x. Commands:",
		}
		for _, c := range commands {
			lines = append(lines, fmt.Sprintf("  %-26s %s", c.usage(), c.help))
		}
		return sh.pg.print(lines)
	}
	name := args[0]
	if strings.HasPrefix(name, ":") {
		c := lookupCommand(name[1:])
		if c == nil {
			return errors.Errorf("unknown command %q", name)
		}
		return sh.pg.print([]string{c.usage(), "\t" + c.help})
	}
	d, err := sh.s.Describe(name)
	if err != nil {
		return err
	}
	return sh.pg.print(strings.Split(d, "\n"))
}

func cmdOps(sh *shell, _ []string, _ string) error {
	var lines []string
	for _, op := range sh.s.Operators() {
		lines = append(lines, fmt.Sprintf("%-28s %s", op.Usage(), op.Help))
	}
	return sh.pg.print(lines)
}

// parseDef splits the arguments of :def. A trailing /n on the name sets the
// arity, otherwise it is inferred from the body.
func parseDef(rest string) (name string, arity int, body string, err error) {
	i := strings.IndexAny(rest, " \t")
	if i < 0 {
		return "", 0, "", errors.New("missing body")
	}
	name, body, arity = rest[:i], strings.TrimSpace(rest[i+1:]), -1
	if j := strings.LastIndexByte(name, '/'); j > 0 && j < len(name)-1 {
		if n, err := strconv.Atoi(name[j+1:]); err == nil && n >= 0 {
			name, arity = name[:j], n
		}
	}
	return name, arity, body, nil
}

func cmdDef(sh *shell, args []string, rest string) error {
	name, arity, body, err := parseDef(rest)
	if err != nil {
		return usageError(lookupCommand("def"))
	}
	if err = sh.s.Define(name, body, arity); err != nil {
		return err
	}
	op, _ := sh.s.Lookup(name)
	log.Infof("defined %s", op.Usage())
	return nil
}

// parseNumber parses a single number with the calculator input syntax.
func parseNumber(s string) (float64, error) {
	toks, err := parse.Tokenize(s, nil)
	if err != nil {
		return 0, err
	}
	if len(toks) != 1 || toks[0].Kind != parse.Number {
		return 0, errors.Errorf("%q is not a number", s)
	}
	return toks[0].Num, nil
}

func cmdConst(sh *shell, args []string, _ string) error {
	var v float64
	switch len(args) {
	case 1:
		st := sh.s.Stack()
		if len(st) == 0 {
			return errors.WithStack(&calc.StackUnderflowError{Op: ":const", Need: 1})
		}
		v = st[len(st)-1]
	case 2:
		var err error
		if v, err = parseNumber(args[1]); err != nil {
			return err
		}
	default:
		return usageError(lookupCommand("const"))
	}
	if err := sh.s.DefineConstant(args[0], v); err != nil {
		return err
	}
	log.Infof("%s = %s", args[0], sh.view().format(v))
	return nil
}

func cmdUndef(sh *shell, args []string, _ string) error {
	if len(args) != 1 {
		return usageError(lookupCommand("undef"))
	}
	return sh.s.Undefine(args[0])
}

func cmdRegs(sh *shell, _ []string, _ string) error {
	names := sh.s.RegisterNames()
	if len(names) == 0 {
		return sh.pg.print([]string{"no registers"})
	}
	vw := sh.view()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		v, _ := sh.s.Register(name)
		lines = append(lines, name+" = "+vw.format(v))
	}
	return sh.pg.print(lines)
}

func cmdRm(sh *shell, args []string, _ string) error {
	if len(args) != 1 {
		return usageError(lookupCommand("rm"))
	}
	if !sh.s.DeleteRegister(args[0]) {
		return errors.WithStack(&calc.NameError{Name: args[0], Pos: -1})
	}
	return nil
}

func cmdTape(sh *shell, _ []string, _ string) error {
	vw := sh.view()
	var lines []string
	for _, e := range sh.s.Tape() {
		out := "(empty)"
		switch {
		case e.Err != nil:
			out = "error: " + e.Err.Error()
		case len(e.Stack) > 0:
			out = "x: " + vw.format(e.Stack[len(e.Stack)-1])
		}
		lines = append(lines, fmt.Sprintf("%4d  %-30s %s", e.Seq, e.Input, out))
		for _, w := range e.Warnings {
			lines = append(lines, "      warning: "+w.String())
		}
	}
	return sh.pg.print(lines)
}

func cmdStats(sh *shell, _ []string, _ string) error {
	sum, err := sh.s.Stats()
	if err != nil {
		return err
	}
	vw := sh.view()
	return sh.pg.print([]string{
		"count:  " + strconv.Itoa(sum.Count),
		"sum:    " + vw.format(sum.Sum),
		"mean:   " + vw.format(sum.Mean),
		"median: " + vw.format(sum.Median),
		"sdev:   " + vw.format(sum.SDev),
		"min:    " + vw.format(sum.Min),
		"max:    " + vw.format(sum.Max),
	})
}

func cmdList(sh *shell, _ []string, _ string) error {
	var lines []string
	for _, d := range sh.s.UserConstants() {
		lines = append(lines, fmt.Sprintf("%s = %s", d.Name, strconv.FormatFloat(d.Value, 'g', -1, 64)))
	}
	for _, d := range sh.s.UserOperations() {
		lines = append(lines, fmt.Sprintf("%s/%d = %s", d.Name, d.Arity, d.Body))
	}
	if len(lines) == 0 {
		lines = append(lines, "no user definitions")
	}
	return sh.pg.print(lines)
}

// top returns the n topmost values of the stack, x last.
func (sh *shell) top(cmd string, n int) ([]float64, error) {
	st := sh.s.Stack()
	if len(st) < n {
		return nil, errors.WithStack(&calc.StackUnderflowError{Op: ":" + cmd, Need: n, Have: len(st)})
	}
	return st[len(st)-n:], nil
}

// showX prints the result of f applied to x.
func (sh *shell) showX(cmd string, f func(float64) (string, error)) error {
	x, err := sh.top(cmd, 1)
	if err != nil {
		return err
	}
	s, err := f(x[0])
	if err != nil {
		return err
	}
	return sh.pg.print([]string{s})
}

func cmdDecBin(sh *shell, _ []string, _ string) error { return sh.showX("decbin", binString) }
func cmdDecHex(sh *shell, _ []string, _ string) error { return sh.showX("dechex", hexString) }
func cmdAlpha(sh *shell, _ []string, _ string) error { return sh.showX("alpha", alphaHex) }

func cmdRGB(sh *shell, args []string, _ string) error {
	if len(args) != 1 {
		return usageError(lookupCommand("rgb"))
	}
	return sh.pushColor(args[0])
}

func (sh *shell) pushColor(s string) error {
	rgb, err := parseColor(s)
	if err != nil {
		return err
	}
	sh.s.Push(rgb[:]...)
	return nil
}

func cmdHex(sh *shell, _ []string, _ string) error {
	c, err := sh.top("hex", 3)
	if err != nil {
		return err
	}
	s, err := colorString(c[0], c[1], c[2])
	if err != nil {
		return err
	}
	return sh.pg.print([]string{s})
}

func cmdImport(sh *shell, args []string, _ string) error {
	if len(args) != 1 {
		return usageError(lookupCommand("import"))
	}
	vs, rep, err := store.ImportFile(args[0])
	if err != nil {
		return errors.Wrap(err, args[0])
	}
	sh.s.Ingest(vs)
	log.Infof("%s: imported %d values from %d lines", args[0], len(vs), rep.Lines)
	if len(rep.Skipped) > 0 {
		log.Warnf("%s: skipped lines %v", args[0], rep.Skipped)
	}
	return nil
}

func (sh *shell) libraryFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return sh.cfg.Library
}

func cmdSave(sh *shell, args []string, _ string) error {
	return sh.saveLibrary(sh.libraryFile(args))
}

func cmdLoad(sh *shell, args []string, _ string) error {
	return sh.loadLibrary(sh.libraryFile(args), false)
}

func cmdReset(sh *shell, _ []string, _ string) error {
	sh.s.ResetOperators()
	log.Infof("user definitions removed")
	return nil
}

func cmdNew(sh *shell, _ []string, _ string) error {
	sh.s.Reset()
	return nil
}

func cmdSet(sh *shell, args []string, _ string) error {
	if len(args) == 0 {
		return sh.pg.print([]string{
			"prec: " + strconv.Itoa(*sh.cfg.Precision),
			"sep:  " + strconv.Quote(*sh.cfg.Separator),
		})
	}
	var err error
	switch {
	case args[0] == "prec" && len(args) == 2:
		var p int
		if p, err = strconv.Atoi(args[1]); err != nil {
			return errors.Errorf("invalid precision %q", args[1])
		}
		err = sh.cfg.SetPrecision(p)
	case args[0] == "sep" && len(args) <= 2:
		sep := ""
		if len(args) == 2 && args[1] != "none" {
			sep = args[1]
		}
		err = sh.cfg.SetSeparator(sep)
	default:
		return usageError(lookupCommand("set"))
	}
	if err != nil {
		return err
	}
	if sh.cfgFile == "" {
		return nil
	}
	if err = store.SaveConfig(sh.cfg, sh.cfgFile); err != nil {
		return err
	}
	log.Infof("settings saved to %s", sh.cfgFile)
	return nil
}

// complete completes the word under the cursor with command, operator and
// register names.
func (sh *shell) complete(line string, pos int) (head string, completions []string, tail string) {
	head, tail = line[:pos], line[pos:]
	i := strings.LastIndexAny(head, " \t()") + 1
	word := head[i:]
	head = head[:i]
	if word == "" {
		return head, nil, tail
	}
	var names []string
	if i == 0 && strings.HasPrefix(word, ":") {
		for _, c := range commands {
			names = append(names, ":"+c.name)
		}
	} else {
		for _, op := range sh.s.Operators() {
			names = append(names, op.Name)
		}
		names = append(names, sh.s.RegisterNames()...)
	}
	for _, n := range names {
		if strings.HasPrefix(n, word) {
			completions = append(completions, n)
		}
	}
	sort.Strings(completions)
	return head, completions, tail
}
