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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/db47h/ada/calc"
	"github.com/db47h/ada/internal/iox"
	"github.com/db47h/ada/store"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

const prompt = "> "

// shell drives a calculator session from lines of input.
type shell struct {
	s       *calc.Session
	cfg     *store.Config
	cfgFile string // where :set saves settings, none if empty
	out     io.Writer
	errOut  io.Writer
	pg      *pager
	debug   bool
	quit    bool
}

func newShell(s *calc.Session, cfg *store.Config, cfgFile string, out, errOut io.Writer) *shell {
	return &shell{
		s:       s,
		cfg:     cfg,
		cfgFile: cfgFile,
		out:     out,
		errOut:  errOut,
		pg:      &pager{w: out},
	}
}

func (sh *shell) view() view {
	return view{prec: *sh.cfg.Precision, sep: *sh.cfg.Separator}
}

// show prints the register view.
func (sh *shell) show() error {
	ew := iox.NewErrWriter(sh.out)
	for _, l := range sh.view().registers(sh.s.Stack()) {
		ew.WriteString(l)
		ew.WriteString("\n")
	}
	return ew.Err
}

// report prints a non fatal error.
func (sh *shell) report(err error) {
	if sh.debug {
		fmt.Fprintf(sh.errOut, "%+v\n", err)
		return
	}
	fmt.Fprintf(sh.errOut, "%v\n", err)
}

// exec runs one line of input: a meta command, a #rrggbb color or an
// expression. An empty line duplicates x. It reports whether the register view changed.
func (sh *shell) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, ":") {
		return sh.command(line)
	}
	if strings.HasPrefix(line, "#") {
		err := sh.pushColor(line)
		return err == nil, err
	}
	if line == "" {
		if sh.s.Depth() == 0 {
			return false, nil
		}
		line = "dup"
	}
	res, err := sh.s.Submit(line)
	if err != nil {
		return false, err
	}
	for _, w := range res.Warnings {
		log.Warnf("%v", w)
	}
	return true, nil
}

func (sh *shell) command(line string) (bool, error) {
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return false, errors.New("missing command, type :help for help")
	}
	c := lookupCommand(fields[0])
	if c == nil {
		return false, errors.Errorf("unknown command %q, type :help for help", ":"+fields[0])
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line[1:], fields[0]))
	if err := c.run(sh, fields[1:], rest); err != nil {
		return false, err
	}
	return c.show, nil
}

// run executes lines returned by next until it returns io.EOF or the quit
// command is entered. Evaluation errors are reported and do not stop the
// loop. With echo set, the register view is printed whenever it changes.
func (sh *shell) run(next func() (string, error), echo bool) error {
	for !sh.quit {
		line, err := next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		changed, err := sh.exec(line)
		if err != nil {
			sh.report(err)
			continue
		}
		if echo && changed {
			if err = sh.show(); err != nil {
				return err
			}
		}
	}
	return nil
}

func scanLines(r io.Reader) func() (string, error) {
	sc := bufio.NewScanner(r)
	return func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", errors.Wrap(err, "read failed")
		}
		return "", io.EOF
	}
}

// runFile feeds the contents of fileName to the session. Blank lines are
// ignored.
func (sh *shell) runFile(fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "open failed")
	}
	defer f.Close()
	next := scanLines(f)
	return sh.run(func() (string, error) {
		for {
			l, err := next()
			if err != nil || strings.TrimSpace(l) != "" {
				return l, err
			}
		}
	}, false)
}

// interactive runs the session with line editing, history and completion.
func (sh *shell) interactive() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetTabCompletionStyle(liner.TabPrints)
	ln.SetWordCompleter(sh.complete)

	hist := sh.cfg.History
	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	sh.pg.rows = consoleRows(os.Stdout)
	sh.pg.key = readKey
	if err := sh.show(); err != nil {
		return err
	}
	err := sh.run(func() (string, error) {
		for {
			l, err := ln.Prompt(prompt)
			if err == liner.ErrPromptAborted {
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(sh.out)
			}
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(l) != "" {
				ln.AppendHistory(l)
			}
			return l, nil
		}
	}, true)

	if hist != "" {
		if werr := writeHistory(ln, hist); werr != nil {
			log.Warnf("%v", werr)
		}
	}
	return err
}

func writeHistory(ln *liner.State, fileName string) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return errors.Wrap(err, "history")
	}
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "history")
	}
	if _, err = ln.WriteHistory(f); err != nil {
		f.Close()
		return errors.Wrap(err, "history")
	}
	return errors.Wrap(f.Close(), "history")
}

// loadLibrary restores the library in fileName into the session. With
// optional set, a missing file is not an error.
func (sh *shell) loadLibrary(fileName string, optional bool) error {
	lib, err := store.LoadLibrary(fileName)
	if err != nil {
		if optional && os.IsNotExist(errors.Cause(err)) {
			return nil
		}
		return err
	}
	if err = lib.Restore(sh.s); err != nil {
		return err
	}
	log.Infof("loaded %s", fileName)
	return nil
}

func (sh *shell) saveLibrary(fileName string) error {
	if err := store.SaveLibrary(store.Capture(sh.s), fileName); err != nil {
		return err
	}
	log.Infof("saved %s", fileName)
	return nil
}
