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
	"flag"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/db47h/ada/calc"
	"github.com/db47h/ada/store"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

var (
	noRawIO bool
	debug   bool
	dump    bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	var sh *shell

	defer func() {
		if err == nil && dump && sh != nil {
			err = dumpSession(sh, os.Stdout)
		}
		atExit(err)
	}()

	var withFiles fileList

	cfgFile := flag.String("config", store.DefaultConfigFile(), "load settings from `filename`")
	libFile := flag.String("lib", "", "load and save user definitions from `filename` (default from settings)")
	prec := flag.Int("prec", -1, "show `n` decimal places (default from settings)")
	flag.Var(&withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
	flag.BoolVar(&noRawIO, "noraw", false, "disable line editing")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&dump, "dump", false, "dump the session state upon exit")

	flag.Parse()

	log.SetDefaultsForClientTools()
	if debug {
		log.SetLogLevel(log.Debug)
	}

	var cfg *store.Config
	if cfg, err = store.LoadConfig(*cfgFile); err != nil {
		return
	}
	if *libFile != "" {
		cfg.Library = *libFile
	}
	if *prec >= 0 {
		if err = cfg.SetPrecision(*prec); err != nil {
			return
		}
	}

	var s *calc.Session
	if s, err = calc.New(); err != nil {
		return
	}
	sh = newShell(s, cfg, *cfgFile, os.Stdout, os.Stderr)
	sh.debug = debug
	if err = sh.loadLibrary(cfg.Library, true); err != nil {
		return
	}

	// -with files are fed in order of appearance on the command line,
	// before standard input.
	for _, name := range withFiles {
		if err = sh.runFile(name); err != nil {
			return
		}
	}

	if !sh.quit {
		if !noRawIO && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			err = sh.interactive()
		} else {
			err = sh.run(scanLines(os.Stdin), true)
		}
		if err != nil {
			return
		}
	}

	if *cfg.Autosave {
		err = sh.saveLibrary(cfg.Library)
	}
}
