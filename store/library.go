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

package store

import (
	"sort"
	"strings"

	"fortio.org/log"
	"github.com/db47h/ada/calc"
	"github.com/pkg/errors"
)

// Library holds the user definitions and registers of a session.
type Library struct {
	Operations []calc.OpDescriptor    `yaml:"operations,omitempty"`
	Constants  []calc.ConstDescriptor `yaml:"constants,omitempty"`
	Registers  map[string]float64     `yaml:"registers,omitempty"`
}

// Capture returns the library of s.
func Capture(s *calc.Session) *Library {
	lib := &Library{
		Operations: s.UserOperations(),
		Constants:  s.UserConstants(),
	}
	if regs := s.Registers(); len(regs) > 0 {
		lib.Registers = regs
	}
	return lib
}

// Restore loads the library into s. Constants and registers come first, then
// operations, each one after the operations its body uses, so that their
// arities are known when it is defined.
func (l *Library) Restore(s *calc.Session) error {
	for _, c := range l.Constants {
		if err := s.LoadConstant(c); err != nil {
			return errors.Wrap(err, "restore")
		}
	}
	names := make([]string, 0, len(l.Registers))
	for name := range l.Registers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.SetRegister(name, l.Registers[name]); err != nil {
			return errors.Wrap(err, "restore")
		}
	}
	for _, d := range l.ordered() {
		if err := s.LoadOperation(d); err != nil {
			return errors.Wrap(err, "restore")
		}
	}
	log.Debugf("restored %d operations, %d constants, %d registers", len(l.Operations), len(l.Constants), len(l.Registers))
	return nil
}

// ordered returns the operations sorted so that every operation comes after
// the operations its body refers to. Operation bodies are postfix sequences
// with tokens separated by single spaces. Operations left in a cycle keep
// their relative order at the end.
func (l *Library) ordered() []calc.OpDescriptor {
	pending := make(map[string]bool, len(l.Operations))
	for _, d := range l.Operations {
		pending[d.Name] = true
	}
	ready := func(d calc.OpDescriptor) bool {
		for _, f := range strings.Fields(d.Body) {
			if f != d.Name && pending[f] {
				return false
			}
		}
		return true
	}

	out := make([]calc.OpDescriptor, 0, len(l.Operations))
	rest := l.Operations
	for len(rest) > 0 {
		var next []calc.OpDescriptor
		for _, d := range rest {
			if ready(d) {
				out = append(out, d)
				delete(pending, d.Name)
			} else {
				next = append(next, d)
			}
		}
		if len(next) == len(rest) {
			return append(out, next...)
		}
		rest = next
	}
	return out
}

// LoadLibrary reads a library file.
func LoadLibrary(fileName string) (*Library, error) {
	var lib Library
	if err := readYAML(fileName, &lib); err != nil {
		return nil, errors.Wrap(err, "load library")
	}
	return &lib, nil
}

// SaveLibrary writes lib to fileName.
func SaveLibrary(lib *Library, fileName string) error {
	return errors.Wrap(writeYAML(fileName, lib), "save library")
}
