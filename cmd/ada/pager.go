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
	"io"
	"os"
	"strings"

	"github.com/db47h/ada/internal/iox"
	"golang.org/x/term"
)

const morePrompt = "-- more --"

// pager prints listings one screen at a time. With a nil rows or key
// function, or a terminal height under 2, it prints everything at once.
type pager struct {
	w    io.Writer
	rows func() int
	key  func() (byte, error)
}

func (p *pager) print(lines []string) error {
	ew := iox.NewErrWriter(p.w)
	page := 0
	if p.rows != nil && p.key != nil {
		page = p.rows() - 1
	}
	for i, l := range lines {
		if page > 0 && i > 0 && i%page == 0 {
			ew.WriteString(morePrompt)
			c, err := p.key()
			ew.WriteString("\r" + strings.Repeat(" ", len(morePrompt)) + "\r")
			if err != nil {
				return err
			}
			switch c {
			case 'q', 'Q', 3, 4, 27:
				return ew.Err
			}
		}
		ew.WriteString(l)
		ew.WriteString("\n")
	}
	return ew.Err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func consoleRows(f *os.File) func() int {
	return func() int {
		_, h, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0
		}
		return h
	}
}
