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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/db47h/ada/parse"
	"github.com/pkg/errors"
)

// Report summarizes a column import.
type Report struct {
	Lines   int   // lines read
	Skipped []int // line numbers of lines that did not hold a number
}

// ReadColumn reads one number per line from r. Blank lines and lines that do
// not hold exactly one number are skipped and reported. Numbers use the same
// syntax as calculator input, so "1,234.5" and "0xff" are accepted.
func ReadColumn(r io.Reader) ([]float64, Report, error) {
	var (
		vs  []float64
		rep Report
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rep.Lines++
		line := strings.TrimSpace(sc.Text())
		toks, err := parse.Tokenize(line, nil)
		if err != nil || len(toks) != 1 || toks[0].Kind != parse.Number {
			rep.Skipped = append(rep.Skipped, rep.Lines)
			continue
		}
		vs = append(vs, toks[0].Num)
	}
	if err := sc.Err(); err != nil {
		return nil, rep, errors.Wrap(err, "read failed")
	}
	return vs, rep, nil
}

// ImportFile reads a column of numbers from fileName.
func ImportFile(fileName string) ([]float64, Report, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, Report{}, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return ReadColumn(f)
}
