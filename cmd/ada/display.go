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
	"math"
	"strconv"
	"strings"
)

// registerNames are the labels of the visible stack slots, x first.
var registerNames = [...]string{"x", "y", "z", "t"}

// view formats values for display.
type view struct {
	prec int
	sep  string
}

// format returns v in fixed notation with prec decimal places and the integer
// part grouped by thousands.
func (vw view) format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(v, 'f', vw.prec, 64)
	if vw.sep == "" {
		return s
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	ip, fp := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		ip, fp = s[:i], s[i:]
	}
	var b strings.Builder
	b.WriteString(sign)
	for i := range ip {
		if i > 0 && (len(ip)-i)%3 == 0 {
			b.WriteString(vw.sep)
		}
		b.WriteByte(ip[i])
	}
	b.WriteString(fp)
	return b.String()
}

// intWidth returns the width of the integer part of a formatted value.
func intWidth(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len([]rune(s[:i]))
	}
	return len([]rune(s))
}

// registers returns the t, z, y and x lines of the register view, with
// decimal points aligned. Slots beyond the stack depth show zero.
func (vw view) registers(stack []float64) []string {
	var fs [len(registerNames)]string
	w := 0
	for i := range fs {
		v := 0.0
		if n := len(stack) - 1 - i; n >= 0 {
			v = stack[n]
		}
		fs[i] = vw.format(v)
		if iw := intWidth(fs[i]); iw > w {
			w = iw
		}
	}
	lines := make([]string, 0, len(fs))
	for i := len(fs) - 1; i >= 0; i-- {
		pad := strings.Repeat(" ", w-intWidth(fs[i]))
		lines = append(lines, registerNames[i]+": "+pad+fs[i])
	}
	return lines
}
