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
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// toInt truncates v toward zero like the integer conversions of the base
// commands do.
func toInt(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1<<63 {
		return 0, errors.Errorf("%v is not representable as an integer", v)
	}
	return int64(v), nil
}

func formatInt(v float64, prefix string, base int) (string, error) {
	n, err := toInt(v)
	if err != nil {
		return "", err
	}
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	return sign + prefix + strings.ToUpper(strconv.FormatInt(n, base)), nil
}

// binString returns the integer part of v in binary, like "0b1000".
func binString(v float64) (string, error) { return formatInt(v, "0b", 2) }

// hexString returns the integer part of v in hexadecimal, like "0xFF".
func hexString(v float64) (string, error) { return formatInt(v, "0x", 16) }

// parseColor parses a color in #rrggbb notation. The leading # is optional.
func parseColor(s string) (rgb [3]float64, err error) {
	h := strings.TrimSpace(strings.TrimPrefix(s, "#"))
	if len(h) != 6 {
		return rgb, errors.Errorf("%q is not a hex color", s)
	}
	for i := range rgb {
		c, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return rgb, errors.Errorf("%q is not a hex color", s)
		}
		rgb[i] = float64(c)
	}
	return rgb, nil
}

// colorString formats red, green and blue components as #RRGGBB.
func colorString(r, g, b float64) (string, error) {
	var c [3]int64
	for i, v := range []float64{r, g, b} {
		n, err := toInt(v)
		if err != nil || n < 0 || n > 255 {
			return "", errors.Errorf("color component %v not in the range 0 to 255", v)
		}
		c[i] = n
	}
	return fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2]), nil
}

// alphaHex returns the hex byte of an opacity given in percent.
func alphaHex(p float64) (string, error) {
	if !(p >= 0 && p <= 100) {
		return "", errors.Errorf("alpha value %v not in the range 0 to 100", p)
	}
	return fmt.Sprintf("%02X", int(math.Round(p*255/100))), nil
}
