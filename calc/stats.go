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

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds summary statistics of the stack.
type Summary struct {
	Count  int
	Mean   Value
	Median Value
	SDev   Value // sample standard deviation, NaN for less than two values
	Min    Value
	Max    Value
	Sum    Value
}

func summarize(v []Value) (Summary, error) {
	if len(v) == 0 {
		return Summary{}, errors.WithStack(&StackUnderflowError{Op: "stats", Need: 1})
	}
	return Summary{
		Count:  len(v),
		Mean:   stat.Mean(v, nil),
		Median: median(v),
		SDev:   sdev(v),
		Min:    floats.Min(v),
		Max:    floats.Max(v),
		Sum:    floats.Sum(v),
	}, nil
}

func count(v []Value) Value { return Value(len(v)) }

func sum(v []Value) Value { return floats.Sum(v) }

func mean(v []Value) Value {
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

func sdev(v []Value) Value {
	if len(v) < 2 {
		return math.NaN()
	}
	return stat.StdDev(v, nil)
}

func minimum(v []Value) Value {
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Min(v)
}

func maximum(v []Value) Value {
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Max(v)
}

// median runs in linear time on average. v is not modified.
func median(v []Value) Value {
	n := len(v)
	if n == 0 {
		return math.NaN()
	}
	a := append([]Value(nil), v...)
	for _, x := range a {
		if math.IsNaN(x) {
			return x
		}
	}
	k := n / 2
	m := nth(a, k)
	if n%2 == 1 {
		return m
	}
	// a[:k] holds the lower half
	return (floats.Max(a[:k]) + m) / 2
}

// nth reorders a so that a[k] is the value that would be at index k if a were
// sorted, with smaller or equal values before it, and returns a[k].
func nth(a []Value, k int) Value {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := a[lo+(hi-lo)/2]
		i, j := lo, hi
		for i <= j {
			for a[i] < p {
				i++
			}
			for a[j] > p {
				j--
			}
			if i <= j {
				a[i], a[j] = a[j], a[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return a[k]
		}
	}
	return a[k]
}
