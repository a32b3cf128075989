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
	"math/rand"
)

func binary(name string, prec int, right bool, help string, fn func(y, x Value) Value) *Op {
	return &Op{Name: name, Arity: 2, Results: 1, Prec: prec, Right: right, Infix: true, Help: help,
		Behavior: Native{Fn: func(a []Value) []Value { return []Value{fn(a[0], a[1])} }}}
}

func function2(name, help string, fn func(y, x Value) Value) *Op {
	return &Op{Name: name, Arity: 2, Results: 1, Help: help,
		Behavior: Native{Fn: func(a []Value) []Value { return []Value{fn(a[0], a[1])} }}}
}

// withPole sets the division by zero test of a native op.
func withPole(op *Op, pole func(a []Value) bool) *Op {
	n := op.Behavior.(Native)
	n.Pole = pole
	op.Behavior = n
	return op
}

func zeroX(a []Value) bool { return a[len(a)-1] == 0 }

func function(name, help string, fn func(x Value) Value) *Op {
	return &Op{Name: name, Arity: 1, Results: 1, Help: help,
		Behavior: Native{Fn: func(a []Value) []Value { return []Value{fn(a[0])} }}}
}

func scale(name, help string, k Value) *Op {
	return function(name, help, func(x Value) Value { return x * k })
}

func constant(name string, v Value, help string) *Op {
	return &Op{Name: name, Results: 1, Help: help, Behavior: Constant{v}}
}

func native(name string, arity, results int, keep bool, help string, fn func(a []Value) []Value) *Op {
	return &Op{Name: name, Arity: arity, Results: results, Help: help, Behavior: Native{Fn: fn, Keep: keep}}
}

// aggregate returns a non destructive whole stack operator.
func aggregate(name, help string, fn func(v []Value) Value) *Op {
	return native(name, All, 1, true, help, func(a []Value) []Value { return []Value{fn(a)} })
}

func alias(name string, op *Op) *Op {
	a := *op
	a.Name = name
	a.Help = op.Help + " (same as " + op.Name + ")"
	return &a
}

func factorial(x Value) Value {
	if x < 0 {
		return math.NaN()
	}
	return math.Gamma(x + 1)
}

func roundTo(y, x Value) Value {
	p := math.Pow(10, math.Trunc(x))
	return math.Round(y*p) / p
}

// randBetween returns a random integer in (y, x].
func randBetween(a []Value) []Value {
	lo, hi := math.Trunc(a[0]), math.Trunc(a[1])
	if lo > hi {
		lo, hi = hi, lo
	}
	if !(hi-lo >= 1 && hi-lo < 1<<62) {
		return []Value{math.NaN()}
	}
	return []Value{lo + 1 + Value(rand.Int63n(int64(hi-lo)))}
}

func rotate(a []Value, up bool) []Value {
	if len(a) < 2 {
		return a
	}
	r := make([]Value, len(a))
	if up {
		// x -> y, ..., bottom -> x
		copy(r, a[1:])
		r[len(r)-1] = a[0]
	} else {
		r[0] = a[len(a)-1]
		copy(r[1:], a)
	}
	return r
}

// measure splits the length y into whole units and a count of 1/x
// fractions: y, int(y), frac(y)*x, x.
func measure(a []Value) []Value {
	i, f := math.Modf(a[0])
	return []Value{a[0], i, f * a[1], a[1]}
}

func fahrenheit(c Value) Value { return roundTo(9.0/5*c+32, 1) }
func celsius(f Value) Value    { return roundTo(5.0/9*(f-32), 1) }

const (
	cmPerInch      = 2.54
	gramsPerOunce  = 453.59237 / 16
	poundsPerKilo  = 2.2046226218
	milesPerKm     = 0.62137119224
	cmH2OPerMmHg   = 1.3595100263597
	degreesPerRad  = 180 / math.Pi
	stackViewDepth = 4
)

var builtinOps []*Op
var builtinIndex = make(map[string]*Op)

func init() {
	mul := binary("*", 2, false, "y times x", func(y, x Value) Value { return y * x })
	drop := native("drop", 1, 0, false, "drop x", func([]Value) []Value { return nil })
	swap := native("swap", 2, 2, false, "swap x and y", func(a []Value) []Value { return []Value{a[1], a[0]} })
	clr := native("clear", All, 0, false, "clear the stack", func([]Value) []Value { return nil })
	rollup := native("rollup", All, All, false, "roll the stack up: x becomes y and the bottom value becomes x",
		func(a []Value) []Value { return rotate(a, true) })
	rolldown := native("rolldown", All, All, false, "roll the stack down: y becomes x and x goes to the bottom",
		func(a []Value) []Value { return rotate(a, false) })
	round := function2("round", "y rounded to x decimal places", roundTo)

	builtinOps = []*Op{
		// arithmetic
		binary("+", 1, false, "y plus x", func(y, x Value) Value { return y + x }),
		binary("-", 1, false, "y minus x", func(y, x Value) Value { return y - x }),
		mul,
		alias("x", mul),
		withPole(binary("/", 2, false, "y divided by x", func(y, x Value) Value { return y / x }), zeroX),
		withPole(binary("%", 2, false, "remainder of y divided by x, with the sign of y", math.Mod), zeroX),
		withPole(binary("^", 3, true, "y to the power of x", math.Pow), func(a []Value) bool { return a[0] == 0 && a[1] < 0 }),

		// math functions
		function("n", "negate x", func(x Value) Value { return -x }),
		function("abs", "absolute value of x", math.Abs),
		function("ceil", "smallest integer greater than or equal to x", math.Ceil),
		function("floor", "greatest integer less than or equal to x", math.Floor),
		function("!", "factorial of x, Gamma(x+1) for non integers", factorial),
		withPole(function("inv", "inverse of x", func(x Value) Value { return 1 / x }), zeroX),
		function("sqrt", "square root of x", math.Sqrt),
		function2("root", "x-th root of y", func(y, x Value) Value { return math.Pow(y, 1/x) }),
		function("log", "base 10 logarithm of x", math.Log10),
		function("ln", "natural logarithm of x", math.Log),
		function("exp", "e to the power of x", math.Exp),
		function("sin", "sine of x radians", math.Sin),
		function("cos", "cosine of x radians", math.Cos),
		function("tan", "tangent of x radians", math.Tan),
		function("asin", "arc sine of x, in radians", math.Asin),
		function("acos", "arc cosine of x, in radians", math.Acos),
		function("atan", "arc tangent of x, in radians", math.Atan),
		scale("deg", "x radians to degrees", degreesPerRad),
		scale("rad", "x degrees to radians", 1/degreesPerRad),
		round,
		alias("r", round),
		native("split", 1, 2, true, "push the integer and fractional parts of x, keeping x", func(a []Value) []Value {
			i, f := math.Modf(a[0])
			return []Value{i, f}
		}),
		native("rand", 2, 1, true, "random integer between y (exclusive) and x (inclusive), keeping both", randBetween),
		native("i", 2, 4, false, "express the length y in 1/x units: y, whole part, count of 1/x, x", measure),

		// unit conversions
		scale("ic", "inches to centimeters", cmPerInch),
		scale("ci", "centimeters to inches", 1/cmPerInch),
		function("cf", "Celsius to Fahrenheit", fahrenheit),
		function("fc", "Fahrenheit to Celsius", celsius),
		scale("go", "grams to ounces", 1/gramsPerOunce),
		scale("og", "ounces to grams", gramsPerOunce),
		scale("kp", "kilograms to pounds", poundsPerKilo),
		scale("pk", "pounds to kilograms", 1/poundsPerKilo),
		scale("km", "kilometers to miles", milesPerKm),
		scale("mk", "miles to kilometers", 1/milesPerKm),
		scale("cm", "centimeters of water to mmHg", 1/cmH2OPerMmHg),
		scale("mc", "mmHg to centimeters of water", cmH2OPerMmHg),

		// constants
		constant("pi", math.Pi, "pi"),
		constant("e", math.E, "Euler's number"),
		constant("avogadro", 6.0221409e23, "Avogadro's number"),
		constant("golden_ratio", 1.61803398874989484820, "golden ratio"),
		constant("gram", 0.03527396195, "ounces in a gram"),
		constant("inches_hg", 25.399999705, "inches of Hg in a mmHg"),
		constant("light", 299792458, "speed of light, m/s"),
		constant("mmhg", 0.53524017145, "inches of water in a mmHg"),
		constant("parsec", 19173510995000, "miles in a parsec"),

		// stack
		native("dup", 1, 1, true, "duplicate x", func(a []Value) []Value { return []Value{a[0]} }),
		drop,
		alias("d", drop),
		swap,
		alias("s", swap),
		clr,
		alias("c", clr),
		rollup,
		alias("ru", rollup),
		rolldown,
		alias("rd", rolldown),
		{Name: "trim", Arity: All, Results: All, Limit: stackViewDepth, Help: "drop everything but x, y, z and t",
			Behavior: Native{Fn: func(a []Value) []Value {
				if len(a) > stackViewDepth {
					a = a[len(a)-stackViewDepth:]
				}
				return a
			}}},
		{Name: "lastx", Results: 1, Help: "push the x operand of the last operation", Behavior: LastX{}},
		aggregate("depth", "push the stack depth", count),

		// statistics
		aggregate("count", "number of values on the stack", count),
		aggregate("sum", "sum of the stack", sum),
		aggregate("mean", "mean of the stack", mean),
		aggregate("median", "median of the stack", median),
		aggregate("sdev", "sample standard deviation of the stack", sdev),
		aggregate("min", "smallest value on the stack", minimum),
		aggregate("max", "largest value on the stack", maximum),
	}
	for _, op := range builtinOps {
		builtinIndex[op.Name] = op
	}
}
