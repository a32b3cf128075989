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

// Package calc implements an RPN calculator engine.
//
// A Session owns a value stack, a bank of named registers, a registry of
// operators and a tape recording every submitted line. Lines are parsed with
// package parse, so RPN entry and parenthesized infix expressions can be
// mixed freely:
//
//	4 16 s 2 ^ 4 / /	-> 4
//	(2 + 3) * 4		-> 20
//	2 + 3 * 4		-> 14
//	2 ^ 3 ^ 2		-> 512 (^ is right-associative)
//
// Symbols resolve to an operator first, then to a register. A register is
// written with >name (store x, keep it on the stack), >+name (add x to the
// register) or >-name (subtract x from the register); the last two consume
// x and create the register if needed.
//
// Built-in operators, by family:
//
//	arithmetic	+ - * x / % ^
//	math		n abs ceil floor ! inv sqrt root log ln exp
//			sin cos tan asin acos atan deg rad round r split rand
//	conversions	ic ci cf fc go og kp pk km mk cm mc
//	constants	pi e avogadro golden_ratio gram inches_hg light mmhg parsec
//	stack		dup drop d swap s clear c rollup ru rolldown rd trim depth
//	statistics	count sum mean median sdev min max
//
// Statistics operate on the whole stack and leave it intact, pushing their
// result on top. Use Session.Describe for the details of each operator.
//
// Floating point semantics are those of IEEE 754: division by zero yields an
// infinity, 0/0 yields NaN and 0^0 is 1. Such results are kept on the stack
// and reported as Warnings.
//
// User operations are defined with Session.Define and are stored in postfix
// form. They run against the caller's stack. A definition that would make an
// operation call itself is rejected.
package calc
