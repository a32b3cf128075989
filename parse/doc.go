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

// Package parse turns calculator input lines into postfix token sequences.
//
// Input is split into numbers, symbols and parentheses by Tokenize, then
// Normalize reorders any infix sub-expressions into postfix order. Both steps
// consult a Lexicon that knows which names are operators and registers.
//
// Lexical rules:
//
//	number	decimal with optional fraction and exponent: 12  -3.5  .5  6.02e23  1,234.5
//		hexadecimal or binary integer: 0xff  0b1011
//		A leading + or - is a sign only at the start of a word (start of
//		line, after a blank or after an opening parenthesis) and when
//		followed by a digit.
//	symbol	operator or identifier. Runs of characters are matched against
//		the longest known name first, so that "3 4+" reads as 3 4 + and
//		"16sqrt" as 16 sqrt. An unknown word that mixes letters and digits
//		is cut into known names and numbers when possible ("sqrt16");
//		any other unknown word stays a single symbol.
//	store	>name stores x into register name, >+name adds x to it, >-name
//		subtracts x from it.
//	( )	grouping.
//
// Blanks and commas that are not part of a number separate tokens.
//
// Normalization:
//
// Plain RPN input goes through unchanged: an operator that finds all its
// operands to its left is emitted as is, and so is an operator that finds
// none, since it works on values already on the stack. An infix-capable
// operator (+ - * / % ^ and friends) that has a left operand but not two,
// and is followed by an operand, is held back and emitted after its right
// operand, honoring precedence and associativity. This makes the following
// lines equivalent:
//
//	2 3 4 * +
//	2 + 3 * 4
//	2 + ( 3 4 * )
//	( 3 * 4 ) + 2
package parse
