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


// The ada command line tool is an interactive RPN calculator built on the
// package github.com/db47h/ada/calc.
//
// Usage:
//
//	-config filename
//		  load settings from filename (default "$XDG_CONFIG_HOME/ada/config.yaml")
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump the session state upon exit
//	-lib filename
//		  load and save user definitions from filename (default from settings)
//	-noraw
//		  disable line editing
//	-prec n
//		  show n decimal places (default from settings)
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// Each input line is evaluated against the stack. Lines can be plain RPN
// ("2 3 + 4 *") or infix with parentheses ("(2 + 3) * 4"), and both can be
// mixed. After each line, the four lowest stack slots are shown as the t:,
// z:, y: and x: registers. An empty line duplicates x.
//
// Lines starting with a colon are shell commands. Type :help for a list, or
// :help name to describe an operator, register or command. User operations
// are defined with :def:
//
//	> :def hyp/2 dup * swap dup * + sqrt
//	> 3 4 hyp
//
// A line starting with # is a color in #rrggbb notation. Its red, green and
// blue components are pushed, as with :rgb. The reverse conversion is :hex,
// and :alpha shows the alpha byte of an opacity in percent. :decbin and
// :dechex show x in binary or hexadecimal without changing the stack.
//
// -debug: print a full stack trace along with errors, and enable trace
// logging of evaluations and definitions.
//
// -dump: print the display settings, stack, registers, user definitions and
// tape to stdout upon exit.
//
// -noraw: upon startup, ada uses a line editor with history and completion
// if both stdin and stdout are terminals. This flag disables it. Input is then
// read line by line.
//
// -with: before reading stdin, ada evaluates the lines of the specified file.
// If specified multiple times, files are read in order of appearance on the
// command line.
//
// -config, -lib: settings (precision, thousands separator, library and
// history file names, autosave) are read from a YAML file. Missing settings
// take their default value. The library holds user operations, constants
// and registers. It is loaded on startup and, unless autosave is off, saved
// upon exit.
package main
