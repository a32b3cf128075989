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

import "github.com/pkg/errors"

// Value is the type of stack and register values. NaN and infinities are
// valid values that propagate through computations.
type Value = float64

// Stack is an unbounded LIFO stack of values. The zero value is an empty
// stack ready to use.
type Stack struct {
	v []Value
}

// Len returns the stack depth.
func (s *Stack) Len() int { return len(s.v) }

// Push pushes the given values in order.
func (s *Stack) Push(v ...Value) {
	s.v = append(s.v, v...)
}

// Pop removes the top value and returns it.
func (s *Stack) Pop() (Value, error) {
	if len(s.v) == 0 {
		return 0, errors.WithStack(&StackUnderflowError{Op: "pop", Need: 1})
	}
	v := s.v[len(s.v)-1]
	s.v = s.v[:len(s.v)-1]
	return v, nil
}

// Peek returns the i-th value from the top of the stack, 0 being the top.
func (s *Stack) Peek(i int) (Value, bool) {
	if i < 0 || i >= len(s.v) {
		return 0, false
	}
	return s.v[len(s.v)-1-i], true
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []Value {
	return append([]Value(nil), s.v...)
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.v = s.v[:0]
}
