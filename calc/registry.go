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
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
)

// Registry maps names to operators. It lists entries in registration order:
// built-ins first, in table order, then user definitions.
type Registry struct {
	m *linkedhashmap.Map
}

// NewRegistry returns a registry holding the built-in operators.
func NewRegistry() *Registry {
	r := &Registry{m: linkedhashmap.New()}
	r.Reset()
	return r
}

func (r *Registry) get(name string) (*Op, bool) {
	v, ok := r.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Op), true
}

// Lookup returns a copy of the operator registered under name.
func (r *Registry) Lookup(name string) (Op, bool) {
	op, ok := r.get(name)
	if !ok {
		return Op{}, false
	}
	return op.clone(), true
}

// Define registers a copy of op, replacing any operator of the same name. A
// replaced entry keeps its position in the listing.
func (r *Registry) Define(op *Op) {
	c := op.clone()
	r.m.Put(c.Name, &c)
}

// Undefine removes the user operator name. If it was shadowing a built-in
// operator, the built-in is restored.
func (r *Registry) Undefine(name string) error {
	op, ok := r.get(name)
	if !ok || op.Kind != User {
		return errors.Errorf("%s: not a user definition", name)
	}
	if b, ok := builtinIndex[name]; ok {
		r.m.Put(name, b)
		return nil
	}
	r.m.Remove(name)
	return nil
}

// Reset discards all user definitions and restores the built-in operators.
func (r *Registry) Reset() {
	r.m.Clear()
	for _, op := range builtinOps {
		r.m.Put(op.Name, op)
	}
}

// Ops returns copies of the registered operators.
func (r *Registry) Ops() []Op {
	ops := r.all()
	cp := make([]Op, len(ops))
	for i, op := range ops {
		cp[i] = op.clone()
	}
	return cp
}

func (r *Registry) all() []*Op {
	vs := r.m.Values()
	ops := make([]*Op, len(vs))
	for i, v := range vs {
		ops[i] = v.(*Op)
	}
	return ops
}

// Len returns the number of registered operators.
func (r *Registry) Len() int {
	return r.m.Size()
}
