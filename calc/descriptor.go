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
	"fortio.org/log"
	"github.com/db47h/ada/parse"
	"github.com/pkg/errors"
)

// OpDescriptor is the serializable form of a user operation.
type OpDescriptor struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
	Body  string `yaml:"body"` // postfix source
	Help  string `yaml:"help,omitempty"`
}

// ConstDescriptor is the serializable form of a user constant.
type ConstDescriptor struct {
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
	Help  string `yaml:"help,omitempty"`
}

func (s *Session) userOp(name string) (*Op, error) {
	op, ok := s.ops.get(name)
	if !ok {
		return nil, errors.WithStack(&NameError{Name: name, Pos: -1})
	}
	if op.Kind != User {
		return nil, errors.Errorf("%s: not a user definition", name)
	}
	return op, nil
}

// SaveOperation returns the descriptor of the user operation name.
func (s *Session) SaveOperation(name string) (OpDescriptor, error) {
	op, err := s.userOp(name)
	if err != nil {
		return OpDescriptor{}, err
	}
	m, ok := op.Behavior.(Macro)
	if !ok {
		return OpDescriptor{}, errors.Errorf("%s: not an operation", name)
	}
	return OpDescriptor{Name: op.Name, Arity: op.Arity, Body: parse.Format(m.Body), Help: op.Help}, nil
}

// LoadOperation defines a user operation from its descriptor. The arity is
// recomputed from the body, since the operations it refers to may have
// changed since it was saved.
func (s *Session) LoadOperation(d OpDescriptor) error {
	if err := s.define(d.Name, d.Body, -1, d.Help); err != nil {
		return err
	}
	if op, _ := s.ops.Lookup(d.Name); op.Arity != d.Arity {
		log.Warnf("%s: arity changed from %d to %d", d.Name, d.Arity, op.Arity)
	}
	return nil
}

// SaveConstant returns the descriptor of the user constant name.
func (s *Session) SaveConstant(name string) (ConstDescriptor, error) {
	op, err := s.userOp(name)
	if err != nil {
		return ConstDescriptor{}, err
	}
	c, ok := op.Behavior.(Constant)
	if !ok {
		return ConstDescriptor{}, errors.Errorf("%s: not a constant", name)
	}
	return ConstDescriptor{Name: op.Name, Value: c.Value, Help: op.Help}, nil
}

// LoadConstant defines a user constant from its descriptor.
func (s *Session) LoadConstant(d ConstDescriptor) error {
	return s.defineConstant(d.Name, d.Value, d.Help)
}

// UserOperations returns the descriptors of all user operations in
// definition order.
func (s *Session) UserOperations() []OpDescriptor {
	var ds []OpDescriptor
	for _, op := range s.ops.all() {
		if op.Kind != User {
			continue
		}
		if d, err := s.SaveOperation(op.Name); err == nil {
			ds = append(ds, d)
		}
	}
	return ds
}

// UserConstants returns the descriptors of all user constants in definition
// order.
func (s *Session) UserConstants() []ConstDescriptor {
	var ds []ConstDescriptor
	for _, op := range s.ops.all() {
		if op.Kind != User {
			continue
		}
		if d, err := s.SaveConstant(op.Name); err == nil {
			ds = append(ds, d)
		}
	}
	return ds
}
