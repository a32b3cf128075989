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

// Package store persists calculator state: user libraries, the shell
// configuration, and columns of numbers imported from text files.
//
// Libraries and configuration files are YAML documents. A library looks like:
//
//	operations:
//	  - name: hyp
//	    arity: 2
//	    body: dup * swap dup * + sqrt
//	    help: hypotenuse of a right triangle
//	constants:
//	  - name: g
//	    value: 9.80665
//	registers:
//	  total: 42
package store

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// writeYAML encodes v to fileName. The data is written to a temporary file
// in the same directory, then renamed, so that fileName is never left half
// written.
func writeYAML(fileName string, v interface{}) (err error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err = enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode failed")
	}
	if err = enc.Close(); err != nil {
		return errors.Wrap(err, "encode failed")
	}

	dir := filepath.Dir(fileName)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create failed")
	}
	f, err := os.CreateTemp(dir, filepath.Base(fileName)+".*")
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		// delete file on error
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "write failed")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return errors.Wrap(os.Rename(f.Name(), fileName), "save failed")
}

// readYAML decodes fileName into v. Unknown fields are an error. An empty
// file leaves v untouched.
func readYAML(fileName string, v interface{}) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "open failed")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrapf(err, "%s: parse failed", fileName)
	}
	return nil
}
