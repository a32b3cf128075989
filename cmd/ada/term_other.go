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


//go:build !linux

package main

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// readKey waits for a single key press on stdin.
func readKey() (byte, error) {
	st, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return 0, errors.Wrap(err, "MakeRaw failed")
	}
	defer term.Restore(int(os.Stdin.Fd()), st)
	var b [1]byte
	_, err = os.Stdin.Read(b[:])
	return b[0], errors.Wrap(err, "read key")
}
