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


package main

import (
	"io"
	"strconv"

	"github.com/db47h/ada/internal/iox"
)

// dumpSession writes the display settings and session state to w.
func dumpSession(sh *shell, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	ew.Printf("precision: %d\n", *sh.cfg.Precision)
	ew.WriteString("separator: " + strconv.Quote(*sh.cfg.Separator) + "\n")
	if ew.Err != nil {
		return ew.Err
	}
	return sh.s.Dump(ew)
}
