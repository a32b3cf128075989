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

package store_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/db47h/ada/calc"
	"github.com/db47h/ada/store"
)

func TestLibrary_roundTrip(t *testing.T) {
	s, err := calc.New()
	if err != nil {
		t.Fatal(err)
	}
	// cube is defined before sq and refers to it
	for _, d := range [][2]string{{"cube", "dup sq *"}, {"sq", "dup *"}, {"cube", "dup sq *"}, {"hyp", "sq swap sq + sqrt"}} {
		if err := s.Define(d[0], d[1], -1); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.DefineConstant("g", 9.80665); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister("total", 42); err != nil {
		t.Fatal(err)
	}

	fileName := filepath.Join(t.TempDir(), "sub", "library.yaml")
	if err := store.SaveLibrary(store.Capture(s), fileName); err != nil {
		t.Fatalf("%+v", err)
	}
	lib, err := store.LoadLibrary(fileName)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	r, _ := calc.New()
	if err := lib.Restore(r); err != nil {
		t.Fatalf("%+v", err)
	}
	res, err := r.Submit("2 cube 3 4 hyp g total")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if want := []calc.Value{8, 5, 9.80665, 42}; !reflect.DeepEqual(res.Stack, want) {
		t.Errorf("expected %v, got %v", want, res.Stack)
	}
	if op, _ := r.Lookup("cube"); op.Arity != 1 {
		t.Errorf("cube arity %d", op.Arity)
	}

	// no temporary files left behind
	ents, err := os.ReadDir(filepath.Dir(fileName))
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 1 {
		t.Errorf("expected 1 file, got %d", len(ents))
	}
}

func TestLibrary_order(t *testing.T) {
	lib := &store.Library{Operations: []calc.OpDescriptor{
		{Name: "gamma", Body: "beta alpha +"},
		{Name: "beta", Body: "alpha 2 *"},
		{Name: "alpha", Body: "1 +"},
	}}
	s, _ := calc.New()
	if err := lib.Restore(s); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range s.UserOperations() {
		names = append(names, d.Name)
	}
	if !reflect.DeepEqual(names, []string{"alpha", "beta", "gamma"}) {
		t.Errorf("got %v", names)
	}
	if op, _ := s.Lookup("gamma"); op.Arity != 2 || op.Results != 1 {
		t.Errorf("gamma: arity %d, results %d", op.Arity, op.Results)
	}
}

func TestLoadLibrary_errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := store.LoadLibrary(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("no error for missing file")
	}
	fileName := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(fileName, []byte("operations:\n  - name: a\n    bogus: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadLibrary(fileName); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := store.LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	def := store.DefaultConfig()
	if !reflect.DeepEqual(cfg, def) {
		t.Errorf("expected defaults %+v, got %+v", def, cfg)
	}

	fileName := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(fileName, []byte("precision: 0\nseparator: \"\"\nlibrary: lib.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = store.LoadConfig(fileName)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if *cfg.Precision != 0 || *cfg.Separator != "" || cfg.Library != "lib.yaml" {
		t.Errorf("settings not read: %d %q %q", *cfg.Precision, *cfg.Separator, cfg.Library)
	}
	if cfg.History != def.History || *cfg.Autosave != *def.Autosave {
		t.Errorf("defaults not merged: %+v", cfg)
	}

	if err := cfg.SetPrecision(6); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetPrecision(-1); err == nil {
		t.Error("negative precision accepted")
	}
	if err := cfg.SetSeparator("'"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetSeparator("ab"); err == nil {
		t.Error("long separator accepted")
	}
	if err := store.SaveConfig(cfg, fileName); err != nil {
		t.Fatalf("%+v", err)
	}
	cfg2, err := store.LoadConfig(fileName)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(cfg, cfg2) {
		t.Errorf("expected %+v, got %+v", cfg, cfg2)
	}

	if err := os.WriteFile(fileName, []byte("precison: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadConfig(fileName); err == nil {
		t.Error("misspelled setting accepted")
	}
}

func TestReadColumn(t *testing.T) {
	in := "1\n2.5\n\nabc\n 1,000 \n3 4\n-0x10\n"
	vs, rep, err := store.ReadColumn(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 2.5, 1000, -16}; !reflect.DeepEqual(vs, want) {
		t.Errorf("expected %v, got %v", want, vs)
	}
	if rep.Lines != 7 || !reflect.DeepEqual(rep.Skipped, []int{3, 4, 6}) {
		t.Errorf("bad report %+v", rep)
	}
}

func TestImportFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(fileName, []byte("4\n5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	vs, _, err := store.ImportFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := calc.New()
	s.Ingest(vs)
	if res, _ := s.Submit("+"); !reflect.DeepEqual(res.Stack, []calc.Value{9}) {
		t.Errorf("got %v", res.Stack)
	}
	if _, _, err := store.ImportFile(fileName + ".missing"); err == nil {
		t.Error("no error for missing file")
	}
}
