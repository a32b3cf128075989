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

package store

import (
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/pkg/errors"
)

// Config is the shell configuration. Optional fields are pointers so that an
// explicit zero in the file is not mistaken for a missing setting.
type Config struct {
	Precision *int    `yaml:"precision,omitempty"` // decimal places in the register view
	Separator *string `yaml:"separator,omitempty"` // thousands separator, may be empty
	Library   string  `yaml:"library,omitempty"`   // library file, loaded at startup
	History   string  `yaml:"history,omitempty"`   // line editor history file
	Autosave  *bool   `yaml:"autosave,omitempty"`  // save the library on exit
}

// Default settings.
const (
	DefaultPrecision = 4
	DefaultSeparator = ","
)

// Dir returns the directory holding the configuration, library and history
// files.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "ada")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	prec, sep, autosave := DefaultPrecision, DefaultSeparator, true
	dir := Dir()
	return &Config{
		Precision: &prec,
		Separator: &sep,
		Library:   filepath.Join(dir, "library.yaml"),
		History:   filepath.Join(dir, "history"),
		Autosave:  &autosave,
	}
}

// DefaultConfigFile returns the default configuration file name.
func DefaultConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LoadConfig reads the configuration file fileName. Settings missing from the
// file, or the whole file if it does not exist, take their default value, so
// that all fields of the returned Config are set.
func LoadConfig(fileName string) (*Config, error) {
	var cfg Config
	err := readYAML(fileName, &cfg)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load config")
	}
	if err = mergo.Merge(&cfg, DefaultConfig(), mergo.WithoutDereference); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

// SaveConfig writes cfg to fileName.
func SaveConfig(cfg *Config, fileName string) error {
	return errors.Wrap(writeYAML(fileName, cfg), "save config")
}

// SetPrecision sets the number of decimal places.
func (c *Config) SetPrecision(p int) error {
	if p < 0 || p > 17 {
		return errors.Errorf("precision %d out of range [0, 17]", p)
	}
	c.Precision = &p
	return nil
}

// SetSeparator sets the thousands separator.
func (c *Config) SetSeparator(sep string) error {
	if len([]rune(sep)) > 1 {
		return errors.Errorf("invalid separator %q", sep)
	}
	c.Separator = &sep
	return nil
}
