/*
 * This file is part of hexthing
 * Copyright (C) 2025 Andreas Signer <asigner@gmail.com>
 *
 * hexthing is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hexthing is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hexthing.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package config holds the immutable settings of a hexthing run and the
// user defaults they start from.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/asig/hexthing/internal/byterange"
)

const (
	configDirName  = "hexthing"
	configFileName = "config.toml"

	DefaultBytesPerLine = 16
	MaxBytesPerLine     = 1 << 16
)

// ColorMode selects when console output is colored. File output is never
// colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, errors.Errorf("invalid color mode %q (auto, always, never)", s)
}

// Set implements flag.Value.
func (m *ColorMode) Set(s string) error {
	v, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Defaults are the user's preferred settings, read from a TOML file.
type Defaults struct {
	BytesPerLine int    `toml:"bytes_per_line"`
	Uppercase    bool   `toml:"uppercase"`
	Color        string `toml:"color"`
}

// DefaultPath returns the location of the user's defaults file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get the user configuration directory")
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// LoadDefaults reads the defaults file at path. An empty path means the
// default location, which may be absent.
func LoadDefaults(path string) (Defaults, error) {
	d := Defaults{BytesPerLine: DefaultBytesPerLine}
	required := path != ""
	if !required {
		p, err := DefaultPath()
		if err != nil {
			return d, nil
		}
		path = p
	}

	file, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return d, nil
		}
		return d, errors.Wrap(err, "failed to open configuration file")
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&d); err != nil {
		return d, errors.Wrapf(err, "failed to decode TOML config %s", path)
	}
	if d.BytesPerLine == 0 {
		d.BytesPerLine = DefaultBytesPerLine
	}
	if _, err := ParseColorMode(d.Color); err != nil {
		return d, errors.Wrapf(err, "in %s", path)
	}
	return d, nil
}

// Config is built once at startup and handed to the pipelines.
type Config struct {
	Input        string
	Output       string
	BytesPerLine int
	Skip         *int64
	Length       *int64
	Range        *byterange.ByteRange
	Reverse      bool
	Uppercase    bool
	Color        ColorMode
}

// New returns a Config initialized from d.
func New(d Defaults) Config {
	color, _ := ParseColorMode(d.Color)
	bpl := d.BytesPerLine
	if bpl == 0 {
		bpl = DefaultBytesPerLine
	}
	return Config{
		BytesPerLine: bpl,
		Uppercase:    d.Uppercase,
		Color:        color,
	}
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input file specified")
	}
	if c.BytesPerLine < 1 {
		return errors.Errorf("bytes per line must be at least 1, got %d", c.BytesPerLine)
	}
	if c.BytesPerLine > MaxBytesPerLine {
		return errors.Errorf("bytes per line must be at most %d, got %d", MaxBytesPerLine, c.BytesPerLine)
	}
	if c.Reverse && c.Output == "" {
		return errors.New("reverse operation requires an output file")
	}
	if c.Range != nil && (c.Skip != nil || c.Length != nil) {
		return errors.Wrap(byterange.ErrInvalidRange, "byte range can't be combined with skip or length")
	}
	return nil
}

// Window resolves the part of the input to dump.
func (c Config) Window() (byterange.Window, error) {
	return byterange.Resolve(c.Range, c.Skip, c.Length)
}

// UseColor reports whether output should be colored, given whether stdout
// is a terminal.
func (c Config) UseColor(stdoutIsTerminal bool) bool {
	if c.Output != "" {
		return false
	}
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return stdoutIsTerminal
	}
}
