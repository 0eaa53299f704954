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

package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/asig/hexthing/internal/byterange"
	"github.com/asig/hexthing/internal/config"
	"github.com/asig/hexthing/internal/dump"
	"github.com/asig/hexthing/internal/fileio"
)

const (
	version = "v1.0"
)

var (
	flagOutput       string
	flagBytesPerLine int
	flagSkip         numberFlag
	flagLength       numberFlag
	flagRange        rangeFlag
	flagReverse      bool
	flagUppercase    bool
	flagColor        config.ColorMode

	flagConfig   = flag.String("config", "", "Defaults file (default: hexthing/config.toml in the user config dir)")
	flagVersion  = flag.Bool("version", false, "Print version and exit")
	flagLogLevel = newLogLevelFlag(zerolog.InfoLevel, "log-level", "Log level (trace, debug, info, warn, error, fatal, panic)")
)

func init() {
	flag.StringVar(&flagOutput, "o", "", "Output to a file instead of standard output")
	flag.StringVar(&flagOutput, "output", "", "Same as -o")
	flag.IntVar(&flagBytesPerLine, "l", config.DefaultBytesPerLine, "Number of bytes per line")
	flag.IntVar(&flagBytesPerLine, "bytes-per-line", config.DefaultBytesPerLine, "Same as -l")
	flag.Var(&flagSkip, "s", "Skip `N` bytes of input (0xFF or 255)")
	flag.Var(&flagSkip, "skip", "Same as -s")
	flag.Var(&flagLength, "n", "Dump at most `N` bytes (0xFF or 255)")
	flag.Var(&flagLength, "length", "Same as -n")
	flag.Var(&flagRange, "b", "Byte `RANGE` to dump, e.g. 0-1000 or 0xff-0x3e7")
	flag.Var(&flagRange, "byte-range", "Same as -b")
	flag.BoolVar(&flagReverse, "r", false, "Reverse operation (hexdump to binary), requires -o")
	flag.BoolVar(&flagReverse, "reverse", false, "Same as -r")
	flag.BoolVar(&flagUppercase, "u", false, "Display hex in uppercase")
	flag.BoolVar(&flagUppercase, "uppercase", false, "Same as -u")
	flag.Var(&flagColor, "color", "Color console output: auto (color only on a terminal, the default), always or never")
}

func newLogLevelFlag(value zerolog.Level, name string, usage string) *logLevelFlag {
	p := &logLevelFlag{level: value}
	flag.Var(p, name, usage)
	return p
}

// logLevelFlag implements flag.Value for zerolog.Level
type logLevelFlag struct {
	level zerolog.Level
}

func (f *logLevelFlag) String() string {
	return f.level.String()
}

func (f *logLevelFlag) Set(value string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil {
		return err
	}
	f.level = level
	return nil
}

func (f *logLevelFlag) Get() zerolog.Level {
	return f.level
}

// numberFlag is an optional non-negative number, given as 0xFF or 255.
type numberFlag struct {
	value int64
	set   bool
}

func (f *numberFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return fmt.Sprintf("%d", f.value)
}

func (f *numberFlag) Set(value string) error {
	v, err := byterange.ParseNumber(value)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

func (f *numberFlag) Get() *int64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// rangeFlag is an optional byte range.
type rangeFlag struct {
	r *byterange.ByteRange
}

func (f *rangeFlag) String() string {
	if f == nil || f.r == nil {
		return ""
	}
	return f.r.String()
}

func (f *rangeFlag) Set(value string) error {
	r, err := byterange.Parse(value)
	if err != nil {
		return err
	}
	f.r = &r
	return nil
}

func (f *rangeFlag) Get() *byterange.ByteRange {
	return f.r
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <file>

Dumps <file> as hex and ASCII, or turns such a dump back into binary with -r.

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func initLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano // Need to keep this, or we won't get millis, no matter what we say in TimeFormat below?
	log.Logger = zerolog.
		New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00", // "RFC3339Millis"
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		}).
		With().Timestamp().Caller().
		Logger()
}

// buildConfig merges the defaults file with the command line. Flags only
// override defaults when they are given explicitly.
func buildConfig() (config.Config, error) {
	defaults, err := config.LoadDefaults(*flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	cfg := config.New(defaults)

	given := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { given[f.Name] = true })
	if given["l"] || given["bytes-per-line"] {
		cfg.BytesPerLine = flagBytesPerLine
	}
	if given["u"] || given["uppercase"] {
		cfg.Uppercase = flagUppercase
	}
	if given["color"] {
		cfg.Color = flagColor
	}
	cfg.Output = flagOutput
	cfg.Skip = flagSkip.Get()
	cfg.Length = flagLength.Get()
	cfg.Range = flagRange.Get()
	cfg.Reverse = flagReverse

	if flag.NArg() > 1 {
		return cfg, errors.Errorf("expected a single input file, got %d", flag.NArg())
	}
	cfg.Input = flag.Arg(0)
	return cfg, cfg.Validate()
}

// writeOutput creates path, which must not exist yet, and hands a buffered
// writer for it to write.
func writeOutput(path string, write func(w io.Writer) error) (err error) {
	f, err := fileio.CreateNew(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "can't close output")
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return errors.Wrap(w.Flush(), "can't flush output")
}

func dumpFile(cfg config.Config) error {
	win, err := cfg.Window()
	if err != nil {
		return err
	}
	in, size, err := fileio.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	formatter := &dump.Formatter{
		BytesPerLine: cfg.BytesPerLine,
		AddrWidth:    dump.AddressWidth(size),
		Uppercase:    cfg.Uppercase,
		Palette:      dump.NoColor(),
	}

	if cfg.Output != "" {
		return writeOutput(cfg.Output, func(w io.Writer) error {
			st, err := dump.Forward(in, w, win, formatter)
			if err == nil {
				log.Info().Msgf("Wrote %d lines for %d bytes to %s", st.Lines, st.Bytes, cfg.Output)
			}
			return err
		})
	}

	if cfg.UseColor(term.IsTerminal(int(os.Stdout.Fd()))) {
		formatter.Palette = dump.NewPalette(os.Stdout, cfg.Color == config.ColorAlways)
	}
	_, err = dump.Forward(in, os.Stdout, win, formatter)
	return err
}

func undumpFile(cfg config.Config) error {
	log.Info().Msgf("Reversing %s into %s", cfg.Input, cfg.Output)
	in, _, err := fileio.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	// Decode everything first so that a malformed dump leaves no output behind.
	var data bytes.Buffer
	n, err := dump.Reverse(in, &data)
	if err != nil {
		return err
	}
	err = writeOutput(cfg.Output, func(w io.Writer) error {
		_, err := data.WriteTo(w)
		return errors.Wrap(err, "can't write output")
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("Wrote %d bytes to %s", n, cfg.Output)
	return nil
}

func main() {
	flag.Usage = usage
	flag.Parse()

	initLogging(flagLogLevel.Get())

	if *flagVersion {
		fmt.Printf("hexthing %s\n", version)
		return
	}

	cfg, err := buildConfig()
	if err != nil {
		log.Error().Err(err).Msg("Invalid arguments")
		usage()
		os.Exit(1)
	}

	if cfg.Reverse {
		err = undumpFile(cfg)
	} else {
		err = dumpFile(cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed")
		os.Exit(1)
	}
}
