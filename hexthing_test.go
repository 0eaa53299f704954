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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/asig/hexthing/internal/config"
	"github.com/asig/hexthing/internal/dump"
	"github.com/asig/hexthing/internal/fileio"
)

func TestNumberFlag(t *testing.T) {
	var f numberFlag
	if f.Get() != nil {
		t.Errorf("Expected unset flag to be nil")
	}
	if err := f.Set("0x20"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v := f.Get(); v == nil || *v != 32 {
		t.Errorf("Expected 32, got %v", v)
	}
	if err := f.Set("twelve"); err == nil {
		t.Errorf("Expected error for invalid number")
	}
}

func TestRangeFlag(t *testing.T) {
	var f rangeFlag
	if err := f.Set("0x10-0x20"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if r := f.Get(); r == nil || r.Start != 16 || r.End != 32 {
		t.Errorf("Expected 16-32, got %v", r)
	}
	if err := f.Set("0x20-0x10"); err == nil {
		t.Errorf("Expected error for inverted range")
	}
}

func TestDumpAndUndumpFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.bin")
	dumped := filepath.Join(dir, "in.hex")
	restored := filepath.Join(dir, "out.bin")

	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}
	if err := os.WriteFile(input, data, 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	cfg := config.Config{Input: input, Output: dumped, BytesPerLine: 16}
	if err := dumpFile(cfg); err != nil {
		t.Fatalf("dumpFile failed: %v", err)
	}
	text, err := os.ReadFile(dumped)
	if err != nil {
		t.Fatalf("Failed to read dump: %v", err)
	}
	if strings.Contains(string(text), "\x1b[") {
		t.Errorf("Expected plain file output")
	}
	if !strings.HasPrefix(string(text), " 0x000 ┃ 00 07 0e") {
		t.Errorf("Unexpected first line: %q", strings.SplitN(string(text), "\n", 2)[0])
	}
	if lines := strings.Count(string(text), "\n"); lines != 19 {
		t.Errorf("Expected 19 lines, got %d", lines)
	}

	if err := dumpFile(cfg); !errors.Is(err, fileio.ErrOutputExists) {
		t.Errorf("Expected ErrOutputExists on second run, got %v", err)
	}

	if err := undumpFile(config.Config{Input: dumped, Output: restored, Reverse: true}); err != nil {
		t.Fatalf("undumpFile failed: %v", err)
	}
	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatalf("Failed to read restored file: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Restored data differs from input")
	}
}

func TestUndumpMalformedLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.hex")
	output := filepath.Join(dir, "out.bin")
	if err := os.WriteFile(input, []byte("41\n42 ┃ 43 ┃ 44 ┃ 45\n"), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	err := undumpFile(config.Config{Input: input, Output: output, Reverse: true})
	if !errors.Is(err, dump.ErrUnrecognizedLineFormat) {
		t.Fatalf("Expected ErrUnrecognizedLineFormat, got %v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("Expected no output file, got %v", err)
	}
}
