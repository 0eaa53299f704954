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

package dump

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/asig/hexthing/internal/byterange"
)

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func plainFormatter(bpl int, size int64) *Formatter {
	return &Formatter{BytesPerLine: bpl, AddrWidth: AddressWidth(size), Palette: NoColor()}
}

func TestForwardScenario(t *testing.T) {
	data := []byte{0x41, 0x42, 0x0a}
	var out bytes.Buffer
	st, err := Forward(bytes.NewReader(data), &out, byterange.Window{Length: byterange.Unbounded}, plainFormatter(16, 3))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	want := " 0x0 ┃ 41 42 0a" + strings.Repeat(" ", 13*3) + " ┃ AB␊\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
	if st.Lines != 1 || st.Bytes != 3 {
		t.Errorf("Expected 1 line and 3 bytes, got %+v", st)
	}
}

func TestForwardWindow(t *testing.T) {
	data := sequence(64)

	tests := []struct {
		name  string
		win   byterange.Window
		bpl   int
		lines []string
	}{
		{
			name:  "range",
			win:   byterange.Window{Start: 0x10, Length: 0x10},
			bpl:   16,
			lines: []string{" 0x10 ┃ 10 11 12 13 14 15 16 17 18 19 1a 1b 1c 1d 1e 1f ┃ ▴▴▴▴▴▴▴▴▴▴▴▴▴▴▴▴"},
		},
		{
			name: "truncated final chunk",
			win:  byterange.Window{Start: 0x20, Length: 10},
			bpl:  8,
			lines: []string{
				" 0x20 ┃ 20 21 22 23 24 25 26 27 ┃ ␣!\"#$%&'",
				" 0x28 ┃ 28 29                   ┃ ()",
			},
		},
		{
			name: "skip to EOF",
			win:  byterange.Window{Start: 60, Length: byterange.Unbounded},
			bpl:  3,
			lines: []string{
				" 0x3c ┃ 3c 3d 3e ┃ <=>",
				" 0x3f ┃ 3f       ┃ ?",
			},
		},
		{
			name:  "zero length",
			win:   byterange.Window{Start: 4, Length: 0},
			bpl:   16,
			lines: nil,
		},
		{
			name:  "start beyond EOF",
			win:   byterange.Window{Start: 100, Length: byterange.Unbounded},
			bpl:   16,
			lines: nil,
		},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		st, err := Forward(bytes.NewReader(data), &out, tc.win, plainFormatter(tc.bpl, int64(len(data))))
		if err != nil {
			t.Errorf("%s: Forward failed: %v", tc.name, err)
			continue
		}
		var want string
		for _, l := range tc.lines {
			want += l + "\n"
		}
		if out.String() != want {
			t.Errorf("%s: expected\n%s\ngot\n%s", tc.name, want, out.String())
		}
		if st.Lines != len(tc.lines) {
			t.Errorf("%s: expected %d lines, got %d", tc.name, len(tc.lines), st.Lines)
		}
	}
}

func TestForwardStats(t *testing.T) {
	var out bytes.Buffer
	st, err := Forward(bytes.NewReader(sequence(100)), &out, byterange.Window{Start: 5, Length: 50}, plainFormatter(16, 100))
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if st.Bytes != 50 || st.Lines != 4 {
		t.Errorf("Expected 50 bytes in 4 lines, got %+v", st)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestForwardWriteError(t *testing.T) {
	_, err := Forward(bytes.NewReader(sequence(10)), failingWriter{}, byterange.Window{Length: byterange.Unbounded}, plainFormatter(16, 10))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected write error, got %v", err)
	}
}

func TestForwardInvalidBytesPerLine(t *testing.T) {
	var out bytes.Buffer
	if _, err := Forward(bytes.NewReader(sequence(10)), &out, byterange.Window{Length: byterange.Unbounded}, plainFormatter(0, 10)); err == nil {
		t.Errorf("Expected an error for zero bytes per line")
	}
}
