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

// Package byterange parses byte ranges and resolves the window of an input
// file that gets dumped.
package byterange

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidRange  = errors.New("invalid byte range")
	ErrInvalidNumber = errors.New("invalid number")
)

// Unbounded is the Window length that means "read to EOF".
const Unbounded = int64(-1)

// ByteRange is a start-end pair as given on the command line. End is
// exclusive: the window covers End-Start bytes.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) String() string {
	return "0x" + strconv.FormatInt(r.Start, 16) + "-0x" + strconv.FormatInt(r.End, 16)
}

// Window is the part of the input that gets dumped. A negative Length
// means the window extends to the end of the input.
type Window struct {
	Start  int64
	Length int64
}

func (w Window) Unbounded() bool {
	return w.Length < 0
}

// ParseNumber parses a non-negative integer given either as 0x-prefixed
// hexadecimal or as plain decimal.
func ParseNumber(s string) (int64, error) {
	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v > math.MaxInt64 {
		return 0, errors.Wrapf(ErrInvalidNumber, "%q must be in the format '0xFF' or '255'", s)
	}
	return int64(v), nil
}

// Parse parses a range of the form "A-B", where A and B are accepted by
// ParseNumber and B >= A.
func Parse(s string) (ByteRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return ByteRange{}, errors.Wrapf(ErrInvalidRange, "%q must be in the format 'start-end'", s)
	}
	start, err := ParseNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return ByteRange{}, errors.Wrapf(ErrInvalidRange, "%q: %v", s, err)
	}
	end, err := ParseNumber(strings.TrimSpace(parts[1]))
	if err != nil {
		return ByteRange{}, errors.Wrapf(ErrInvalidRange, "%q: %v", s, err)
	}
	r := ByteRange{Start: start, End: end}
	if err := r.validate(); err != nil {
		return ByteRange{}, err
	}
	return r, nil
}

func (r ByteRange) validate() error {
	if r.Start < 0 || r.End < r.Start {
		return errors.Wrapf(ErrInvalidRange, "end of %s lies before its start", r)
	}
	return nil
}

// Resolve computes the window to dump. An explicit range wins over
// skip/length, but giving both is an error. With neither, the whole input
// is dumped.
func Resolve(r *ByteRange, skip, length *int64) (Window, error) {
	if r != nil {
		if skip != nil || length != nil {
			return Window{}, errors.Wrap(ErrInvalidRange, "a byte range can't be combined with skip or length")
		}
		if err := r.validate(); err != nil {
			return Window{}, err
		}
		return Window{Start: r.Start, Length: r.End - r.Start}, nil
	}

	w := Window{Start: 0, Length: Unbounded}
	if skip != nil {
		if *skip < 0 {
			return Window{}, errors.Wrapf(ErrInvalidNumber, "negative skip %d", *skip)
		}
		w.Start = *skip
	}
	if length != nil {
		if *length < 0 {
			return Window{}, errors.Wrapf(ErrInvalidNumber, "negative length %d", *length)
		}
		w.Length = *length
	}
	return w, nil
}
