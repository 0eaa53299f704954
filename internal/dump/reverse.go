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
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnrecognizedLineFormat = errors.New("unrecognized input format for reverse operation")
	ErrInvalidHex             = errors.New("unable to decode hex")
)

// LineError reports the 1-based input line a reverse run failed on.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%v on line %d", e.Err, e.Line)
	}
	return fmt.Sprintf("%v %q on line %d", e.Err, e.Text, e.Line)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// hexField extracts the hex payload of a dump line. A line without
// separators is a bare hex stream.
func hexField(line string) (string, bool) {
	fields := strings.Split(strings.TrimSpace(line), Separator)
	switch len(fields) {
	case 1:
		return fields[0], true
	case 2, 3:
		return fields[1], true
	default:
		return "", false
	}
}

// Reverse reads dump lines from in, decodes their hex fields and writes the
// resulting bytes to out. The first malformed line aborts the whole run.
func Reverse(in io.Reader, out io.Writer) (int64, error) {
	r := bufio.NewReader(in)

	var written int64
	lineNo := 0
	for {
		line, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return written, errors.Wrapf(rerr, "can't read line %d", lineNo+1)
		}
		if line == "" && rerr == io.EOF {
			break
		}
		lineNo++

		field, ok := hexField(line)
		if !ok {
			return written, &LineError{Line: lineNo, Err: ErrUnrecognizedLineFormat}
		}
		field = strings.ReplaceAll(field, " ", "")

		data, err := hex.DecodeString(field)
		if err != nil {
			return written, &LineError{Line: lineNo, Text: field, Err: ErrInvalidHex}
		}
		n, err := out.Write(data)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "can't write output")
		}
		if rerr == io.EOF {
			break
		}
	}

	log.Debug().Msgf("Decoded %d bytes from %d lines", written, lineNo)
	return written, nil
}
