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

// Package fileio opens dump inputs and creates outputs without ever
// overwriting an existing file.
package fileio

import (
	"os"

	"github.com/pkg/errors"
)

var ErrOutputExists = errors.New("output file already exists")

// Open opens path for reading and returns the file together with its size.
func Open(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "can't open input")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, errors.Wrap(err, "can't stat input")
	}
	if fi.IsDir() {
		f.Close()
		return nil, 0, errors.Errorf("%s is a directory", path)
	}
	return f, fi.Size(), nil
}

// CreateNew creates path for writing. It fails with ErrOutputExists if
// anything already exists at path.
func CreateNew(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, errors.Wrapf(ErrOutputExists, "%s", path)
		}
		return nil, errors.Wrap(err, "can't create output")
	}
	return f, nil
}
