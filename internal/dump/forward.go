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
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/asig/hexthing/internal/byterange"
)

// Stats summarizes a forward run.
type Stats struct {
	Lines int
	Bytes int64
}

// Forward dumps the window win of in to out, one line per chunk of
// f.BytesPerLine bytes. Addresses are absolute offsets into in.
func Forward(in io.ReadSeeker, out io.Writer, win byterange.Window, f *Formatter) (Stats, error) {
	var st Stats
	if f.BytesPerLine < 1 {
		return st, errors.Errorf("invalid bytes per line: %d", f.BytesPerLine)
	}
	if _, err := in.Seek(win.Start, io.SeekStart); err != nil {
		return st, errors.Wrapf(err, "can't seek to 0x%x", win.Start)
	}
	log.Debug().Msgf("Dumping from 0x%x, length %d, %d bytes per line", win.Start, win.Length, f.BytesPerLine)

	buf := make([]byte, f.BytesPerLine)
	addr := win.Start
	for {
		n, err := io.ReadFull(in, buf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return st, errors.Wrapf(err, "can't read input at 0x%x", addr)
		}
		if n == 0 {
			break
		}
		if !win.Unbounded() {
			if st.Bytes >= win.Length {
				break
			}
			if rem := win.Length - st.Bytes; int64(n) > rem {
				n = int(rem)
			}
		}

		if _, err := io.WriteString(out, f.Format(addr, buf[:n])); err != nil {
			return st, errors.Wrap(err, "can't write output")
		}
		addr += int64(n)
		st.Bytes += int64(n)
		st.Lines++
	}

	log.Debug().Msgf("Dumped %d bytes in %d lines", st.Bytes, st.Lines)
	return st, nil
}
