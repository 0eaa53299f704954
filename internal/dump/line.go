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
	"fmt"
	"strings"
)

// Separator divides the address, hex and ASCII fields of a dump line. The
// reverse pipeline splits on it.
const Separator = "┃"

const (
	hexDigits      = "0123456789abcdef"
	upperHexDigits = "0123456789ABCDEF"
)

// AddressWidth returns the number of hex digits needed for the addresses of
// a file of the given size, ceil(log16(size)), but at least one.
func AddressWidth(size int64) int {
	w := 1
	for p := int64(16); p < size && w < 16; p *= 16 {
		w++
	}
	return w
}

// Formatter turns chunks of bytes into dump lines. All lines produced by
// the same Formatter have their fields at the same columns.
type Formatter struct {
	BytesPerLine int
	AddrWidth    int
	Uppercase    bool
	Palette      *Palette
}

func (f *Formatter) digits() string {
	if f.Uppercase {
		return upperHexDigits
	}
	return hexDigits
}

func (f *Formatter) address(addr int64) string {
	if f.Uppercase {
		return fmt.Sprintf("0x%0*X", f.AddrWidth, addr)
	}
	return fmt.Sprintf("0x%0*x", f.AddrWidth, addr)
}

// Format renders chunk, which starts at addr in the input, as one
// newline-terminated dump line:
//
//	" 0x<addr> ┃ <hex bytes><padding> ┃ <glyphs>\n"
//
// chunk must hold between 1 and BytesPerLine bytes.
func (f *Formatter) Format(addr int64, chunk []byte) string {
	if len(chunk) == 0 || len(chunk) > f.BytesPerLine {
		panic("dump: chunk length out of range")
	}
	digits := f.digits()
	sep := f.Palette.Separator()

	var sb strings.Builder
	sb.WriteByte(' ')
	sb.WriteString(f.address(addr))
	sb.WriteByte(' ')
	sb.WriteString(sep)
	sb.WriteByte(' ')

	for i, b := range chunk {
		if i > 0 {
			sb.WriteByte(' ')
		}
		pair := string([]byte{digits[b>>4], digits[b&0xf]})
		sb.WriteString(f.Palette.Render(Classify(b), pair))
	}
	sb.WriteString(strings.Repeat("   ", f.BytesPerLine-len(chunk)))

	sb.WriteByte(' ')
	sb.WriteString(sep)
	sb.WriteByte(' ')
	for _, b := range chunk {
		sb.WriteString(f.Palette.Render(Classify(b), Glyph(b)))
	}
	sb.WriteByte('\n')
	return sb.String()
}
