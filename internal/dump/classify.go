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

// Class is the display category of a byte. It selects both the color of
// the byte's hex digits and the glyph shown in the ASCII column.
type Class uint8

const (
	Zero Class = iota
	Whitespace
	Printable
	HighByte
	OtherControl
)

var classNames = [...]string{
	Zero:         "zero",
	Whitespace:   "whitespace",
	Printable:    "printable",
	HighByte:     "high-byte",
	OtherControl: "other-control",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

func Classify(b byte) Class {
	switch {
	case b == 0:
		return Zero
	case b == '\t', b == '\n', b == '\r', b == ' ':
		return Whitespace
	case b > ' ' && b < 0x7f:
		return Printable
	case b >= 0x80:
		return HighByte
	default:
		return OtherControl
	}
}

// glyphs holds the ASCII column representation of every byte value.
var glyphs [256]string

func init() {
	for i := range glyphs {
		b := byte(i)
		switch Classify(b) {
		case Zero:
			glyphs[i] = "•"
		case Printable:
			glyphs[i] = string(rune(b))
		case HighByte:
			glyphs[i] = "×"
		case OtherControl:
			glyphs[i] = "▴"
		}
	}
	glyphs['\t'] = "⇥"
	glyphs['\n'] = "␊"
	glyphs['\r'] = "␍"
	glyphs[' '] = "␣"
}

// Glyph returns the string shown for b in the ASCII column.
func Glyph(b byte) string {
	return glyphs[b]
}
