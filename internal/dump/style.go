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

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI color indices per byte class.
var classColors = [...]lipgloss.Color{
	Zero:         "8",
	Whitespace:   "4",
	Printable:    "2",
	HighByte:     "3",
	OtherControl: "1",
}

// Palette renders dump fields with the color of their byte class. The zero
// value and NoColor() leave text untouched.
type Palette struct {
	enabled bool
	classes [len(classColors)]lipgloss.Style
	sep     lipgloss.Style
}

// NoColor returns a palette that renders plain text, as used for file
// output that must round-trip through the reverse pipeline.
func NoColor() *Palette {
	return &Palette{}
}

// NewPalette returns a palette bound to a renderer for w. If forceColor is
// set, the renderer emits ANSI colors even when w is not a terminal.
func NewPalette(w io.Writer, forceColor bool) *Palette {
	r := lipgloss.NewRenderer(w)
	if forceColor {
		r.SetColorProfile(termenv.ANSI256)
	}
	return newPalette(r)
}

func newPalette(r *lipgloss.Renderer) *Palette {
	p := &Palette{enabled: true}
	for i, c := range classColors {
		p.classes[i] = r.NewStyle().Foreground(c)
	}
	p.sep = r.NewStyle().Faint(true)
	return p
}

func (p *Palette) Enabled() bool {
	return p != nil && p.enabled
}

// Render styles s with the color of class c.
func (p *Palette) Render(c Class, s string) string {
	if !p.Enabled() {
		return s
	}
	return p.classes[c].Render(s)
}

func (p *Palette) Separator() string {
	if !p.Enabled() {
		return Separator
	}
	return p.sep.Render(Separator)
}
