package main

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"climux/internal/vtmodel"
)

// render draws the active terminal's live cell grid to stdout,
// downsampling colors to the host's actual color profile. This is a
// minimal reference renderer: the full sidebar/overlay widget set is
// explicitly out of scope (spec.md §1).
func render(grid [][]vtmodel.Cell, cursor vtmodel.CursorPos, cursorVisible bool) {
	profile := termenv.ColorProfile()
	var b strings.Builder
	b.WriteString("\x1b[H")
	for _, row := range grid {
		for _, cell := range row {
			if cell.Width == 0 {
				continue
			}
			b.WriteString(styledCell(profile, cell))
		}
		b.WriteString("\x1b[0m\r\n")
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH", cursor.Row+1, cursor.Col+1)
	if cursorVisible {
		b.WriteString("\x1b[?25h")
	} else {
		b.WriteString("\x1b[?25l")
	}
	fmt.Print(b.String())
}

func styledCell(profile termenv.Profile, cell vtmodel.Cell) string {
	s := termenv.String(string(cell.Ch))
	s = applyColor(profile, s, cell)
	if cell.Bold {
		s = s.Bold()
	}
	if cell.Underline {
		s = s.Underline()
	}
	if cell.Italic {
		s = s.Italic()
	}
	if cell.Reverse {
		s = s.Reverse()
	}
	if cell.Dim {
		s = s.Faint()
	}
	if cell.Hidden {
		s = s.Crossout() // closest termenv primitive to "conceal"
	}
	return s.String()
}

func applyColor(profile termenv.Profile, s termenv.Style, cell vtmodel.Cell) termenv.Style {
	if fg := toTermenvColor(profile, cell.Fg); fg != nil {
		s = s.Foreground(fg)
	}
	if bg := toTermenvColor(profile, cell.Bg); bg != nil {
		s = s.Background(bg)
	}
	return s
}

func toTermenvColor(profile termenv.Profile, c vtmodel.Color) termenv.Color {
	switch c.Kind {
	case vtmodel.ColorIndexed:
		return profile.Color(fmt.Sprintf("%d", c.Index))
	case vtmodel.ColorRGB:
		return profile.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	default:
		return nil
	}
}
