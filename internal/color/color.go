// Package color decorates report text for terminals.
//
// Callers pick a semantic Tag (success, failure, ...) and a Painter decides the
// escape codes. A disabled Painter returns text unchanged, so the same report
// code serves terminals, pipes and tests.
package color

import (
	"fmt"
	"os"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
)

// Color is a named terminal color as written in configuration.
type Color string

const (
	None   Color = "none"
	Black  Color = "black"
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
	Blue   Color = "blue"
	Purple Color = "purple"
	Cyan   Color = "cyan"
	White  Color = "white"
)

var palette = []Color{None, Black, Red, Green, Yellow, Blue, Purple, Cyan, White}

// Parse validates a configured color name. Matching is case-insensitive.
func Parse(name string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range palette {
		if c == p {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown color %q", name)
}

// Tag is the meaning of a piece of text.
type Tag int

const (
	Plain Tag = iota
	Success
	Failure
	Warning
	Compile
)

func (t Tag) Color() Color {
	switch t {
	case Success:
		return Green
	case Failure:
		return Red
	case Warning:
		return Yellow
	case Compile:
		return Purple
	default:
		return None
	}
}

type Painter struct {
	au *aurora.Aurora
}

// NewPainter returns a painter that emits escape codes only when enabled is true.
func NewPainter(enabled bool) Painter {
	if !enabled {
		return Painter{}
	}
	return Painter{au: aurora.New(aurora.WithColors(true))}
}

// Enabled reports whether f is an interactive terminal.
func Enabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p Painter) Paint(tag Tag, s string) string {
	return p.Color(tag.Color(), s)
}

func (p Painter) Color(c Color, s string) string {
	if p.au == nil || s == "" {
		return s
	}
	var v aurora.Value
	switch c {
	case Black:
		v = p.au.Black(s)
	case Red:
		v = p.au.Red(s)
	case Green:
		v = p.au.Green(s)
	case Yellow:
		v = p.au.Yellow(s)
	case Blue:
		v = p.au.Blue(s)
	case Purple:
		v = p.au.Magenta(s)
	case Cyan:
		v = p.au.Cyan(s)
	case White:
		v = p.au.White(s)
	default:
		return s
	}
	return v.String()
}
