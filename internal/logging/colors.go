package logging

import "github.com/fatih/color"

// Per-level color, used to tint the level letter at the start of each log
// line. fatih/color owns the ANSI sequences instead of us hand-rolling
// escape byte slices.
var levelColor = map[Level]*color.Color{
	Error: color.New(color.FgRed, color.Bold),
	Warn:  color.New(color.FgYellow, color.Bold),
	Info:  color.New(color.FgGreen),
	Debug: color.New(color.FgCyan),
}

func (l Level) color() *color.Color {
	if c, ok := levelColor[l]; ok {
		return c
	}
	return color.New(color.FgWhite)
}

var ansiReset = []byte("\033[0m")
