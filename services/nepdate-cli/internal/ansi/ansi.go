// Package ansi holds the escape codes used for coloured terminal output.
package ansi

// SGR codes.
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// Paint wraps s in code and a reset. An empty code returns s unchanged.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + Reset
}
