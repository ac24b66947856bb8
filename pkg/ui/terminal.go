package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Banner is printed at the top of interactive runs
const Banner = `
  ┌──────────────────────────────────────┐
  │  iggallery · Instagram → static page │
  └──────────────────────────────────────┘
`

var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	quiet  bool
	color  = isTerminal(os.Stdout)
)

// colorize returns a function that wraps text with ANSI color codes when
// color output is enabled
func colorize(colorString string) func(string) string {
	return func(text string) string {
		mu.Lock()
		enabled := color
		mu.Unlock()
		if !enabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SetQuietMode suppresses everything but errors
func SetQuietMode(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput redirects normal and error output. Color is turned off for
// writers that are not terminals.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = stdout
	errOut = stderr
	f, ok := stdout.(*os.File)
	color = ok && isTerminal(f)
}

func write(toErr bool, s string) {
	mu.Lock()
	w := out
	if toErr {
		w = errOut
	} else if quiet {
		mu.Unlock()
		return
	}
	mu.Unlock()
	fmt.Fprintln(w, s)
}

// PrintBanner prints the banner
func PrintBanner() {
	write(false, Cyan(Banner))
}

// PrintError prints an error message in red. It is shown in quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	write(true, Red(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	write(false, Green(msg))
}

// PrintInfo prints a label and value pair
func PrintInfo(label string, value string) {
	write(false, fmt.Sprintf("%s: %s", Cyan(label), Yellow(value)))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	write(false, Yellow(msg))
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	write(false, Magenta(msg))
}

// Println prints plain text
func Println(msg string) {
	write(false, msg)
}
