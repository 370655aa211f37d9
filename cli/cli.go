// Package cli wires an OptionParser to the process: it reads os.Args,
// reports parse errors together with the usage and exits with status 1.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	parseopt "github.com/reoring/parseopt"
)

// exit is swapped by tests.
var exit = os.Exit

var banner = color.New(color.FgRed, color.Bold)

// Program returns the base name of the running executable.
func Program() string {
	if len(os.Args) == 0 {
		return ""
	}
	return filepath.Base(os.Args[0])
}

// New is parseopt.New with Program defaulting to the executable name.
func New(cfg parseopt.Config) (*parseopt.OptionParser, error) {
	if cfg.Program == "" {
		cfg.Program = Program()
	}
	return parseopt.New(cfg)
}

// Parse parses os.Args[1:] and reports failures on stdout.
func Parse(p *parseopt.OptionParser) (*parseopt.Result, bool) {
	return ParseArgs(p, os.Args[1:], os.Stdout)
}

// ParseArgs parses args. On a parse error it prints the message and the
// usage to w and exits with status 1. It returns false when an option hook
// cancelled parsing; the caller should then stop (usually with status 0).
func ParseArgs(p *parseopt.OptionParser, args []string, w io.Writer) (*parseopt.Result, bool) {
	res, err := p.Parse(args)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, parseopt.ErrCancelled):
		return nil, false
	}
	Fail(p, w, err.Error())
	return nil, false
}

// Fail reports msg like Report, then exits with status 1.
func Fail(p *parseopt.OptionParser, w io.Writer, msg string) {
	Report(p, w, msg)
	exit(1)
}

// Report prints "*** msg", a blank line and the usage to w. The banner is
// colored unless color.NoColor is set (it is when stdout is not a terminal).
func Report(p *parseopt.OptionParser, w io.Writer, msg string) {
	fmt.Fprintf(w, "%s\n\n", banner.Sprint("*** "+msg))
	_ = p.WriteUsage(w, "")
}
