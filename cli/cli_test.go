package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	parseopt "github.com/reoring/parseopt"
)

func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prevExit, prevNoColor := exit, color.NoColor
	exit = func(c int) { code = c }
	color.NoColor = true
	t.Cleanup(func() {
		exit = prevExit
		color.NoColor = prevNoColor
	})
	return &code
}

func testParser(t *testing.T) *parseopt.OptionParser {
	t.Helper()
	p, err := New(parseopt.Config{
		Program: "demo",
		MaxArgs: parseopt.Ptr(0),
		Options: []parseopt.Option{
			{Names: []string{"--help"}, Type: parseopt.OptionType{}, OnOption: func(...any) bool { return true }},
			{Names: []string{"--n"}, Type: parseopt.IntegerType{}, Help: "Count."},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestParseArgs_Success(t *testing.T) {
	code := stubExit(t)
	var out bytes.Buffer
	res, ok := ParseArgs(testParser(t), []string{"--n", "2"}, &out)
	if !ok || res.Options["n"] != int64(2) {
		t.Fatalf("unexpected result: %#v, %v", res, ok)
	}
	if *code != -1 || out.Len() != 0 {
		t.Fatalf("unexpected exit %d / output %q", *code, out.String())
	}
}

func TestParseArgs_Cancelled(t *testing.T) {
	code := stubExit(t)
	var out bytes.Buffer
	res, ok := ParseArgs(testParser(t), []string{"--help"}, &out)
	if ok || res != nil || *code != -1 {
		t.Fatalf("expected silent cancel, got %#v %v exit=%d", res, ok, *code)
	}
}

func TestParseArgs_ErrorExits(t *testing.T) {
	code := stubExit(t)
	var out bytes.Buffer
	_, ok := ParseArgs(testParser(t), []string{"--n", "x"}, &out)
	if ok || *code != 1 {
		t.Fatalf("expected exit 1, got ok=%v exit=%d", ok, *code)
	}
	want := "*** illegal value for option --n: x\n\n" +
		"Usage: demo [OPTIONS]\n\nOPTIONS:\n" +
		"  --help\n        No help available for this option.\n\n" +
		"  --n=INTEGER\n        Count.\n\n"
	if out.String() != want {
		t.Fatalf("output mismatch:\n%q\nwant\n%q", out.String(), want)
	}
}

func TestNew_DefaultsProgram(t *testing.T) {
	p, err := New(parseopt.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Program() != filepath.Base(os.Args[0]) {
		t.Fatalf("program = %q", p.Program())
	}
	if !strings.HasPrefix(p.Usage(""), "Usage: "+Program()+" ") {
		t.Fatalf("unexpected usage header: %q", p.Usage(""))
	}
}
