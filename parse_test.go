package parseopt_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	parseopt "github.com/reoring/parseopt"
)

func mustParser(t *testing.T, cfg parseopt.Config) *parseopt.OptionParser {
	t.Helper()
	p, err := parseopt.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	pe, ok := parseopt.AsParseError(err)
	if !ok {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if pe.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, pe.Code, err)
	}
}

func TestParse_InlineAndSeparateValueAgree(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--count", "-c"}, Type: parseopt.IntegerType{}},
	}})
	for _, args := range [][]string{{"--count=5"}, {"--count", "5"}, {"-c", "5"}} {
		res, err := p.Parse(args)
		if err != nil {
			t.Fatalf("Parse(%q): %v", args, err)
		}
		if got := res.Options["count"]; got != int64(5) {
			t.Fatalf("Parse(%q): count = %#v, want 5", args, got)
		}
	}
}

func TestParse_Redefinition(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--once"}, Redefinable: parseopt.Ptr(false)},
		{Names: []string{"--many"}},
	}})

	_, err := p.Parse([]string{"--once", "a", "--once", "b"})
	expectCode(t, err, parseopt.CodeRedefinedOption)

	res, err := p.Parse([]string{"--many", "a", "--many", "b"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["many"] != "b" {
		t.Fatalf("expected last value b, got %#v", res.Options["many"])
	}

	// redefinition tracking is per call
	if _, err := p.Parse([]string{"--once", "a"}); err != nil {
		t.Fatalf("second call: %v", err)
	}
}

func TestParse_ShortCluster(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"-a"}, Type: parseopt.FlagType{}},
		{Names: []string{"-b"}, Type: parseopt.IntegerType{}, Metavar: []string{"N"}},
		{Names: []string{"-c"}, Type: parseopt.IntegerType{}},
	}})
	want := map[string]any{"a": true, "b": int64(5)}
	for _, args := range [][]string{{"-ab", "5"}, {"-ba", "5"}} {
		res, err := p.Parse(args)
		if err != nil {
			t.Fatalf("Parse(%q): %v", args, err)
		}
		if diff := cmp.Diff(want, res.Options); diff != "" {
			t.Fatalf("Parse(%q) options mismatch (-want +got):\n%s", args, diff)
		}
	}

	_, err := p.Parse([]string{"-bc", "1", "2"})
	expectCode(t, err, parseopt.CodeTooManyArguments)

	_, err = p.Parse([]string{"-a=1"})
	expectCode(t, err, parseopt.CodeIllegalSyntax)

	_, err = p.Parse([]string{"-az"})
	expectCode(t, err, parseopt.CodeUnknownOption)
}

func TestParse_ArgumentBounds(t *testing.T) {
	p := mustParser(t, parseopt.Config{MinArgs: parseopt.Ptr(1), MaxArgs: parseopt.Ptr(2)})
	cases := []struct {
		args []string
		ok   bool
	}{
		{nil, false},
		{[]string{"x"}, true},
		{[]string{"x", "y"}, true},
		{[]string{"x", "y", "z"}, false},
	}
	for _, c := range cases {
		_, err := p.Parse(c.args)
		if c.ok && err != nil {
			t.Fatalf("Parse(%q): %v", c.args, err)
		}
		if !c.ok {
			expectCode(t, err, parseopt.CodeArgumentCount)
		}
	}
}

func TestParse_ArgumentCountMessage(t *testing.T) {
	p := mustParser(t, parseopt.Config{MaxArgs: parseopt.Ptr(1)})
	_, err := p.Parse([]string{"a", "b"})
	expectCode(t, err, parseopt.CodeArgumentCount)
	if want := "illegal number of arguments: 2, maximum is 1"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestParse_Terminator(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--foo"}, Type: parseopt.FlagType{}},
	}})
	res, err := p.Parse([]string{"first", "--foo", "--", "--bar", "baz"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "--bar", "baz"}, res.Arguments); diff != "" {
		t.Fatalf("arguments mismatch (-want +got):\n%s", diff)
	}
	if res.Options["foo"] != true {
		t.Fatalf("expected foo=true, got %#v", res.Options["foo"])
	}
}

func TestParse_LonePositionals(t *testing.T) {
	p := mustParser(t, parseopt.Config{})
	res, err := p.Parse([]string{"-", "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if diff := cmp.Diff([]string{"-", "x"}, res.Arguments); diff != "" {
		t.Fatalf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Enum(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--mode"}, Type: parseopt.EnumType{Values: []any{"a", "b"}}},
		{Names: []string{"--exact"}, Type: parseopt.EnumType{Values: []any{"a"}, CaseSensitive: true}},
		{Names: []string{"--level"}, Type: parseopt.EnumType{Labels: map[string]any{"low": 1, "high": 9}}},
	}})

	res, err := p.Parse([]string{"--mode", "A", "--level", "HIGH"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["mode"] != "a" || res.Options["level"] != 9 {
		t.Fatalf("unexpected options: %#v", res.Options)
	}

	_, err = p.Parse([]string{"--mode", "c"})
	expectCode(t, err, parseopt.CodeInvalidValue)

	_, err = p.Parse([]string{"--exact", "A"})
	expectCode(t, err, parseopt.CodeInvalidValue)
}

func TestParse_RecordDefaultsToSequence(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--point"}, Type: parseopt.RecordType{Args: []parseopt.Arg{
			{Type: parseopt.IntegerType{}},
			{Type: parseopt.IntegerType{}},
		}}},
	}})
	res, err := p.Parse([]string{"--point", "3", "4", "rest"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if diff := cmp.Diff([]any{int64(3), int64(4)}, res.Options["point"]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"rest"}, res.Arguments); diff != "" {
		t.Fatalf("arguments mismatch (-want +got):\n%s", diff)
	}

	_, err = p.Parse([]string{"--point", "3"})
	expectCode(t, err, parseopt.CodeMissingArgument)

	_, err = p.Parse([]string{"--point=3"})
	expectCode(t, err, parseopt.CodeMissingArgument)
}

func TestParse_RecordContainerAndHook(t *testing.T) {
	var seen []any
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{
			Names: []string{"--size"},
			Type: parseopt.RecordType{
				Args: []parseopt.Arg{
					{Target: "w", Type: parseopt.IntegerType{}},
					{Target: "unit", Type: parseopt.EnumType{Values: []any{"px", "em"}}},
				},
				Create: func() parseopt.Container { return parseopt.Fields{} },
			},
			OnOption: func(values ...any) bool {
				seen = values
				return false
			},
		},
	}})
	res, err := p.Parse([]string{"--size", "12", "EM"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := parseopt.Fields{"w": int64(12), "unit": "em"}
	if diff := cmp.Diff(want, res.Options["size"]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{int64(12), "em"}, seen); diff != "" {
		t.Fatalf("hook args mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HookCancels(t *testing.T) {
	called := 0
	p := mustParser(t, parseopt.Config{
		MinArgs: parseopt.Ptr(1),
		Options: []parseopt.Option{
			{Names: []string{"--help", "-h"}, Type: parseopt.OptionType{}, OnOption: func(...any) bool {
				called++
				return true
			}},
			{Names: []string{"--name"}, Required: true},
		},
	})
	res, err := p.Parse([]string{"-h", "--unknown"})
	if !errors.Is(err, parseopt.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result on cancel, got %#v", res)
	}
	if called != 1 {
		t.Fatalf("hook called %d times", called)
	}
}

func TestParse_OptionTypeAndInlineValues(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--fast"}, Target: "mode", Type: parseopt.OptionType{}},
		{Names: []string{"--slow"}, Target: "mode", Type: parseopt.OptionType{Value: 0}},
		{Names: []string{"--verbose"}, Type: parseopt.FlagType{}},
	}})

	res, err := p.Parse([]string{"--fast"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["mode"] != "fast" {
		t.Fatalf("mode = %#v", res.Options["mode"])
	}

	res, err = p.Parse([]string{"--fast", "--slow"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["mode"] != 0 {
		t.Fatalf("mode = %#v", res.Options["mode"])
	}

	_, err = p.Parse([]string{"--fast=1"})
	expectCode(t, err, parseopt.CodeUnexpectedArgument)

	res, err = p.Parse([]string{"--verbose=off"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["verbose"] != false {
		t.Fatalf("verbose = %#v", res.Options["verbose"])
	}

	_, err = p.Parse([]string{"--verbose=maybe"})
	expectCode(t, err, parseopt.CodeInvalidValue)
}

func TestParse_FlagSharesDefaultWithNegation(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--color"}, Type: parseopt.FlagType{}, Default: true},
		{Names: []string{"--no-color"}, Target: "color", Type: parseopt.FlagType{Negate: true}},
	}})

	res, err := p.Parse(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["color"] != true {
		t.Fatalf("default color = %#v", res.Options["color"])
	}

	res, err = p.Parse([]string{"--no-color"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["color"] != false {
		t.Fatalf("color = %#v", res.Options["color"])
	}
}

func TestParse_DefaultsAndRequired(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--jobs"}, Type: parseopt.IntegerType{}, Default: 4},
		{Names: []string{"--name"}, Required: true},
	}})

	_, err := p.Parse(nil)
	expectCode(t, err, parseopt.CodeMissingRequired)
	if want := "missing required option: --name"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}

	res, err := p.Parse([]string{"--name", "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"jobs": int64(4), "name": "x"}
	if diff := cmp.Diff(want, res.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	_, err = p.Parse([]string{"--name"})
	expectCode(t, err, parseopt.CodeMissingArgument)
}

func TestParse_UnknownOption(t *testing.T) {
	p := mustParser(t, parseopt.Config{})
	_, err := p.Parse([]string{"--nope=1"})
	expectCode(t, err, parseopt.CodeUnknownOption)
	if want := "unknown option: --nope"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestParse_Numbers(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--mask"}, Type: parseopt.IntegerType{Base: 16}},
		{Names: []string{"--n"}, Type: parseopt.IntegerType{Min: parseopt.Ptr[int64](1), Max: parseopt.Ptr[int64](10)}},
		{Names: []string{"--ratio"}, Type: parseopt.FloatType{Max: parseopt.Ptr(1.0)}},
		{Names: []string{"--any"}, Type: parseopt.FloatType{AllowNaN: true}},
	}})

	res, err := p.Parse([]string{"--mask", "0xff", "--n", "0x0a", "--ratio", "0.25"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["mask"] != int64(255) || res.Options["n"] != int64(10) || res.Options["ratio"] != 0.25 {
		t.Fatalf("unexpected options: %#v", res.Options)
	}

	res, err = p.Parse([]string{"--mask", "ff", "--any", "abc"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["mask"] != int64(255) {
		t.Fatalf("mask = %#v", res.Options["mask"])
	}
	if f, ok := res.Options["any"].(float64); !ok || !math.IsNaN(f) {
		t.Fatalf("any = %#v, want NaN", res.Options["any"])
	}

	for _, args := range [][]string{
		{"--n", "0"},
		{"--n", "11"},
		{"--n", "1.5"},
		{"--n", "x"},
		{"--ratio", "2"},
		{"--ratio", "NaN"},
		{"--ratio", "x"},
	} {
		_, err := p.Parse(args)
		expectCode(t, err, parseopt.CodeInvalidValue)
		pe, _ := parseopt.AsParseError(err)
		if pe.Cause == nil {
			t.Fatalf("Parse(%q): expected a cause", args)
		}
	}
}

func TestParse_Object(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--data"}, Type: parseopt.ObjectType{}},
	}})
	res, err := p.Parse([]string{`--data={"a":[1,"x"],"b":null}`})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"a": []any{float64(1), "x"}, "b": nil}
	if diff := cmp.Diff(want, res.Options["data"]); diff != "" {
		t.Fatalf("object mismatch (-want +got):\n%s", diff)
	}

	_, err = p.Parse([]string{"--data", `{"a":1} x`})
	expectCode(t, err, parseopt.CodeInvalidValue)
}

func TestParse_CustomType(t *testing.T) {
	p := mustParser(t, parseopt.Config{Options: []parseopt.Option{
		{Names: []string{"--level", "-l"}, Type: parseopt.CustomType{
			Value: "auto",
			Parse: func(args ...string) (any, error) {
				if args[0] == "bad" {
					return nil, errors.New("bad level")
				}
				return "level:" + args[0], nil
			},
		}},
	}})

	res, err := p.Parse([]string{"--level"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["level"] != "auto" {
		t.Fatalf("level = %#v", res.Options["level"])
	}

	res, err = p.Parse([]string{"--level=3"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Options["level"] != "level:3" {
		t.Fatalf("level = %#v", res.Options["level"])
	}

	_, err = p.Parse([]string{"--level=bad"})
	expectCode(t, err, parseopt.CodeInvalidValue)
}
