// Command parseopt compiles a schema file and parses argument lines against
// it, printing the result as JSON.
//
//	parseopt parse --schema fetch.yaml --line='-r 4 --format=json url'
//	parseopt usage --schema fetch.yaml
//	parseopt check --schema fetch.json
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	json "github.com/goccy/go-json"
	"github.com/kballard/go-shellquote"

	parseopt "github.com/reoring/parseopt"
	"github.com/reoring/parseopt/cli"
	"github.com/reoring/parseopt/i18n"
	"github.com/reoring/parseopt/schemafile"
)

// Globals are the flags shared by all commands.
type Globals struct {
	Verbose bool   `short:"v" help:"Log progress to stderr."`
	Lang    string `env:"PARSEOPT_LANG" default:"en" placeholder:"TAG" help:"Language of labels and messages (en, ja)."`
}

// SchemaOption selects the schema file.
type SchemaOption struct {
	Schema string `short:"s" required:"" env:"PARSEOPT_SCHEMA" type:"existingfile" placeholder:"FILE" help:"Schema file (YAML, or JSON by extension)."`
}

type commandLine struct {
	Globals

	Parse parseCmd `cmd:"" help:"Parse arguments against a schema and print the result as JSON."`
	Usage usageCmd `cmd:"" help:"Print the usage text of a schema."`
	Check checkCmd `cmd:"" help:"Validate a schema and list its options."`
}

// streams carries the output writers into the commands.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

// exitError carries a status code out of a command without printing again.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (g *Globals) logf(s *streams, format string, a ...any) {
	if g.Verbose {
		fmt.Fprintf(s.stderr, format+"\n", a...)
	}
}

func (g *Globals) load(s *streams, path string) (*parseopt.OptionParser, error) {
	i18n.SetLanguage(g.Lang)
	g.logf(s, "schema: path=%s format=%s lang=%s", path, schemafile.FormatOf(path), i18n.Match(g.Lang))
	cfg, err := schemafile.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := cli.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	g.logf(s, "schema: %d options compiled", len(p.Definitions()))
	return p, nil
}

type parseCmd struct {
	SchemaOption
	Line string   `placeholder:"ARGS" help:"Argument line, split with shell quoting rules and prepended to ARGS (use --line=...)."`
	Args []string `arg:"" optional:"" help:"Arguments to parse (put them after --)."`
}

func (c *parseCmd) Run(g *Globals, s *streams) error {
	p, err := g.load(s, c.Schema)
	if err != nil {
		return err
	}
	var args []string
	if c.Line != "" {
		words, err := shellquote.Split(c.Line)
		if err != nil {
			return fmt.Errorf("--line: %w", err)
		}
		args = append(args, words...)
	}
	args = append(args, c.Args...)
	g.logf(s, "parse: %d tokens %q", len(args), args)

	res, err := p.Parse(args)
	switch {
	case errors.Is(err, parseopt.ErrCancelled):
		g.logf(s, "parse: cancelled by option hook")
		return writeJSON(s.stdout, map[string]any{"cancelled": true})
	case err != nil:
		if _, ok := parseopt.AsParseError(err); ok {
			cli.Report(p, s.stderr, err.Error())
			return &exitError{code: 1}
		}
		return err
	}
	return writeJSON(s.stdout, map[string]any{
		"arguments": res.Arguments,
		"options":   res.Options,
	})
}

type usageCmd struct {
	SchemaOption
	Extra string `help:"Text appended after the option list."`
}

func (c *usageCmd) Run(g *Globals, s *streams) error {
	p, err := g.load(s, c.Schema)
	if err != nil {
		return err
	}
	return p.WriteUsage(s.stdout, c.Extra)
}

type checkCmd struct {
	SchemaOption
}

func (c *checkCmd) Run(g *Globals, s *streams) error {
	p, err := g.load(s, c.Schema)
	if err != nil {
		return err
	}
	for _, d := range p.Definitions() {
		fmt.Fprintf(s.stdout, "%s\t%s\ttarget=%s\targc=%d\n", strings.Join(d.Names, ","), d.Kind, d.Target, d.Argc)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var cl commandLine
	code := -1
	parser, err := kong.New(&cl,
		kong.Name("parseopt"),
		kong.Description("Compile parseopt schemas and parse argument lines against them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { code = c }),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "parseopt: %v\n", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if code >= 0 {
		return code
	}
	if err != nil {
		parser.FatalIfErrorf(err)
		if code >= 0 {
			return code
		}
		return 2
	}
	if err := ctx.Run(&cl.Globals, &streams{stdout: stdout, stderr: stderr}); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(stderr, "parseopt: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
