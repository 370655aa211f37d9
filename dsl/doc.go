// Package dsl provides fluent builders for parseopt declarations.
//
// Overview
//   - Option(names...) starts an option; chain Type/Default/Required/Help and
//     finish with Build (or hand the builder to Parser().Option).
//   - Type builders: String(), Bool(), Object(), Flag(), Negated(), Value(v),
//     Int(), Float(), Enum(values...), EnumLabels(m), Record(args...),
//     Custom(parse). Of(spec) adapts any parseopt.TypeSpec.
//   - Parser() collects program name, positional bounds and options and builds
//     a *parseopt.OptionParser.
//   - HelpOption(fn) is the usual --help/-h option: it runs fn and cancels
//     parsing.
//
// Example
//
//	var p *parseopt.OptionParser
//	p = g.Parser().
//	    Program("fetch").
//	    Args(1, 1).
//	    Option(
//	        g.HelpOption(func() { fmt.Print(p.Usage("")) }),
//	        g.Option("--retries", "-r").Type(g.Int().Min(0).Max(10)).Default(3),
//	        g.Option("--format").Type(g.Enum("json", "text")).Default("text"),
//	        g.Option("--verbose", "-v").Type(g.Flag()),
//	    ).
//	    MustBuild()
//	res, err := p.Parse(os.Args[1:])
package dsl
