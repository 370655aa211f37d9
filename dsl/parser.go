package dsl

import parseopt "github.com/reoring/parseopt"

// ParserBuilder accumulates a parseopt.Config.
type ParserBuilder struct {
	cfg parseopt.Config
}

// Parser starts an empty parser declaration.
func Parser() *ParserBuilder { return &ParserBuilder{} }

func (b *ParserBuilder) Program(name string) *ParserBuilder {
	b.cfg.Program = name
	return b
}

// Args bounds the number of positional arguments to [lo, hi].
func (b *ParserBuilder) Args(lo, hi int) *ParserBuilder {
	return b.MinArgs(lo).MaxArgs(hi)
}

func (b *ParserBuilder) MinArgs(n int) *ParserBuilder {
	b.cfg.MinArgs = &n
	return b
}

func (b *ParserBuilder) MaxArgs(n int) *ParserBuilder {
	b.cfg.MaxArgs = &n
	return b
}

// Strings overrides usage labels; empty fields keep the localized defaults.
func (b *ParserBuilder) Strings(s parseopt.Strings) *ParserBuilder {
	b.cfg.Strings = &s
	return b
}

func (b *ParserBuilder) Option(opts ...*OptionBuilder) *ParserBuilder {
	for _, o := range opts {
		b.cfg.Options = append(b.cfg.Options, o.Build())
	}
	return b
}

// Config returns the accumulated configuration.
func (b *ParserBuilder) Config() parseopt.Config {
	cfg := b.cfg
	cfg.Options = append([]parseopt.Option(nil), b.cfg.Options...)
	return cfg
}

func (b *ParserBuilder) Build() (*parseopt.OptionParser, error) {
	return parseopt.New(b.Config())
}

// MustBuild is like Build but panics on error.
func (b *ParserBuilder) MustBuild() *parseopt.OptionParser {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
