package dsl

import (
	parseopt "github.com/reoring/parseopt"
	"github.com/reoring/parseopt/i18n"
)

// OptionBuilder accumulates one option declaration.
type OptionBuilder struct {
	opt parseopt.Option
}

// Option starts a declaration with the given spellings. The first name
// identifies the option.
func Option(names ...string) *OptionBuilder {
	return &OptionBuilder{opt: parseopt.Option{Names: names}}
}

// Type sets the value type. Options default to strings.
func (b *OptionBuilder) Type(t Typer) *OptionBuilder {
	b.opt.Type = t.TypeSpec()
	return b
}

func (b *OptionBuilder) Target(target string) *OptionBuilder {
	b.opt.Target = target
	return b
}

func (b *OptionBuilder) Default(v any) *OptionBuilder {
	b.opt.Default = v
	return b
}

func (b *OptionBuilder) Required() *OptionBuilder {
	b.opt.Required = true
	return b
}

// Once rejects a second occurrence of the option in one parse.
func (b *OptionBuilder) Once() *OptionBuilder {
	redefinable := false
	b.opt.Redefinable = &redefinable
	return b
}

func (b *OptionBuilder) Metavar(m ...string) *OptionBuilder {
	b.opt.Metavar = m
	return b
}

func (b *OptionBuilder) Details(details ...string) *OptionBuilder {
	b.opt.Details = append(b.opt.Details, details...)
	return b
}

func (b *OptionBuilder) Help(help string) *OptionBuilder {
	b.opt.Help = help
	return b
}

func (b *OptionBuilder) Stringify(fn func(any) string) *OptionBuilder {
	b.opt.Stringify = fn
	return b
}

func (b *OptionBuilder) OnOption(h parseopt.Hook) *OptionBuilder {
	b.opt.OnOption = h
	return b
}

// Build returns the declaration. The builder may be reused afterwards.
func (b *OptionBuilder) Build() parseopt.Option {
	opt := b.opt
	opt.Names = append([]string(nil), b.opt.Names...)
	opt.Details = append([]string(nil), b.opt.Details...)
	if len(opt.Details) == 0 {
		opt.Details = nil
	}
	return opt
}

// HelpOption declares --help/-h. Mentioning it runs fn and cancels parsing,
// so Parse returns parseopt.ErrCancelled.
func HelpOption(fn func()) *OptionBuilder {
	return Option("--help", "-h").
		Type(Value(true)).
		Help(i18n.T("label.show_help", nil)).
		OnOption(func(...any) bool {
			if fn != nil {
				fn()
			}
			return true
		})
}
