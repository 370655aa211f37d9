package parseopt

import "strconv"

// OptionParser compiles option declarations and parses argument vectors
// against them.
//
// A parser is built once and may be used for any number of Parse calls. All
// per-call state lives in the call itself, but Add must not run concurrently
// with Parse.
type OptionParser struct {
	program string
	minArgs *int
	maxArgs *int
	strings Strings

	byName   map[string]*Definition
	defaults map[string]any // first name -> declared default
	options  []*Definition  // declaration order
}

// New builds a parser from cfg and registers cfg.Options in order.
func New(cfg Config) (*OptionParser, error) {
	p := &OptionParser{
		program:  cfg.Program,
		minArgs:  cfg.MinArgs,
		maxArgs:  cfg.MaxArgs,
		byName:   map[string]*Definition{},
		defaults: map[string]any{},
	}
	if p.minArgs != nil && *p.minArgs == 0 {
		p.minArgs = nil
	}
	if p.minArgs != nil && p.maxArgs != nil && *p.minArgs > *p.maxArgs {
		return nil, schemaError(CodeArgumentBounds, "", map[string]string{
			"min": strconv.Itoa(*p.minArgs),
			"max": strconv.Itoa(*p.maxArgs),
		})
	}

	var s Strings
	if cfg.Strings != nil {
		s = *cfg.Strings
	}
	p.strings = s.withDefaults()

	for _, opt := range cfg.Options {
		if err := p.Add(opt); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config) *OptionParser {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Program returns the program name shown in the usage header.
func (p *OptionParser) Program() string { return p.program }

// MinArgs returns the lower positional bound, if any.
func (p *OptionParser) MinArgs() (int, bool) {
	if p.minArgs == nil {
		return 0, false
	}
	return *p.minArgs, true
}

// MaxArgs returns the upper positional bound, if any.
func (p *OptionParser) MaxArgs() (int, bool) {
	if p.maxArgs == nil {
		return 0, false
	}
	return *p.maxArgs, true
}

// Strings returns the resolved label table.
func (p *OptionParser) Strings() Strings { return p.strings }

// Definitions returns the compiled options in declaration order.
func (p *OptionParser) Definitions() []*Definition {
	return append([]*Definition(nil), p.options...)
}

// Lookup returns the definition registered under name (any spelling).
func (p *OptionParser) Lookup(name string) (*Definition, bool) {
	d, ok := p.byName[name]
	return d, ok
}
