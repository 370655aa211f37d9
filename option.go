package parseopt

import "github.com/reoring/parseopt/i18n"

// Option declares one option. Only Names is mandatory.
type Option struct {
	// Names lists the spellings, e.g. {"--count", "-c"}. The first name
	// identifies the option.
	Names []string
	// Target is the key in Result.Options. Defaults to a name derived from
	// the first name (--dry-run -> dryRun, --DRY-RUN -> DRY_RUN). Several
	// options may share a target.
	Target string
	// Type selects the value type. Nil means StringType.
	Type     TypeSpec
	Required bool
	// Redefinable controls whether the option may be given more than once.
	// Nil means true.
	Redefinable *bool
	// Default is seeded into Result.Options before every parse. Nil means no
	// default.
	Default any
	// Metavar names the argument placeholder(s) shown in the usage, one per
	// consumed token. Nil infers it from the type.
	Metavar   []string
	Details   []string
	Help      string
	Stringify func(v any) string
	OnOption  Hook
}

// Arg declares one argument of a record option.
type Arg struct {
	// Target is the key in the record container. Defaults to the argument's
	// index ("0", "1", ...).
	Target    string
	Type      TypeSpec
	Metavar   []string
	Stringify func(v any) string
}

// Definition is a compiled option. Definitions are built once and must not
// be modified afterwards.
type Definition struct {
	Name        string   // identity: the first name, or "--rec[i]" for record arguments
	Names       []string // all spellings, empty for record arguments
	Target      string
	Kind        Kind
	Type        TypeSpec
	Argc        int // 0 none, N exactly N, -1 one optional token
	Required    bool
	Redefinable bool
	Default     any
	HasDefault  bool
	Value       any // assigned when the option is given without consuming tokens
	Metavar     []string
	Details     []string
	Help        string
	Parse       func(args ...string) (any, error)
	Stringify   func(v any) string
	OnOption    Hook

	Values map[string]any // enum lookup, keyed by (folded) label
	Args   []*Definition  // record arguments in order
}

// Result is the outcome of a successful parse.
type Result struct {
	Arguments []string
	Options   map[string]any
}

// Strings holds the labels used in usage output and the default metavar per
// type. Empty fields are filled from the current i18n translator.
type Strings struct {
	Help      string
	Usage     string
	Options   string
	Arguments string
	Required  string
	Default   string
	Base      string
	Metavars  map[Kind]string
}

var defaultMetavars = map[Kind]string{
	KindString:  "STRING",
	KindInteger: "INTEGER",
	KindFloat:   "FLOAT",
	KindBoolean: "BOOLEAN",
	KindObject:  "OBJECT",
	KindEnum:    "VALUE",
	KindCustom:  "VALUE",
}

// DefaultStrings returns the labels of the current i18n language.
func DefaultStrings() Strings {
	return Strings{}.withDefaults()
}

func (s Strings) withDefaults() Strings {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = i18n.T(key, nil)
		}
	}
	fill(&s.Help, "label.help")
	fill(&s.Usage, "label.usage")
	fill(&s.Options, "label.options")
	fill(&s.Arguments, "label.arguments")
	fill(&s.Required, "label.required")
	fill(&s.Default, "label.default")
	fill(&s.Base, "label.base")

	metavars := make(map[Kind]string, len(defaultMetavars))
	for k, v := range defaultMetavars {
		metavars[k] = v
	}
	for k, v := range s.Metavars {
		metavars[k] = v
	}
	s.Metavars = metavars
	return s
}

// Config configures an OptionParser.
type Config struct {
	Program string
	// MinArgs and MaxArgs bound the number of positional arguments. Nil (or
	// a MinArgs of 0) means unbounded.
	MinArgs *int
	MaxArgs *int
	Strings *Strings
	Options []Option
}
