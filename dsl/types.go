package dsl

import parseopt "github.com/reoring/parseopt"

// Typer is implemented by every type builder.
type Typer interface {
	TypeSpec() parseopt.TypeSpec
}

type specTyper struct{ spec parseopt.TypeSpec }

func (s specTyper) TypeSpec() parseopt.TypeSpec { return s.spec }

// Of adapts a literal type variant.
func Of(spec parseopt.TypeSpec) Typer { return specTyper{spec: spec} }

func String() Typer  { return Of(parseopt.StringType{}) }
func Bool() Typer    { return Of(parseopt.BooleanType{}) }
func Object() Typer  { return Of(parseopt.ObjectType{}) }
func Flag() Typer    { return Of(parseopt.FlagType{}) }
func Negated() Typer { return Of(parseopt.FlagType{Negate: true}) }

// Value is an option without argument that stores v when mentioned.
func Value(v any) Typer { return Of(parseopt.OptionType{Value: v}) }

// IntBuilder builds an integer type.
type IntBuilder struct{ t parseopt.IntegerType }

func Int() *IntBuilder { return &IntBuilder{} }

func (b *IntBuilder) Min(n int64) *IntBuilder { b.t.Min = &n; return b }
func (b *IntBuilder) Max(n int64) *IntBuilder { b.t.Max = &n; return b }

// Base sets the radix (2..36) used for parsing and formatting.
func (b *IntBuilder) Base(base int) *IntBuilder { b.t.Base = base; return b }

func (b *IntBuilder) TypeSpec() parseopt.TypeSpec { return b.t }

// FloatBuilder builds a float type.
type FloatBuilder struct{ t parseopt.FloatType }

func Float() *FloatBuilder { return &FloatBuilder{} }

func (b *FloatBuilder) Min(f float64) *FloatBuilder { b.t.Min = &f; return b }
func (b *FloatBuilder) Max(f float64) *FloatBuilder { b.t.Max = &f; return b }
func (b *FloatBuilder) AllowNaN() *FloatBuilder     { b.t.AllowNaN = true; return b }

func (b *FloatBuilder) TypeSpec() parseopt.TypeSpec { return b.t }

// EnumBuilder builds an enum type. Matching ignores case unless
// CaseSensitive is called.
type EnumBuilder struct{ t parseopt.EnumType }

// Enum labels each value by its formatted form.
func Enum(values ...any) *EnumBuilder {
	return &EnumBuilder{t: parseopt.EnumType{Values: values}}
}

// EnumLabels maps explicit labels to values.
func EnumLabels(labels map[string]any) *EnumBuilder {
	return &EnumBuilder{t: parseopt.EnumType{Labels: labels}}
}

func (b *EnumBuilder) CaseSensitive() *EnumBuilder { b.t.CaseSensitive = true; return b }

func (b *EnumBuilder) TypeSpec() parseopt.TypeSpec { return b.t }

// ArgBuilder declares one argument of a record.
type ArgBuilder struct{ a parseopt.Arg }

// Arg starts a record argument of type t.
func Arg(t Typer) *ArgBuilder { return &ArgBuilder{a: parseopt.Arg{Type: t.TypeSpec()}} }

func (b *ArgBuilder) Target(target string) *ArgBuilder { b.a.Target = target; return b }
func (b *ArgBuilder) Metavar(m ...string) *ArgBuilder  { b.a.Metavar = m; return b }
func (b *ArgBuilder) Stringify(fn func(any) string) *ArgBuilder {
	b.a.Stringify = fn
	return b
}

// RecordBuilder builds a record type.
type RecordBuilder struct{ t parseopt.RecordType }

func Record(args ...*ArgBuilder) *RecordBuilder {
	b := &RecordBuilder{}
	for _, a := range args {
		b.t.Args = append(b.t.Args, a.a)
	}
	return b
}

// Create sets the container factory. Without it records are []any.
func (b *RecordBuilder) Create(fn func() parseopt.Container) *RecordBuilder {
	b.t.Create = fn
	return b
}

// Fields assembles records into parseopt.Fields keyed by argument target.
func (b *RecordBuilder) Fields() *RecordBuilder {
	return b.Create(func() parseopt.Container { return parseopt.Fields{} })
}

func (b *RecordBuilder) TypeSpec() parseopt.TypeSpec { return b.t }

// CustomBuilder builds a custom type around a parse function.
type CustomBuilder struct{ t parseopt.CustomType }

func Custom(parse func(args ...string) (any, error)) *CustomBuilder {
	return &CustomBuilder{t: parseopt.CustomType{Parse: parse}}
}

// Argc sets the number of consumed tokens (-1 for one optional token).
func (b *CustomBuilder) Argc(n int) *CustomBuilder { b.t.Argc = &n; return b }

// Value is stored when the option is given without its optional token.
func (b *CustomBuilder) Value(v any) *CustomBuilder { b.t.Value = v; return b }

func (b *CustomBuilder) Stringify(fn func(any) string) *CustomBuilder {
	b.t.Stringify = fn
	return b
}

func (b *CustomBuilder) TypeSpec() parseopt.TypeSpec { return b.t }
