package parseopt

import "strings"

// Kind enumerates the option types.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindObject
	KindFlag
	KindOption
	KindEnum
	KindRecord
	KindCustom
)

var kindNames = [...]string{
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBoolean: "boolean",
	KindObject:  "object",
	KindFlag:    "flag",
	KindOption:  "option",
	KindEnum:    "enum",
	KindRecord:  "record",
	KindCustom:  "custom",
}

var kindAliases = map[string]string{
	"int":    "integer",
	"number": "float",
	"bool":   "boolean",
	"str":    "string",
	"obj":    "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a type name or one of its short aliases ("int",
// "number", "bool", "str", "obj").
func ParseKind(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	if full, ok := kindAliases[name]; ok {
		name = full
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// TypeSpec is the closed set of option type variants. Each variant carries
// the payload its kind needs; the compiler switches over them exhaustively.
type TypeSpec interface {
	Kind() Kind
	isTypeSpec()
}

// StringType takes one token verbatim.
type StringType struct{}

// BooleanType takes one token from the boolean vocabulary
// (true/on/1/yes, false/off/0/no).
type BooleanType struct{}

// ObjectType takes one token holding a JSON document.
type ObjectType struct{}

// IntegerType takes one token parsed as int64.
type IntegerType struct {
	Min  *int64
	Max  *int64
	Base int // 2..36, 0 means decimal input with an optional 0x prefix
}

// FloatType takes one token parsed as float64.
type FloatType struct {
	Min      *float64
	Max      *float64
	AllowNaN bool
}

// FlagType is a boolean switch. Mentioning the option yields true (false
// when Negate is set); --flag=VALUE accepts the boolean vocabulary.
type FlagType struct {
	Negate bool
}

// OptionType takes no tokens and yields Value when mentioned. A nil Value
// defaults to the option's first name without leading dashes.
type OptionType struct {
	Value any
}

// EnumType takes one token that must match a label. Labels come either from
// Values (the label is the formatted value) or from the Labels mapping.
// Matching ignores case unless CaseSensitive is set.
type EnumType struct {
	Values        []any
	Labels        map[string]any
	CaseSensitive bool
}

// RecordType consumes the tokens of all Args in order and assembles the
// parsed values. Create builds the container; nil yields []any.
type RecordType struct {
	Args   []Arg
	Create func() Container
}

// CustomType delegates parsing to Parse. Argc defaults to -1 (one optional
// token); Value is used when the option is mentioned without tokens.
type CustomType struct {
	Argc      *int
	Parse     func(args ...string) (any, error)
	Stringify func(v any) string
	Value     any
}

func (StringType) Kind() Kind  { return KindString }
func (BooleanType) Kind() Kind { return KindBoolean }
func (ObjectType) Kind() Kind  { return KindObject }
func (IntegerType) Kind() Kind { return KindInteger }
func (FloatType) Kind() Kind   { return KindFloat }
func (FlagType) Kind() Kind    { return KindFlag }
func (OptionType) Kind() Kind  { return KindOption }
func (EnumType) Kind() Kind    { return KindEnum }
func (RecordType) Kind() Kind  { return KindRecord }
func (CustomType) Kind() Kind  { return KindCustom }

func (StringType) isTypeSpec()  {}
func (BooleanType) isTypeSpec() {}
func (ObjectType) isTypeSpec()  {}
func (IntegerType) isTypeSpec() {}
func (FloatType) isTypeSpec()   {}
func (FlagType) isTypeSpec()    {}
func (OptionType) isTypeSpec()  {}
func (EnumType) isTypeSpec()    {}
func (RecordType) isTypeSpec()  {}
func (CustomType) isTypeSpec()  {}

// TypeOf returns the variant for k with an empty payload.
func TypeOf(k Kind) (TypeSpec, bool) {
	switch k {
	case KindString:
		return StringType{}, true
	case KindInteger:
		return IntegerType{}, true
	case KindFloat:
		return FloatType{}, true
	case KindBoolean:
		return BooleanType{}, true
	case KindObject:
		return ObjectType{}, true
	case KindFlag:
		return FlagType{}, true
	case KindOption:
		return OptionType{}, true
	case KindEnum:
		return EnumType{}, true
	case KindRecord:
		return RecordType{}, true
	case KindCustom:
		return CustomType{}, true
	}
	return nil, false
}

// Hook is invoked with the parsed value right after it was assigned. Record
// hooks receive the record's constituent values as separate arguments.
// Returning true cancels parsing.
type Hook func(values ...any) bool

// Container collects the values of a record's arguments by target.
type Container interface {
	Set(target string, value any)
	Get(target string) any
}

// Fields is a map-backed Container.
type Fields map[string]any

func (f Fields) Set(target string, value any) { f[target] = value }
func (f Fields) Get(target string) any        { return f[target] }

// Ptr returns a pointer to v, for the optional fields of Config and the
// numeric type variants.
func Ptr[T any](v T) *T { return &v }
