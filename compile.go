package parseopt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/reoring/parseopt/internal/naming"
)

// compile normalizes the type dependent parts of d. The caller has already
// set Name, Target and the user supplied Metavar, Stringify, Default and
// Details. It fails with a SchemaError when the declaration is inconsistent.
func (p *OptionParser) compile(d *Definition, t TypeSpec) error {
	if t == nil {
		t = StringType{}
	}
	d.Type = t
	d.Kind = t.Kind()

	switch t := t.(type) {
	case FlagType:
		d.Argc = -1
		d.Value = !t.Negate
		d.Parse = parseBoolArgs
		if !d.HasDefault && len(d.Names) > 0 {
			d.Default = false
			if v, ok := p.targetDefault(d.Target); ok {
				d.Default = v
			}
			d.HasDefault = true
		}

	case OptionType:
		d.Argc = 0
		d.Value = t.Value
		if d.Value == nil {
			d.Value = naming.StripDashes(d.Name)
		}

	case EnumType:
		if err := p.compileEnum(d, t); err != nil {
			return err
		}

	case IntegerType:
		if err := p.compileInteger(d, t); err != nil {
			return err
		}

	case FloatType:
		if err := p.compileFloat(d, t); err != nil {
			return err
		}

	case RecordType:
		if err := p.compileRecord(d, t); err != nil {
			return err
		}

	case CustomType:
		d.Argc = -1
		if t.Argc != nil && *t.Argc >= -1 {
			d.Argc = *t.Argc
		}
		if t.Parse == nil {
			return schemaError(CodeMissingParse, d.Name, map[string]string{"option": d.Name})
		}
		d.Parse = t.Parse
		d.Value = t.Value
		if d.Stringify == nil {
			d.Stringify = t.Stringify
		}

	case StringType:
		d.Argc = 1
		d.Parse = parseStringArgs

	case BooleanType:
		d.Argc = 1
		d.Parse = parseBoolArgs

	case ObjectType:
		d.Argc = 1
		d.Parse = parseObjectArgs

	default:
		return schemaError(CodeUnknownType, d.Name, map[string]string{
			"option": d.Name,
			"type":   fmt.Sprintf("%T", t),
		})
	}

	if d.Stringify == nil {
		d.Stringify = canonicalStringify(d)
	}

	if d.Metavar == nil {
		if mv, ok := p.strings.Metavars[d.Kind]; ok {
			d.Metavar = []string{mv}
		}
	}
	count := len(d.Metavar)
	if (d.Argc == -1 && count > 1) || (d.Argc != -1 && d.Argc != count) {
		return schemaError(CodeMetavarCount, d.Name, map[string]string{
			"option":  d.Name,
			"metavar": metavarString(d.Metavar),
		})
	}

	return p.normalizeDefault(d)
}

// targetDefault returns the default of the latest registered option that
// shares target.
func (p *OptionParser) targetDefault(target string) (any, bool) {
	for i := len(p.options) - 1; i >= 0; i-- {
		prev := p.options[i]
		if prev.Target != target {
			continue
		}
		if v, ok := p.defaults[prev.Name]; ok {
			return v, true
		}
	}
	return nil, false
}

func canonicalStringify(d *Definition) func(any) string {
	switch d.Kind {
	case KindString:
		return stringifyString
	case KindInteger:
		base := d.Type.(IntegerType).Base
		return func(v any) string {
			n, ok := toInt64(v)
			if !ok {
				return stringifyAny(v)
			}
			return formatInteger(n, base)
		}
	case KindBoolean, KindFloat:
		return stringifyPrimitive
	case KindObject:
		return stringifyObject
	case KindRecord:
		return func(v any) string { return stringifyRecord(d, v) }
	}
	return stringifyAny
}

func (p *OptionParser) compileEnum(d *Definition, t EnumType) error {
	d.Argc = 1
	if len(t.Values) == 0 && len(t.Labels) == 0 {
		return schemaError(CodeEmptyEnum, d.Name, map[string]string{"option": d.Name})
	}
	if d.Stringify == nil {
		d.Stringify = stringifyAny
	}

	fold := cases.Fold()
	key := func(label string) string {
		if t.CaseSensitive {
			return label
		}
		return fold.String(label)
	}

	values := make(map[string]any, len(t.Values)+len(t.Labels))
	var labels []string
	if len(t.Values) > 0 {
		for _, v := range t.Values {
			values[key(fmt.Sprint(v))] = v
			labels = append(labels, d.Stringify(v))
		}
	} else {
		for label, v := range t.Labels {
			values[key(label)] = v
			labels = append(labels, d.Stringify(label))
		}
		sort.Strings(labels)
	}
	d.Values = values

	if d.Metavar == nil {
		d.Metavar = []string{"<" + strings.Join(labels, ", ") + ">"}
	}

	d.Parse = func(args ...string) (any, error) {
		if len(args) != 1 {
			return nil, errRecordArgCount
		}
		if v, ok := values[key(args[0])]; ok {
			return v, nil
		}
		return nil, errUnknownLabel
	}
	return nil
}

func (p *OptionParser) compileInteger(d *Definition, t IntegerType) error {
	d.Argc = 1
	if t.Min != nil && t.Max != nil && *t.Min > *t.Max {
		return schemaError(CodeMinMax, d.Name, map[string]string{"option": d.Name})
	}
	if t.Base != 0 && (t.Base < 2 || t.Base > 36) {
		return schemaError(CodeInvalidBase, d.Name, map[string]string{
			"option": d.Name,
			"base":   strconv.Itoa(t.Base),
		})
	}
	switch t.Base {
	case 0, 8, 10, 16:
	default:
		d.Details = append(d.Details, p.strings.Base+": "+strconv.Itoa(t.Base))
	}

	if d.Metavar == nil {
		format := func(n *int64) string { return formatInteger(*n, t.Base) }
		d.Metavar = boundsMetavar(t.Min != nil, t.Max != nil,
			func() string { return format(t.Min) },
			func() string { return format(t.Max) })
	}

	d.Parse = func(args ...string) (any, error) {
		if len(args) != 1 {
			return nil, errRecordArgCount
		}
		n, err := parseInteger(args[0], t.Base)
		if err != nil {
			return nil, err
		}
		if (t.Min != nil && n < *t.Min) || (t.Max != nil && n > *t.Max) {
			return nil, errOutOfRange
		}
		return n, nil
	}
	return nil
}

func (p *OptionParser) compileFloat(d *Definition, t FloatType) error {
	d.Argc = 1
	if t.Min != nil && t.Max != nil && *t.Min > *t.Max {
		return schemaError(CodeMinMax, d.Name, map[string]string{"option": d.Name})
	}

	if d.Metavar == nil {
		d.Metavar = boundsMetavar(t.Min != nil, t.Max != nil,
			func() string { return formatFloat(*t.Min) },
			func() string { return formatFloat(*t.Max) })
	}

	d.Parse = func(args ...string) (any, error) {
		if len(args) != 1 {
			return nil, errRecordArgCount
		}
		f, err := parseFloat(args[0], t.AllowNaN)
		if err != nil {
			return nil, err
		}
		if f != f && !t.AllowNaN {
			return nil, errNotANumber
		}
		if (t.Min != nil && f < *t.Min) || (t.Max != nil && f > *t.Max) {
			return nil, errOutOfRange
		}
		return f, nil
	}
	return nil
}

// boundsMetavar renders "MIN...MAX", "...MAX" or "MIN...". It returns nil
// without bounds so the type's generic metavar applies.
func boundsMetavar(hasMin, hasMax bool, lo, hi func() string) []string {
	switch {
	case hasMin && hasMax:
		return []string{lo() + "..." + hi()}
	case hasMax:
		return []string{"..." + hi()}
	case hasMin:
		return []string{lo() + "..."}
	}
	return nil
}

func (p *OptionParser) compileRecord(d *Definition, t RecordType) error {
	if len(t.Args) == 0 {
		return schemaError(CodeEmptyRecord, d.Name, map[string]string{"option": d.Name})
	}
	d.Argc = 0
	var metavar []string
	children := make([]*Definition, 0, len(t.Args))
	for i, a := range t.Args {
		c := &Definition{
			Name:        fmt.Sprintf("%s[%d]", d.Name, i),
			Target:      a.Target,
			Metavar:     a.Metavar,
			Stringify:   a.Stringify,
			Redefinable: true,
		}
		if c.Target == "" {
			c.Target = strconv.Itoa(i)
		}
		if err := p.compile(c, a.Type); err != nil {
			return err
		}
		if c.Argc < 1 {
			return schemaError(CodeRecordArg, d.Name, map[string]string{
				"option": d.Name,
				"index":  strconv.Itoa(i),
			})
		}
		metavar = append(metavar, c.Metavar...)
		d.Argc += c.Argc
		children = append(children, c)
	}
	d.Args = children
	if d.Metavar == nil {
		d.Metavar = metavar
	}

	d.Parse = func(args ...string) (any, error) {
		if len(args) != d.Argc {
			return nil, errRecordArgCount
		}
		values := make([]any, len(children))
		off := 0
		for i, c := range children {
			v, err := c.Parse(args[off : off+c.Argc]...)
			if err != nil {
				return nil, err
			}
			values[i] = v
			off += c.Argc
		}
		if t.Create == nil {
			return values, nil
		}
		rec := t.Create()
		for i, c := range children {
			rec.Set(c.Target, values[i])
		}
		return rec, nil
	}
	return nil
}

// recordValues returns the constituent values of a record value in
// argument order.
func recordValues(d *Definition, v any) []any {
	switch rec := v.(type) {
	case []any:
		return rec
	case Container:
		out := make([]any, len(d.Args))
		for i, c := range d.Args {
			out[i] = rec.Get(c.Target)
		}
		return out
	}
	return []any{v}
}

func stringifyRecord(d *Definition, v any) string {
	values := recordValues(d, v)
	parts := make([]string, 0, len(d.Args))
	for i, c := range d.Args {
		var e any
		if i < len(values) {
			e = values[i]
		}
		parts = append(parts, c.Stringify(e))
	}
	return strings.Join(parts, " ")
}

// normalizeDefault converts the declared default to the option's value
// type, so Result.Options holds the same types whether a value came from the
// command line or from the default.
func (p *OptionParser) normalizeDefault(d *Definition) error {
	if !d.HasDefault {
		return nil
	}
	invalid := func() error {
		return schemaError(CodeInvalidDefault, d.Name, map[string]string{
			"option": d.Name,
			"value":  fmt.Sprint(d.Default),
		})
	}
	switch d.Kind {
	case KindInteger:
		if s, ok := d.Default.(string); ok {
			v, err := d.Parse(s)
			if err != nil {
				return invalid()
			}
			d.Default = v
			return nil
		}
		n, ok := toInt64(d.Default)
		if !ok {
			return invalid()
		}
		d.Default = n
	case KindFloat:
		if s, ok := d.Default.(string); ok {
			v, err := d.Parse(s)
			if err != nil {
				return invalid()
			}
			d.Default = v
			return nil
		}
		f, ok := toFloat64(d.Default)
		if !ok {
			return invalid()
		}
		d.Default = f
	case KindBoolean, KindFlag:
		switch v := d.Default.(type) {
		case bool:
		case string:
			b, err := ParseBool(v)
			if err != nil {
				return invalid()
			}
			d.Default = b
		default:
			return invalid()
		}
	}
	return nil
}
