// Package schemafile loads parser schemas from YAML or JSON documents.
//
// A document describes one parser:
//
//	program: fetch
//	minArgs: 1
//	maxArgs: 1
//	strings:
//	  usage: Usage
//	  metavars: {integer: N}
//	options:
//	  - names: [--retries, -r]
//	    type: int
//	    min: 0
//	    default: 3
//	  - name: --help
//	    type: option
//	    cancel: true
//
// Keys that are unknown, or that do not belong to the option's type, are
// rejected. Custom types need a parse function and therefore cannot be
// declared in files; they load but fail compilation.
package schemafile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	parseopt "github.com/reoring/parseopt"
)

// Format selects the document syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatOf picks the format from a file extension; anything but .json is
// read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Error reports an invalid document entry at Path (for example
// "options[2].min").
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "schemafile: " + e.Message
	}
	return "schemafile: " + e.Path + ": " + e.Message
}

func errorf(path, format string, args ...any) *Error {
	return &Error{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Load reads and decodes the schema file at path.
func Load(path string) (parseopt.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parseopt.Config{}, err
	}
	return Decode(data, FormatOf(path))
}

// Decode decodes a schema document in the given format.
func Decode(data []byte, f Format) (parseopt.Config, error) {
	if f == FormatJSON {
		return DecodeJSON(bytes.NewReader(data))
	}
	return DecodeYAML(bytes.NewReader(data))
}

// DecodeYAML decodes the first YAML document of r. Duplicate keys fail with
// a *DuplicateKeyError.
func DecodeYAML(r io.Reader) (parseopt.Config, error) {
	doc, err := readYAML(r)
	if err != nil {
		return parseopt.Config{}, err
	}
	return decodeDocument(doc)
}

// DecodeJSON decodes a single JSON document from r. Duplicate keys fail with
// a *DuplicateKeyError.
func DecodeJSON(r io.Reader) (parseopt.Config, error) {
	doc, err := readJSON(r)
	if err != nil {
		return parseopt.Config{}, err
	}
	return decodeDocument(doc)
}

var (
	documentKeys = keySet("program", "minArgs", "maxArgs", "strings", "options")
	stringsKeys  = keySet("help", "usage", "options", "arguments", "required", "default", "base", "metavars")
	commonKeys   = keySet("name", "names", "target", "type", "required", "redefinable", "default",
		"help", "details", "metavar", "cancel")
	argKeys  = keySet("type", "target", "metavar")
	typeKeys = map[parseopt.Kind]map[string]struct{}{
		parseopt.KindInteger: keySet("min", "max", "base"),
		parseopt.KindFloat:   keySet("min", "max", "nan"),
		parseopt.KindEnum:    keySet("values", "ignoreCase"),
		parseopt.KindOption:  keySet("value"),
		parseopt.KindFlag:    keySet("negate"),
		parseopt.KindRecord:  keySet("args"),
		parseopt.KindCustom:  keySet("argc", "value"),
	}
)

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// checkKeys rejects keys of m found in none of the allowed sets. Keys are
// checked in sorted order so the reported key is stable.
func checkKeys(path string, m map[string]any, allowed ...map[string]struct{}) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
outer:
	for _, k := range keys {
		for _, set := range allowed {
			if _, ok := set[k]; ok {
				continue outer
			}
		}
		return errorf(join(path, k), "unknown key")
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func decodeDocument(doc any) (parseopt.Config, error) {
	var cfg parseopt.Config
	if doc == nil {
		return cfg, nil
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return cfg, errorf("", "document must be a mapping")
	}
	if err := checkKeys("", m, documentKeys); err != nil {
		return cfg, err
	}

	var err error
	if cfg.Program, err = optString(m, "", "program"); err != nil {
		return cfg, err
	}
	if cfg.MinArgs, err = optInt(m, "", "minArgs"); err != nil {
		return cfg, err
	}
	if cfg.MaxArgs, err = optInt(m, "", "maxArgs"); err != nil {
		return cfg, err
	}
	if v, ok := m["strings"]; ok {
		s, err := decodeStrings(v)
		if err != nil {
			return cfg, err
		}
		cfg.Strings = s
	}

	if v, ok := m["options"]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return cfg, errorf("options", "must be a list")
		}
		for i, e := range list {
			opt, err := decodeOption(fmt.Sprintf("options[%d]", i), e)
			if err != nil {
				return cfg, err
			}
			cfg.Options = append(cfg.Options, opt)
		}
	}
	return cfg, nil
}

func decodeStrings(v any) (*parseopt.Strings, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errorf("strings", "must be a mapping")
	}
	if err := checkKeys("strings", m, stringsKeys); err != nil {
		return nil, err
	}
	s := &parseopt.Strings{}
	fields := []struct {
		key string
		dst *string
	}{
		{"help", &s.Help},
		{"usage", &s.Usage},
		{"options", &s.Options},
		{"arguments", &s.Arguments},
		{"required", &s.Required},
		{"default", &s.Default},
		{"base", &s.Base},
	}
	for _, f := range fields {
		str, err := optString(m, "strings", f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = str
	}
	if mv, ok := m["metavars"]; ok {
		mm, ok := mv.(map[string]any)
		if !ok {
			return nil, errorf("strings.metavars", "must be a mapping")
		}
		s.Metavars = make(map[parseopt.Kind]string, len(mm))
		for name, e := range mm {
			kind, ok := parseopt.ParseKind(name)
			if !ok {
				return nil, errorf("strings.metavars."+name, "unknown type")
			}
			str, ok := e.(string)
			if !ok {
				return nil, errorf("strings.metavars."+name, "must be a string")
			}
			s.Metavars[kind] = str
		}
	}
	return s, nil
}

func decodeOption(path string, v any) (parseopt.Option, error) {
	var opt parseopt.Option
	m, ok := v.(map[string]any)
	if !ok {
		return opt, errorf(path, "option must be a mapping")
	}

	kind, err := decodeKind(path, m)
	if err != nil {
		return opt, err
	}
	if err := checkKeys(path, m, commonKeys, typeKeys[kind]); err != nil {
		return opt, err
	}

	_, hasName := m["name"]
	_, hasNames := m["names"]
	switch {
	case hasName && hasNames:
		return opt, errorf(path, "use either name or names")
	case hasName:
		opt.Names, err = stringList(m["name"], join(path, "name"))
	case hasNames:
		opt.Names, err = stringList(m["names"], join(path, "names"))
	}
	if err != nil {
		return opt, err
	}

	if opt.Target, err = optString(m, path, "target"); err != nil {
		return opt, err
	}
	if opt.Help, err = optString(m, path, "help"); err != nil {
		return opt, err
	}
	if opt.Required, err = optBool(m, path, "required"); err != nil {
		return opt, err
	}
	if _, ok := m["redefinable"]; ok {
		b, err := optBool(m, path, "redefinable")
		if err != nil {
			return opt, err
		}
		opt.Redefinable = &b
	}
	if d, ok := m["details"]; ok {
		if opt.Details, err = stringList(d, join(path, "details")); err != nil {
			return opt, err
		}
	}
	if mv, ok := m["metavar"]; ok {
		if opt.Metavar, err = stringList(mv, join(path, "metavar")); err != nil {
			return opt, err
		}
	}
	opt.Default = m["default"]

	cancel, err := optBool(m, path, "cancel")
	if err != nil {
		return opt, err
	}
	if cancel {
		opt.OnOption = func(...any) bool { return true }
	}

	opt.Type, err = decodeType(path, kind, m)
	return opt, err
}

func decodeKind(path string, m map[string]any) (parseopt.Kind, error) {
	v, ok := m["type"]
	if !ok {
		return parseopt.KindString, nil
	}
	name, ok := v.(string)
	if !ok {
		return 0, errorf(join(path, "type"), "must be a string")
	}
	kind, ok := parseopt.ParseKind(name)
	if !ok {
		return 0, errorf(join(path, "type"), "unknown type %q", name)
	}
	return kind, nil
}

func decodeType(path string, kind parseopt.Kind, m map[string]any) (parseopt.TypeSpec, error) {
	switch kind {
	case parseopt.KindInteger:
		t := parseopt.IntegerType{}
		var err error
		if t.Min, err = optInt64(m, path, "min"); err != nil {
			return nil, err
		}
		if t.Max, err = optInt64(m, path, "max"); err != nil {
			return nil, err
		}
		base, err := optInt(m, path, "base")
		if err != nil {
			return nil, err
		}
		if base != nil {
			t.Base = *base
		}
		return t, nil

	case parseopt.KindFloat:
		t := parseopt.FloatType{}
		var err error
		if t.Min, err = optFloat(m, path, "min"); err != nil {
			return nil, err
		}
		if t.Max, err = optFloat(m, path, "max"); err != nil {
			return nil, err
		}
		if t.AllowNaN, err = optBool(m, path, "nan"); err != nil {
			return nil, err
		}
		return t, nil

	case parseopt.KindEnum:
		t := parseopt.EnumType{}
		switch vs := m["values"].(type) {
		case nil:
		case []any:
			t.Values = vs
		case map[string]any:
			t.Labels = vs
		default:
			return nil, errorf(join(path, "values"), "must be a list or a mapping")
		}
		if _, ok := m["ignoreCase"]; ok {
			ignore, err := optBool(m, path, "ignoreCase")
			if err != nil {
				return nil, err
			}
			t.CaseSensitive = !ignore
		}
		return t, nil

	case parseopt.KindOption:
		return parseopt.OptionType{Value: m["value"]}, nil

	case parseopt.KindFlag:
		negate, err := optBool(m, path, "negate")
		return parseopt.FlagType{Negate: negate}, err

	case parseopt.KindRecord:
		return decodeRecord(path, m)

	case parseopt.KindCustom:
		argc, err := optInt(m, path, "argc")
		return parseopt.CustomType{Argc: argc, Value: m["value"]}, err
	}
	t, _ := parseopt.TypeOf(kind)
	return t, nil
}

func decodeRecord(path string, m map[string]any) (parseopt.TypeSpec, error) {
	t := parseopt.RecordType{}
	v, ok := m["args"]
	if !ok || v == nil {
		return t, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errorf(join(path, "args"), "must be a list")
	}
	for i, e := range list {
		argPath := fmt.Sprintf("%s.args[%d]", path, i)
		am, ok := e.(map[string]any)
		if !ok {
			return nil, errorf(argPath, "argument must be a mapping")
		}
		kind, err := decodeKind(argPath, am)
		if err != nil {
			return nil, err
		}
		if err := checkKeys(argPath, am, argKeys, typeKeys[kind]); err != nil {
			return nil, err
		}
		var a parseopt.Arg
		if a.Target, err = optString(am, argPath, "target"); err != nil {
			return nil, err
		}
		if mv, ok := am["metavar"]; ok {
			if a.Metavar, err = stringList(mv, join(argPath, "metavar")); err != nil {
				return nil, err
			}
		}
		if a.Type, err = decodeType(argPath, kind, am); err != nil {
			return nil, err
		}
		t.Args = append(t.Args, a)
	}
	return t, nil
}

func optString(m map[string]any, path, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errorf(join(path, key), "must be a string")
	}
	return s, nil
}

func optBool(m map[string]any, path, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errorf(join(path, key), "must be a boolean")
	}
	return b, nil
}

func optInt64(m map[string]any, path, key string) (*int64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case int64:
		return &n, nil
	case float64:
		if i := int64(n); float64(i) == n {
			return &i, nil
		}
	case string:
		if i, err := strconv.ParseInt(n, 0, 64); err == nil {
			return &i, nil
		}
	}
	return nil, errorf(join(path, key), "must be an integer")
}

func optInt(m map[string]any, path, key string) (*int, error) {
	n, err := optInt64(m, path, key)
	if err != nil || n == nil {
		return nil, err
	}
	i := int(*n)
	return &i, nil
}

func optFloat(m map[string]any, path, key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		return &n, nil
	case int64:
		f := float64(n)
		return &f, nil
	}
	return nil, errorf(join(path, key), "must be a number")
}

// stringList accepts a single string or a list of strings.
func stringList(v any, path string) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, errorf(fmt.Sprintf("%s[%d]", path, i), "must be a string")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errorf(path, "must be a string or a list of strings")
}
