package parseopt

import (
	"strconv"
	"strings"
)

const endOfOptions = "--"

// parseState is the per-call scratch state of Parse.
type parseState struct {
	p      *OptionParser
	result *Result
	got    map[string]struct{} // targets set during this call
}

// Parse tokenizes args left to right.
//
//   - "--" ends option processing; everything after it is positional.
//   - "--name" and "--name=value" select long options.
//   - "-abc" is a cluster of short options; at most one of them may consume
//     the following tokens.
//   - anything else is a positional argument.
//
// It returns ErrCancelled when an option hook asked to stop, and a
// *ParseError on the first violation.
func (p *OptionParser) Parse(args []string) (*Result, error) {
	st := &parseState{
		p: p,
		result: &Result{
			Arguments: []string{},
			Options:   map[string]any{},
		},
		got: map[string]struct{}{},
	}

	for _, d := range p.options {
		if v, ok := p.defaults[d.Name]; ok && v != nil {
			st.result.Options[d.Target] = v
		}
	}

	i := 0
scan:
	for ; i < len(args); i++ {
		arg := args[i]
		var (
			next int
			err  error
		)
		switch {
		case arg == endOfOptions:
			i++
			break scan
		case len(arg) > 2 && strings.HasPrefix(arg, "--"):
			next, err = st.long(args, i)
		case len(arg) > 1 && arg[0] == '-':
			next, err = st.short(args, i)
		default:
			st.result.Arguments = append(st.result.Arguments, arg)
			continue
		}
		if err != nil {
			return nil, err
		}
		i = next
	}

	st.result.Arguments = append(st.result.Arguments, args[i:]...)

	if err := p.checkArgumentCount(len(st.result.Arguments)); err != nil {
		return nil, err
	}
	for _, d := range p.options {
		if _, ok := st.got[d.Target]; d.Required && !ok {
			return nil, parseError(CodeMissingRequired, d.Name, map[string]string{"option": d.Name}, nil)
		}
	}
	return st.result, nil
}

// long handles args[i] of the form --name or --name=value and returns the
// index of the last token it consumed.
func (st *parseState) long(args []string, i int) (int, error) {
	name, inline, hasInline := strings.Cut(args[i], "=")
	d, ok := st.p.byName[name]
	if !ok {
		return i, parseError(CodeUnknownOption, name, map[string]string{"option": name}, nil)
	}

	var value any
	switch {
	case hasInline && d.Argc == 0:
		return i, parseError(CodeUnexpectedArgument, name, map[string]string{"option": name}, nil)
	case hasInline && d.Argc > 1:
		return i, missingArgument(d, name)
	case hasInline:
		v, err := convert(d, name, inline)
		if err != nil {
			return i, err
		}
		value = v
	case d.Argc < 1:
		value = d.Value
	default:
		if i+d.Argc >= len(args) {
			return i, missingArgument(d, name)
		}
		v, err := convert(d, name, args[i+1:i+1+d.Argc]...)
		if err != nil {
			return i, err
		}
		value = v
		i += d.Argc
	}
	return i, st.assign(d, name, value)
}

// short handles a cluster like -abc and returns the index of the last token
// it consumed.
func (st *parseState) short(args []string, i int) (int, error) {
	arg := args[i]
	if strings.Contains(arg, "=") {
		return i, parseError(CodeIllegalSyntax, "", map[string]string{"arg": arg}, nil)
	}

	tookArgs := false
	for _, r := range arg[1:] {
		name := "-" + string(r)
		d, ok := st.p.byName[name]
		if !ok {
			return i, parseError(CodeUnknownOption, name, map[string]string{"option": name}, nil)
		}

		var value any
		if d.Argc < 1 {
			value = d.Value
		} else {
			if tookArgs {
				return i, parseError(CodeTooManyArguments, name, map[string]string{
					"option": name,
					"argc":   strconv.Itoa(d.Argc),
					"arg":    arg,
				}, nil)
			}
			if i+d.Argc >= len(args) {
				return i, missingArgument(d, name)
			}
			v, err := convert(d, name, args[i+1:i+1+d.Argc]...)
			if err != nil {
				return i, err
			}
			value = v
			i += d.Argc
			tookArgs = true
		}
		if err := st.assign(d, name, value); err != nil {
			return i, err
		}
	}
	return i, nil
}

// assign stores value under the option's target and runs its hook.
func (st *parseState) assign(d *Definition, name string, value any) error {
	if _, ok := st.got[d.Target]; ok && !d.Redefinable {
		return parseError(CodeRedefinedOption, name, map[string]string{"option": name}, nil)
	}
	st.got[d.Target] = struct{}{}
	st.result.Options[d.Target] = value

	if d.OnOption == nil {
		return nil
	}
	hookArgs := []any{value}
	if d.Kind == KindRecord {
		hookArgs = recordValues(d, value)
	}
	if d.OnOption(hookArgs...) {
		return ErrCancelled
	}
	return nil
}

func convert(d *Definition, name string, raw ...string) (any, error) {
	v, err := d.Parse(raw...)
	if err == nil {
		return v, nil
	}
	if pe, ok := AsParseError(err); ok {
		return nil, pe
	}
	return nil, parseError(CodeInvalidValue, name, map[string]string{
		"option": name,
		"value":  strings.Join(raw, " "),
	}, err)
}

func missingArgument(d *Definition, name string) *ParseError {
	return parseError(CodeMissingArgument, name, map[string]string{
		"option": name,
		"argc":   strconv.Itoa(d.Argc),
	}, nil)
}

func (p *OptionParser) checkArgumentCount(n int) error {
	if (p.maxArgs == nil || n <= *p.maxArgs) && (p.minArgs == nil || n >= *p.minArgs) {
		return nil
	}
	params := map[string]string{"count": strconv.Itoa(n)}
	if p.minArgs != nil {
		params["min"] = strconv.Itoa(*p.minArgs)
	}
	if p.maxArgs != nil {
		params["max"] = strconv.Itoa(*p.maxArgs)
	}
	return parseError(CodeArgumentCount, "", params, nil)
}
