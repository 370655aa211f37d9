package parseopt

import (
	"strings"

	"github.com/reoring/parseopt/internal/naming"
)

// Add compiles opt and registers its names. On error the parser is left
// unchanged.
func (p *OptionParser) Add(opt Option) error {
	names := opt.Names
	if len(names) == 0 {
		return schemaError(CodeNoName, "", nil)
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !naming.Valid(name) {
			return schemaError(CodeInvalidName, name, map[string]string{"name": name})
		}
		_, dup := seen[name]
		if _, exists := p.byName[name]; exists || dup {
			return schemaError(CodeDuplicateName, name, map[string]string{"name": name})
		}
		seen[name] = struct{}{}
	}

	d := &Definition{
		Name:        names[0],
		Names:       append([]string(nil), names...),
		Target:      opt.Target,
		Required:    opt.Required,
		Redefinable: opt.Redefinable == nil || *opt.Redefinable,
		Default:     opt.Default,
		HasDefault:  opt.Default != nil,
		Metavar:     opt.Metavar,
		Details:     append([]string(nil), opt.Details...),
		Stringify:   opt.Stringify,
		OnOption:    opt.OnOption,
	}
	if d.Target == "" {
		d.Target = naming.Target(d.Name)
	}
	if err := p.compile(d, opt.Type); err != nil {
		return err
	}

	d.Help = strings.TrimSpace(opt.Help)
	if d.Help == "" {
		d.Help = p.strings.Help
	}

	for _, name := range names {
		p.byName[name] = d
	}
	if d.HasDefault {
		p.defaults[d.Name] = d.Default
	}
	p.options = append(p.options, d)
	return nil
}
