package parseopt

import (
	"io"
	"strings"
)

// Usage renders the usage text. extra, when non-empty, is appended verbatim
// and terminated by exactly one newline.
func (p *OptionParser) Usage(extra string) string {
	var b strings.Builder
	p.writeUsage(&b, extra)
	return b.String()
}

// WriteUsage writes the usage text to w.
func (p *OptionParser) WriteUsage(w io.Writer, extra string) error {
	_, err := io.WriteString(w, p.Usage(extra))
	return err
}

func (p *OptionParser) writeUsage(b *strings.Builder, extra string) {
	s := p.strings
	b.WriteString(s.Usage + ": " + p.program + " [" + s.Options + "]")
	if p.maxArgs == nil || *p.maxArgs != 0 {
		b.WriteString(" [" + s.Arguments + "]")
	}
	b.WriteString("\n\n" + s.Options + ":\n")

	for _, d := range p.options {
		writeOption(b, s, d)
	}

	if extra != "" {
		b.WriteString(extra)
		if !strings.HasSuffix(extra, "\n") {
			b.WriteByte('\n')
		}
	}
}

func writeOption(b *strings.Builder, s Strings, d *Definition) {
	metavar := strings.Join(d.Metavar, " ")
	hasMetavar := len(d.Metavar) > 0

	names := make([]string, len(d.Names))
	for i, name := range d.Names {
		switch {
		case !hasMetavar:
			names[i] = name
		case d.Argc < 2 && strings.HasPrefix(name, "--"):
			if d.Argc < 0 {
				names[i] = name + "[=" + metavar + "]"
			} else {
				names[i] = name + "=" + metavar
			}
		default:
			names[i] = name + " " + metavar
		}
	}

	var details []string
	switch {
	case d.Required:
		details = append(details, s.Required)
	case d.Argc > 0 && d.HasDefault:
		details = append(details, s.Default+": "+d.Stringify(d.Default))
	}
	details = append(details, d.Details...)
	clause := ""
	if len(details) > 0 {
		clause = "  (" + strings.Join(details, ", ") + ")"
	}

	b.WriteString("  ")
	if hasMetavar {
		names[0] += clause
		b.WriteString(strings.Join(names, "\n  "))
	} else {
		b.WriteString(strings.Join(names, ", ") + clause)
	}
	if d.Help != "" {
		for _, line := range strings.Split(d.Help, "\n") {
			b.WriteString("\n        " + line)
		}
	}
	b.WriteString("\n\n")
}
