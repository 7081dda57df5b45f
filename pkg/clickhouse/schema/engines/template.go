package engines

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder syntax: `$$` is an escaped dollar, `$name` and `${name}` are variables, anything else after `$` is invalid
var placeholderRe = regexp.MustCompile(`\$(?:(\$)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\}|())`)

func substitute(tmpl string, vars map[string]string) (string, error) {
	var b strings.Builder
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(tmpl, -1) {
		b.WriteString(tmpl[last:m[0]])
		last = m[1]

		switch {
		case m[2] >= 0: // escaped
			b.WriteByte('$')
		case m[4] >= 0 || m[6] >= 0: // named or braced
			name := ""
			if m[4] >= 0 {
				name = tmpl[m[4]:m[5]]
			} else {
				name = tmpl[m[6]:m[7]]
			}
			value, ok := vars[name]
			if !ok {
				return "", &InvalidTablePathError{Path: tmpl, Reason: fmt.Sprintf("unknown placeholder %q", name)}
			}
			b.WriteString(value)
		default:
			return "", &InvalidTablePathError{Path: tmpl, Reason: fmt.Sprintf("invalid placeholder at position %d", m[0])}
		}
	}
	b.WriteString(tmpl[last:])
	return b.String(), nil
}
