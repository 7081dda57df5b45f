package errors

import (
	"slices"
	"strings"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// parseQualifiedName splits runtime function name, e.g. "github.com/x/pkg.(*Type).Method".
// Package name may contain dots, the last two components are then taken as type and method.
func parseQualifiedName(qualifiedName string) (pkg, typ, method string) {
	lastPart := qualifiedName[strings.LastIndex(qualifiedName, "/")+1:]
	components := strings.Split(lastPart, ".")
	switch n := len(components); {
	case n < 2:
		return "", "", ""
	case n == 2:
		return components[0], "", components[1]
	default:
		return strings.Join(components[:n-2], "."), components[n-2], components[n-1]
	}
}

// ExtractShortStackTrace joins functions which wrapped err, innermost first.
// Coded errors carry no frame of their own, the walk continues through them to the wrapped cause.
func ExtractShortStackTrace(err error) string {
	var result []string
	for depth := 0; err != nil && depth < maxWrapDepth; depth++ {
		if name, ok := wrapFrame(err); ok {
			result = append(result, name)
		}
		err = xerrors.Unwrap(err)
	}
	slices.Reverse(result)
	return strings.Join(result, ".")
}

const maxWrapDepth = 64

func wrapFrame(err error) (string, bool) {
	errStack, ok := err.(xerrors.ErrorStackTrace)
	if !ok || errStack.StackTrace() == nil {
		return "", false
	}
	frames := errStack.StackTrace().Frames()
	if len(frames) == 0 {
		return "", false
	}
	_, typ, method := parseQualifiedName(frames[0].Function)
	if typ != "" {
		return typ + "." + method, true
	}
	return method, true
}
