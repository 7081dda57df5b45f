package parser

import (
	"strings"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

type Setting struct {
	Name  string
	Value string
}

// Definition is the parsed form of table engine definition, as stored in system.tables.engine_full.
// Expressions are kept as text, normalized to canonical spacing.
type Definition struct {
	Engine      string
	Params      []string
	PartitionBy string
	PrimaryKey  []string
	OrderBy     []string
	SampleBy    string
	TTL         string
	Settings    []Setting
}

func ParseDefinition(engineFull string) (*Definition, error) {
	if strings.TrimSpace(engineFull) == "" {
		return nil, xerrors.New("empty engine definition")
	}
	parsed, err := definitionParser.ParseString("", engineFull)
	if err != nil {
		return nil, xerrors.Errorf("unable to parse engine definition %q: %w", engineFull, err)
	}

	result := &Definition{
		Engine:      parsed.Name,
		Params:      nil,
		PartitionBy: "",
		PrimaryKey:  nil,
		OrderBy:     nil,
		SampleBy:    "",
		TTL:         "",
		Settings:    nil,
	}
	if parsed.Args != nil {
		for _, arg := range parsed.Args.Items {
			result.Params = append(result.Params, arg.String())
		}
	}

	seen := map[string]bool{}
	for _, clause := range parsed.Clauses {
		name := clause.name()
		if seen[name] {
			return nil, xerrors.Errorf("duplicate %s clause in engine definition %q", name, engineFull)
		}
		seen[name] = true

		switch {
		case clause.PartitionBy != nil:
			result.PartitionBy = clause.PartitionBy.String()
		case clause.PrimaryKey != nil:
			result.PrimaryKey = splitKeys(clause.PrimaryKey)
		case clause.OrderBy != nil:
			result.OrderBy = splitKeys(clause.OrderBy)
		case clause.SampleBy != nil:
			result.SampleBy = clause.SampleBy.String()
		case clause.TTL != nil:
			result.TTL = clause.TTL.String()
		case clause.Settings != nil:
			for _, s := range clause.Settings {
				result.Settings = append(result.Settings, Setting{Name: s.Name, Value: s.Value})
			}
		}
	}
	return result, nil
}

func (c *engineClause) name() string {
	switch {
	case c.PartitionBy != nil:
		return "PARTITION BY"
	case c.PrimaryKey != nil:
		return "PRIMARY KEY"
	case c.OrderBy != nil:
		return "ORDER BY"
	case c.SampleBy != nil:
		return "SAMPLE BY"
	case c.TTL != nil:
		return "TTL"
	default:
		return "SETTINGS"
	}
}

// splitKeys turns sorting expression into list of keys:
//
//	(a, b)    -> [a, b]
//	tuple()   -> []
//	tuple(a)  -> [a]
//	toDate(a) -> [toDate(a)]
func splitKeys(expr *clauseExpr) []string {
	terms := expr.Terms
	switch {
	case len(terms) == 1 && terms[0].Group != nil:
		return emptyIfNil(terms[0].Group.items())
	case len(terms) == 2 && terms[0].Group == nil && strings.EqualFold(terms[0].Value, "tuple") && terms[1].Group != nil:
		return emptyIfNil(terms[1].Group.items())
	default:
		return []string{expr.String()}
	}
}

// SplitKeys splits standalone key or tuple expression, e.g. engine parameter `(a, b)`, the same way clauses are split.
func SplitKeys(expr string) ([]string, error) {
	if strings.TrimSpace(expr) == "" {
		return []string{}, nil
	}
	parsed, err := keysParser.ParseString("", expr)
	if err != nil {
		return nil, xerrors.Errorf("unable to parse key expression %q: %w", expr, err)
	}
	return splitKeys(parsed), nil
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// UnquoteString strips single quotes of string literal, second return value is false if s is not a string literal.
func UnquoteString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return s, false
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String(), true
}

func QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
