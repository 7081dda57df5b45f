package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// grammar of `engine_full` column of system.tables:
//
//	EngineName[(arg, ...)]
//	[PARTITION BY expr] [PRIMARY KEY expr] [ORDER BY expr] [SAMPLE BY expr] [TTL expr]
//	[SETTINGS name = value, ...]
//
// clauses may come in any order

var engineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `'(?:\\.|[^'\\])*'`},
	{Name: "BacktickIdent", Pattern: "`(?:\\\\.|[^`\\\\])*`"},
	{Name: "QuotedIdent", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Operator", Pattern: `[-+*/%=<>!.:?|&^~\[\]{}]+`},
})

var definitionParser = participle.MustBuild[engineDefinition](
	participle.Lexer(engineLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(2),
)

var keysParser = participle.MustBuild[clauseExpr](
	participle.Lexer(engineLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Ident"),
)

type engineDefinition struct {
	Name    string          `parser:"@Ident"`
	Args    *argumentList   `parser:"@@?"`
	Clauses []*engineClause `parser:"@@*"`
}

type argumentList struct {
	Items []*argument `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

type engineClause struct {
	PartitionBy *clauseExpr `parser:"  'PARTITION' 'BY' @@"`
	PrimaryKey  *clauseExpr `parser:"| 'PRIMARY' 'KEY' @@"`
	OrderBy     *clauseExpr `parser:"| 'ORDER' 'BY' @@"`
	SampleBy    *clauseExpr `parser:"| 'SAMPLE' 'BY' @@"`
	TTL         *clauseExpr `parser:"| 'TTL' @@"`
	Settings    []*setting  `parser:"| 'SETTINGS' @@ ( ',' @@ )*"`
}

type setting struct {
	Name  string `parser:"@Ident '='"`
	Value string `parser:"@('-'? (Number | String | Ident))"`
}

// argument is an engine parameter: everything up to the next top-level comma or closing bracket
type argument struct {
	Terms []*term `parser:"@@+"`
}

type term struct {
	Group *group `parser:"  @@"`
	Value string `parser:"| @(Ident | BacktickIdent | QuotedIdent | String | Number | Operator)"`
}

// clauseExpr is a clause body: everything up to the next clause keyword, top-level commas included
type clauseExpr struct {
	Terms []*clauseTerm `parser:"@@+"`
}

type clauseTerm struct {
	Group *group `parser:"  @@"`
	Value string `parser:"| @~('PARTITION' | 'PRIMARY' | 'ORDER' | 'SAMPLE' | 'TTL' | 'SETTINGS' | '(' | ')')"`
}

type group struct {
	Terms []*groupTerm `parser:"'(' @@* ')'"`
}

type groupTerm struct {
	Group *group `parser:"  @@"`
	Value string `parser:"| @(Ident | BacktickIdent | QuotedIdent | String | Number | Operator | ',')"`
}

// rendering back to text, tokens are joined with canonical spacing

type textTerm interface {
	subgroup() *group
	text() string
}

func (t *term) subgroup() *group { return t.Group }
func (t *term) text() string { return t.Value }
func (t *clauseTerm) subgroup() *group { return t.Group }
func (t *clauseTerm) text() string { return t.Value }
func (t *groupTerm) subgroup() *group { return t.Group }
func (t *groupTerm) text() string { return t.Value }

func (g *group) String() string {
	return "(" + renderTerms(g.Terms) + ")"
}

// items splits group content by top-level commas
func (g *group) items() []string {
	var result []string
	var current []*groupTerm
	for _, t := range g.Terms {
		if t.Group == nil && t.Value == "," {
			result = append(result, renderTerms(current))
			current = nil
			continue
		}
		current = append(current, t)
	}
	if len(current) > 0 || len(result) > 0 {
		result = append(result, renderTerms(current))
	}
	return result
}

func (a *argument) String() string {
	return renderTerms(a.Terms)
}

func (e *clauseExpr) String() string {
	return renderTerms(e.Terms)
}

func renderTerms[T textTerm](terms []T) string {
	var b strings.Builder
	var prev textTerm
	for _, t := range terms {
		if prev != nil && needSpace(prev, t) {
			b.WriteByte(' ')
		}
		if g := t.subgroup(); g != nil {
			b.WriteString(g.String())
		} else {
			b.WriteString(t.text())
		}
		prev = t
	}
	return b.String()
}

func needSpace(prev, curr textTerm) bool {
	if curr.subgroup() == nil {
		switch curr.text() {
		case ",", ".":
			return false
		}
	}
	if prev.subgroup() == nil {
		if prev.text() == "." {
			return false
		}
		// function call: name(...)
		if curr.subgroup() != nil && isWord(prev.text()) {
			return false
		}
	}
	return true
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' || c == '`' || c == '"' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
