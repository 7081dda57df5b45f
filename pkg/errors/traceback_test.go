package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

//go:noinline
func parseTable() error {
	return xerrors.Errorf("unable to parse: %w", errors.New("unexpected token"))
}

//go:noinline
func buildTable() error {
	return xerrors.Errorf("unable to build: %w", parseTable())
}

//go:noinline
func execTable() error {
	return xerrors.Errorf("unable to execute: %w", errors.New("timeout"))
}

//go:noinline
func createTable() error {
	return coded.Errorf(codes.DDLFailed, "unable to create table: %w", execTable())
}

//go:noinline
func applyTables() error {
	return xerrors.Errorf("unable to apply: %w", createTable())
}

type tableBuilder struct{}

func (b tableBuilder) parse() error {
	return xerrors.Errorf("unable to parse: %w", errors.New("unexpected token"))
}

func (b tableBuilder) build() error {
	return xerrors.Errorf("unable to build: %w", b.parse())
}

func TestExtractShortStackTrace(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "functions",
			err:      xerrors.Errorf("failed: %w", buildTable()),
			expected: "parseTable.buildTable.TestExtractShortStackTrace",
		},
		{
			name:     "methods",
			err:      xerrors.Errorf("failed: %w", tableBuilder{}.build()),
			expected: "tableBuilder.parse.tableBuilder.build.TestExtractShortStackTrace",
		},
		{
			name:     "through coded error",
			err:      xerrors.Errorf("failed: %w", applyTables()),
			expected: "execTable.applyTables.TestExtractShortStackTrace",
		},
		{
			name:     "no stack",
			err:      errors.New("plain"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractShortStackTrace(tt.err))
		})
	}
}

func TestParseQualifiedName(t *testing.T) {
	for name, expected := range map[string][3]string{
		"github.com/transferia/chengine/pkg/errors.parseTable":               {"errors", "", "parseTable"},
		"github.com/transferia/chengine/pkg/errors.tableBuilder.build":       {"errors", "tableBuilder", "build"},
		"gopkg.in/yaml.v3.(*decoder).unmarshal":                             {"yaml.v3", "(*decoder)", "unmarshal"},
		"main":                                                              {"", "", ""},
	} {
		pkg, typ, method := parseQualifiedName(name)
		assert.Equal(t, expected, [3]string{pkg, typ, method}, name)
	}
}
