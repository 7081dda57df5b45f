package engines

import (
	"fmt"

	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
)

const (
	FieldTablePath   = "table_path"
	FieldReplicaName = "replica_name"
)

var missingFieldDescriptions = map[string]string{
	FieldTablePath:   "Table path",
	FieldReplicaName: "Replica name",
}

type UnsupportedEngineError struct {
	Kind string
}

func (e *UnsupportedEngineError) Error() string {
	return fmt.Sprintf("engine type %s is not supported", e.Kind)
}

func (e *UnsupportedEngineError) Code() coded.Code {
	return codes.EngineUnsupported
}

// MissingConfigError is returned when replicated engine is requested without table_path or replica_name.
type MissingConfigError struct {
	Field string
}

func (e *MissingConfigError) Error() string {
	description, ok := missingFieldDescriptions[e.Field]
	if !ok {
		description = "Field"
	}
	return fmt.Sprintf("%s (%s) is not defined", description, e.Field)
}

func (e *MissingConfigError) Code() coded.Code {
	return codes.EngineMissingConfig
}

type UnresolvedColumnError struct {
	Table  string
	Column string
	Role   ColumnRole
}

func (e *UnresolvedColumnError) Error() string {
	return fmt.Sprintf("%s column %s does not exist in table %s", e.Role, e.Column, e.Table)
}

func (e *UnresolvedColumnError) Code() coded.Code {
	return codes.EngineUnresolvedColumn
}

type InvalidTablePathError struct {
	Path   string
	Reason string
}

func (e *InvalidTablePathError) Error() string {
	return fmt.Sprintf("invalid table path %q: %s", e.Path, e.Reason)
}

func (e *InvalidTablePathError) Code() coded.Code {
	return codes.EngineInvalidTablePath
}

type InvalidDefinitionError struct {
	Definition string
	Err        error
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid engine definition %q: %v", e.Definition, e.Err)
}

func (e *InvalidDefinitionError) Unwrap() error {
	return e.Err
}

func (e *InvalidDefinitionError) Code() coded.Code {
	return codes.EngineInvalidDefinition
}
