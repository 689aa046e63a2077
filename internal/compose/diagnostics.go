package compose

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Error codes
const (
	CodeInvalidSubgraphName = "INVALID_SUBGRAPH_NAME"
	CodeInvalidSubgraph     = "INVALID_SUBGRAPH"
	CodeDuplicateGraphToken = "DUPLICATE_GRAPH_TOKEN"
	CodeTypeKindMismatch    = "TYPE_KIND_MISMATCH"
	CodeFieldTypeMismatch   = "FIELD_TYPE_MISMATCH"
	CodeInvalidKey          = "INVALID_KEY"
	CodeInternal            = "INTERNAL"
)

// Hint codes
const (
	HintInconsistentDescription                   = "INCONSISTENT_DESCRIPTION"
	HintInconsistentRootOperationType             = "INCONSISTENT_ROOT_OPERATION_TYPE"
	HintInconsistentExecutableDirectiveDefinition = "INCONSISTENT_EXECUTABLE_DIRECTIVE_DEFINITION"
	HintInconsistentInputObjectField              = "INCONSISTENT_INPUT_OBJECT_FIELD"
	HintInconsistentInterfaceField                = "INCONSISTENT_INTERFACE_FIELD"
	HintInconsistentFieldType                     = "INCONSISTENT_FIELD_TYPE"
	HintInconsistentArgumentPresence              = "INCONSISTENT_ARGUMENT_PRESENCE"
)

// Error is a fatal composition diagnostic.
type Error struct {
	Code    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Hint is a non-fatal composition diagnostic.
type Hint struct {
	Code    string
	Message string
}

func (h Hint) String() string {
	return fmt.Sprintf("[%s] %s", h.Code, h.Message)
}

// diagnostics collects the errors and hints of one composition. Each
// composition owns its own collector and passes it to every merge step.
type diagnostics struct {
	errors []Error
	hints  []Hint
	logger zerolog.Logger
}

func newDiagnostics(logger zerolog.Logger) *diagnostics {
	return &diagnostics{logger: logger}
}

func (d *diagnostics) errorf(code, format string, args ...any) {
	e := Error{Code: code, Message: fmt.Sprintf(format, args...)}
	d.logger.Debug().Str("code", code).Msg(e.Message)
	d.errors = append(d.errors, e)
}

func (d *diagnostics) hintf(code, format string, args ...any) {
	h := Hint{Code: code, Message: fmt.Sprintf(format, args...)}
	d.logger.Debug().Str("code", code).Msg(h.Message)
	d.hints = append(d.hints, h)
}

func (d *diagnostics) hasErrors() bool {
	return len(d.errors) > 0
}

// mergeDescription keeps the first non-empty description and hints when a
// later subgraph disagrees.
func (d *diagnostics) mergeDescription(merged *string, incoming, coordinate, subgraphName string) {
	switch {
	case incoming == "":
	case *merged == "":
		*merged = incoming
	case *merged != incoming:
		d.hintf(HintInconsistentDescription,
			"%s has conflicting descriptions: subgraph %q does not match the description already merged",
			coordinate, subgraphName)
	}
}
