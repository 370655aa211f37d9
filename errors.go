package parseopt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/parseopt/i18n"
)

// Schema error codes, reported while option definitions are compiled.
const (
	CodeNoName         = "no_name"
	CodeInvalidName    = "invalid_name"
	CodeDuplicateName  = "duplicate_name"
	CodeUnknownType    = "unknown_type"
	CodeMissingParse   = "missing_parse"
	CodeMetavarCount   = "metavar_count"
	CodeMinMax         = "min_max"
	CodeInvalidBase    = "invalid_base"
	CodeEmptyEnum      = "empty_enum"
	CodeEmptyRecord    = "empty_record"
	CodeRecordArg      = "record_arg"
	CodeArgumentBounds = "argument_bounds"
	CodeInvalidDefault = "invalid_default"
)

// Parse error codes, reported while an argument vector is tokenized.
const (
	CodeUnknownOption      = "unknown_option"
	CodeIllegalSyntax      = "illegal_syntax"
	CodeMissingArgument    = "missing_argument"
	CodeTooManyArguments   = "too_many_arguments"
	CodeUnexpectedArgument = "unexpected_argument"
	CodeInvalidValue       = "invalid_value"
	CodeRedefinedOption    = "redefined_option"
	CodeArgumentCount      = "argument_count"
	CodeMissingRequired    = "missing_required_option"
)

// ErrCancelled is returned by Parse when an option hook asked to stop
// parsing (typically --help or --version). It signals an early exit, not a
// failure, and is never wrapped in a ParseError.
var ErrCancelled = errors.New("parseopt: parsing cancelled")

// Issue carries the details shared by schema and parse errors.
type Issue struct {
	Code    string // One of the Code* constants.
	Option  string // Option spelling involved, if any.
	Message string // Localized, human readable message.
	// Params carries the values substituted into Message (for example
	// {"option": "--count", "value": "x"}).
	Params map[string]string
	Cause  error // Optional: underlying error.
}

// SchemaError reports an invalid option definition or parser configuration.
type SchemaError struct{ Issue }

func (e *SchemaError) Error() string { return e.Message }
func (e *SchemaError) Unwrap() error { return e.Cause }

// ParseError reports an argument vector that does not match the schema.
type ParseError struct{ Issue }

func (e *ParseError) Error() string { return e.Message }
func (e *ParseError) Unwrap() error { return e.Cause }

func newIssue(code, option string, params map[string]string, cause error) Issue {
	msgCode := code
	if code == CodeArgumentCount {
		msgCode = argumentCountVariant(params)
	}
	return Issue{
		Code:    code,
		Option:  option,
		Message: i18n.T(msgCode, params),
		Params:  params,
		Cause:   cause,
	}
}

func argumentCountVariant(params map[string]string) string {
	_, hasMin := params["min"]
	_, hasMax := params["max"]
	switch {
	case hasMin && hasMax:
		return "argument_count.range"
	case hasMin:
		return "argument_count.min"
	default:
		return "argument_count.max"
	}
}

func schemaError(code, option string, params map[string]string) *SchemaError {
	return &SchemaError{newIssue(code, option, params, nil)}
}

func parseError(code, option string, params map[string]string, cause error) *ParseError {
	return &ParseError{newIssue(code, option, params, cause)}
}

// AsParseError extracts a ParseError from an error chain.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsSchemaError extracts a SchemaError from an error chain.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// HasCode reports whether err is a SchemaError or ParseError with the given
// code.
func HasCode(err error, code string) bool {
	if pe, ok := AsParseError(err); ok {
		return pe.Code == code
	}
	if se, ok := AsSchemaError(err); ok {
		return se.Code == code
	}
	return false
}

func metavarString(m []string) string {
	if m == nil {
		return "null"
	}
	if len(m) == 1 {
		return fmt.Sprintf("%q", m[0])
	}
	quoted := make([]string, len(m))
	for i, s := range m {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}
