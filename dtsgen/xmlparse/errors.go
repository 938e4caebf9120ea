package xmlparse

import "fmt"

// ErrorCode is a machine-readable parse error code.
type ErrorCode string

const (
	// CodeUnknownDefinition marks a classdef that is neither an enumeration
	// nor dynamic. The XML is unusable.
	CodeUnknownDefinition ErrorCode = "unknown_definition"

	// CodeUnknownMember marks a member element whose tag is neither
	// property, method, nor the indexer marker.
	CodeUnknownMember ErrorCode = "unknown_member"

	// CodeNoRoot marks a document without a package root element.
	CodeNoRoot ErrorCode = "no_root"
)

// ParseError is a fatal structural error in the source XML.
type ParseError struct {
	Code    ErrorCode
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf creates a ParseError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
