// Package errors provides the structured error taxonomy shared by the
// bridge and the runtime.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// Bridge errors
	CodeNotConnected     Code = "NOT_CONNECTED"
	CodeTimeout          Code = "TIMEOUT"
	CodeConnectionClosed Code = "CONNECTION_CLOSED"

	// Runtime errors
	CodeObjectNotFound  Code = "OBJECT_NOT_FOUND"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnknownAction   Code = "UNKNOWN_ACTION"
)
