// Package usererr maps technical errors to user-friendly messages with codes
// for support reference.
//
// # Error Codes Reference
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Column not found: The province column is not in the file header
//	         Action: Check the header or pass -name-column
//	COL002 - Length mismatch: The new column does not match the row count
//	         Action: Report this file; it should not happen with CSV or XLSX input
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: File extension is not .csv, .txt, .xlsx or .xlsm
//	FILE002 - Invalid file: File is not a valid CSV or XLSX document
//	FILE003 - Unknown encoding: The requested CSV encoding is not supported
//	FILE004 - Not found: The input file does not exist
//	FILE005 - Empty file: The file has no header row
//	FILE006 - Sheet not found: The workbook has no sheet with the requested name
//	          Action: Check -sheet or PROVCODES_SHEET
//
// # Province Errors (PROV001-PROV099)
//
//	PROV001 - Unresolved names: Some rows have no province code (strict mode)
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid configuration: An environment variable has an invalid value
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Rerun with LOG_LEVEL=debug and check the log
//
// # Matching
//
// Sentinel errors are matched first with errors.Is, so wrapped errors keep
// their code. Errors from third-party libraries that carry no sentinel are
// then matched case-insensitively by substring. The first match wins.
package usererr

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/JonMunkholm/provcodes/internal/annotate"
	"github.com/JonMunkholm/provcodes/internal/config"
	"github.com/JonMunkholm/provcodes/internal/tabular"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgColumnNotFound = UserMessage{
		Message: "Province column not found in the file header",
		Action:  "Check the header row or pass -name-column",
		Code:    "COL001",
	}
	msgLengthMismatch = UserMessage{
		Message: "Code column does not match the number of rows",
		Action:  "Please report this file",
		Code:    "COL002",
	}
	msgUnsupportedFormat = UserMessage{
		Message: "File format is not supported",
		Action:  "Use a .csv, .txt, .xlsx or .xlsm file",
		Code:    "FILE001",
	}
	msgInvalidFile = UserMessage{
		Message: "File is not a valid CSV or XLSX document",
		Action:  "Check the delimiter (-comma) or re-export the file",
		Code:    "FILE002",
	}
	msgUnknownEncoding = UserMessage{
		Message: "Unknown CSV encoding",
		Action:  "Use utf-8, latin1 or windows-1252",
		Code:    "FILE003",
	}
	msgNotFound = UserMessage{
		Message: "Input file not found",
		Action:  "Check the path and try again",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The file is empty",
		Action:  "Provide a file with a header row",
		Code:    "FILE005",
	}
	msgSheetNotFound = UserMessage{
		Message: "Worksheet not found in the workbook",
		Action:  "Check the sheet name passed with -sheet or PROVCODES_SHEET",
		Code:    "FILE006",
	}
	msgUnresolved = UserMessage{
		Message: "Some province names could not be resolved",
		Action:  "Fix the listed names or run without -strict",
		Code:    "PROV001",
	}
	msgInvalidConfig = UserMessage{
		Message: "Invalid configuration",
		Action:  "Fix the environment variables listed in the log",
		Code:    "CFG001",
	}
)

// sentinels maps package errors to user messages, checked with errors.Is.
var sentinels = []struct {
	err error
	msg UserMessage
}{
	{tabular.ErrColumnNotFound, msgColumnNotFound},
	{tabular.ErrLengthMismatch, msgLengthMismatch},
	{tabular.ErrUnsupportedFormat, msgUnsupportedFormat},
	{tabular.ErrUnknownEncoding, msgUnknownEncoding},
	{tabular.ErrEmptyInput, msgEmptyFile},
	{tabular.ErrSheetNotFound, msgSheetNotFound},
	{annotate.ErrUnresolved, msgUnresolved},
	{config.ErrInvalid, msgInvalidConfig},
	{os.ErrNotExist, msgNotFound},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user
// messages. The first matching pattern wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	{pattern: "invalid csv", msg: msgInvalidFile},
	{pattern: "invalid xlsx", msg: msgInvalidFile},
	{pattern: "zip: not a valid zip file", msg: msgInvalidFile},
	{pattern: "no such file or directory", msg: msgNotFound},
	{pattern: "column not found", msg: msgColumnNotFound},
	{pattern: "empty file", msg: msgEmptyFile},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Rerun with LOG_LEVEL=debug and check the log",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If nothing matches, a generic fallback message with code ERR000 is returned.
//
// Example:
//
//	_, err := annotate.File(ctx, "encuesta.ods", "", opts)
//	msg := usererr.MapError(err)
//	// msg.Code == "FILE001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
