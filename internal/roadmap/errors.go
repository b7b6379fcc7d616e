package roadmap

import (
	"errors"
	"fmt"
)

// Code is the machine-checkable kind of a failure.
type Code string

const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeValidation Code = "VALIDATION_ERROR"
	CodeDuplicate  Code = "DUPLICATE_ERROR"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Error is the structured failure returned by every operation in this package.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// NotFoundf builds a NOT_FOUND error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validationf builds a VALIDATION_ERROR error.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Duplicatef builds a DUPLICATE_ERROR error.
func Duplicatef(format string, args ...any) *Error {
	return &Error{Code: CodeDuplicate, Message: fmt.Sprintf(format, args...)}
}

// AsError converts any error into an *Error. Errors that were not raised
// by this package become INTERNAL_ERROR carrying the original message.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: CodeInternal, Message: err.Error()}
}

// CodeOf returns the kind of err, or "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return AsError(err).Code
}

func projectNotFound(projectID string) *Error {
	return NotFoundf("Project with ID '%s' not found", projectID)
}

func taskNotFound(projectID, taskID string) *Error {
	return NotFoundf("Task with ID '%s' not found in project '%s'", taskID, projectID)
}

func tagNotFound(projectID, tagID string) *Error {
	return NotFoundf("Tag with ID '%s' not found in project '%s'", tagID, projectID)
}

var errEmptyUpdate = Validationf("At least one field to update is required")
