package errors

import "errors"

// ErrFileNotFound is returned when a file is not found.
var ErrFileNotFound = errors.New("file not found")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")

// ErrUnknownParameter is returned when a parameter name is not present in the
// profile's schema.
var ErrUnknownParameter = errors.New("unknown parameter")

// ErrDuplicateNodeName is returned when two nodes in a request resolve to the
// same client id. This is a defect in the selection list, not a recoverable
// condition.
var ErrDuplicateNodeName = errors.New("duplicate node name")
