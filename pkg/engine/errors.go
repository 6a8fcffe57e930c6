package engine

import "errors"

// Sentinel errors carried by failed results. Use errors.Is on Result.Err().
var (
	ErrTableNotFound = errors.New("table does not exist")
	ErrTableExists   = errors.New("table already exists")
	ErrValidation    = errors.New("validation failed")
	ErrInternal      = errors.New("internal error")
)
