package schema

import "errors"

// Sentinel errors for schema definitions and catalogues.
var (
	ErrInvalidSchema   = errors.New("invalid schema")
	ErrDuplicateSchema = errors.New("duplicate schema")
	ErrMaterialize     = errors.New("materialize schema value")
)
