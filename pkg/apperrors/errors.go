package apperrors

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrSchemaNotFound means no questionnaire schema exists for an owner
	// key. Callers must not materialize a form without a schema; there is
	// no default schema to fall back to.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrUnknownFieldKind means a schema references a field kind the
	// registry does not implement. This is schema/registry drift, a
	// programming-error-class failure, never user input.
	ErrUnknownFieldKind = errors.New("unknown field kind")
	// ErrChoiceResolution means the catalog collaborator failed while
	// resolving a choice set. Retryable infrastructure failure, distinct
	// from a successfully resolved empty choice list.
	ErrChoiceResolution = errors.New("choice resolution failed")
	// ErrConflict means a uniqueness constraint was violated, e.g. two
	// schemas created for the same owner key.
	ErrConflict = errors.New("conflict")
)
