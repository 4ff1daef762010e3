package errors

import "fmt"

// ConflictErr signals an email uniqueness violation, the store stays untouched
type ConflictErr struct {
	message string
}

func (e *ConflictErr) Error() string {
	return e.message
}

func NewConflictErr(msg string) *ConflictErr {
	return &ConflictErr{message: msg}
}

// NotFoundErr signals the target customer does not exist
type NotFoundErr struct {
	message string
}

func (e *NotFoundErr) Error() string {
	return e.message
}

func NewNotFoundErr(msg string) *NotFoundErr {
	return &NotFoundErr{message: msg}
}

// PropagationErr signals a search index write failed after the record
// store mutation already committed. It never crosses the service
// boundary - the primary operation has succeeded by the time it occurs.
type PropagationErr struct {
	op  string
	id  int64
	err error
}

func (e *PropagationErr) Error() string {
	return fmt.Sprintf("failed to propagate %s of customer %d to search index - %v", e.op, e.id, e.err)
}

func (e *PropagationErr) Unwrap() error {
	return e.err
}

func NewPropagationErr(op string, id int64, err error) *PropagationErr {
	return &PropagationErr{op: op, id: id, err: err}
}
