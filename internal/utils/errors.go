package utils

import "fmt"

// RecordError ties a failure to the corpus record that caused it. Generation
// fails closed on the first bad record, so the index is the primary handle
// for fixing the corpus.
type RecordError struct {
	Index int
	Op    string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s: %v", e.Index, e.Op, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError constructs a RecordError.
func NewRecordError(index int, op string, err error) error {
	return &RecordError{Index: index, Op: op, Err: err}
}
