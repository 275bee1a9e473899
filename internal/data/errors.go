package data

import "fmt"

// DataNotFoundError means the record source does not exist. Callers must stop
// the pipeline; no fallback dataset is synthesized.
type DataNotFoundError struct {
	Source string
	Err    error
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("no betting history found at %s", e.Source)
}

func (e *DataNotFoundError) Unwrap() error { return e.Err }

// MalformedRecordError reports the first record that could not be normalized.
// Loading is strict: one bad record fails the whole load.
type MalformedRecordError struct {
	Index int    // position in the source, 0-based
	Field string // source field name, e.g. "data"
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d: invalid %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
