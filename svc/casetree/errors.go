package casetree

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRootName  = errors.New("casetree: root name is empty after sanitization")
	ErrInvalidDocType = errors.New("casetree: doc type is empty after sanitization")
	ErrMissingRootID  = errors.New("casetree: missing root id")
)

// PartialTreeError reports a build that failed after some nodes were created.
// Created lists the ids confirmed created before the failure, in creation
// order; pass them to Service.Discard to clean up. Sibling calls that were
// still in flight when the error surfaced are not listed.
type PartialTreeError struct {
	Created []string
	Err     error
}

func (e *PartialTreeError) Error() string {
	return fmt.Sprintf("casetree: build failed after creating %d nodes: %v", len(e.Created), e.Err)
}

func (e *PartialTreeError) Unwrap() error {
	return e.Err
}
