package mirror

import (
	"errors"
	"fmt"

	"ado-issue-sync/internal/model"
)

// Domain-specific errors for the mirror package.
var (
	ErrConfiguration = errors.New("invalid azure devops configuration")
	ErrSearch        = errors.New("work item search failed")
	ErrMutation      = errors.New("work item mutation failed")
	ErrEmptyResult   = errors.New("work item API returned an empty result")
	ErrLinkBack      = errors.New("issue link-back failed")
)

// MutationError carries the patch document of a failed create or update.
type MutationError struct {
	Op         string // "create" or "update"
	WorkItemID int    // 0 for create
	Document   model.PatchDocument
	Err        error
}

func (e *MutationError) Error() string {
	if e.WorkItemID > 0 {
		return fmt.Sprintf("%s work item %d: %v", e.Op, e.WorkItemID, e.Err)
	}
	return fmt.Sprintf("%s work item: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() []error {
	return []error{ErrMutation, e.Err}
}
