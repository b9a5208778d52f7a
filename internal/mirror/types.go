package mirror

import "ado-issue-sync/internal/model"

// SyncInput is the input for one mirror run.
type SyncInput struct {
	Event model.IssueEvent
}

// SyncOutput is the result of one mirror run.
type SyncOutput struct {
	Outcome    Outcome
	Reason     SkipReason // set when Outcome is OutcomeSkip or the patch was empty
	WorkItemID int        // resolved work item id; 0 when none exists
	Mutated    bool       // true when a create or update call was made
	Document   model.PatchDocument

	LinkBack    LinkBackResult
	LinkBackErr error // non-fatal
}

// HasWorkItem reports whether the run resolved a work item id to emit.
func (o SyncOutput) HasWorkItem() bool {
	return o.WorkItemID > 0
}

// Outcome is the dispatcher's decision for an event.
type Outcome string

const (
	OutcomeCreate      Outcome = "create"
	OutcomeUpdate      Outcome = "update"
	OutcomeComment     Outcome = "comment"
	OutcomeClose       Outcome = "close"
	OutcomeReopen      Outcome = "reopen"
	OutcomeLabelAdd    Outcome = "label-add"
	OutcomeLabelRemove Outcome = "label-remove"
	OutcomeSkip        Outcome = "skip"
)

// SkipReason explains why no mutation was made.
type SkipReason string

const (
	ReasonNone          SkipReason = ""
	ReasonBotSender     SkipReason = "sender is the azure boards bot"
	ReasonAlreadyExists SkipReason = "work item already exists"
	ReasonNotFound      SkipReason = "no linked work item"
	ReasonUnimplemented SkipReason = "action not yet implemented"
	ReasonUnhandled     SkipReason = "unhandled action"
	ReasonNoChanges     SkipReason = "no changes to apply"
)

// FindStatus is the state the dispatcher reaches after the finder runs.
type FindStatus int

const (
	FindUnresolved FindStatus = iota
	FindFound
	FindNotFound
	FindFailed
)

func (s FindStatus) String() string {
	switch s {
	case FindFound:
		return "found"
	case FindNotFound:
		return "not-found"
	case FindFailed:
		return "failed"
	}
	return "unresolved"
}

// FindResult is the finder's three-way answer. WorkItem is set only when
// Status is FindFound and Err only when Status is FindFailed.
type FindResult struct {
	Status   FindStatus
	WorkItem model.WorkItem
	Err      error
}

func found(wi model.WorkItem) FindResult { return FindResult{Status: FindFound, WorkItem: wi} }
func notFound() FindResult               { return FindResult{Status: FindNotFound} }
func failed(err error) FindResult        { return FindResult{Status: FindFailed, Err: err} }

// LinkBackStatus is the outcome of writing the AB# token into the issue.
type LinkBackStatus string

const (
	LinkBackNotRun  LinkBackStatus = ""
	LinkBackUpdated LinkBackStatus = "updated"
	LinkBackSkipped LinkBackStatus = "skipped"
)

// LinkBackResult describes what link-back did.
type LinkBackResult struct {
	Status LinkBackStatus
	Reason string
}
