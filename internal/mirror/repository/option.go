package repository

import "ado-issue-sync/internal/model"

// QueryOptions holds the parameters for a WIQL query.
type QueryOptions struct {
	Project string // Team project the @project macro resolves to
	WIQL    string
}

// GetOptions holds the parameters for fetching one work item.
type GetOptions struct {
	Project string
	ID      int
	Expand  string // "all", "relations", "fields", ... (default "all")
}

// CreateOptions holds the parameters for creating a work item.
type CreateOptions struct {
	Project      string
	WorkItemType string
	Document     model.PatchDocument
	ValidateOnly bool
	BypassRules  bool
}

// UpdateOptions holds the parameters for patching a work item.
type UpdateOptions struct {
	Project      string
	ID           int
	Document     model.PatchDocument
	ValidateOnly bool
	BypassRules  bool
}

// UpdateBodyOptions holds the parameters for rewriting an issue body.
type UpdateBodyOptions struct {
	Owner  string
	Repo   string
	Number int
	Body   string
}
