package mirror_test

import (
	"context"
	"errors"

	"ado-issue-sync/internal/mirror/repository"
	"ado-issue-sync/internal/model"
)

var errBoom = errors.New("boom")

type fakeWorkItems struct {
	ids      []int
	items    map[int]model.WorkItem
	queryErr error
	getErr   error

	createResult model.WorkItem
	createErr    error
	updateErr    error
	updateEmpty  bool

	queries []repository.QueryOptions
	gets    []repository.GetOptions
	creates []repository.CreateOptions
	updates []repository.UpdateOptions
}

func (f *fakeWorkItems) calls() int {
	return len(f.queries) + len(f.gets) + len(f.creates) + len(f.updates)
}

func (f *fakeWorkItems) Query(_ context.Context, opts repository.QueryOptions) ([]int, error) {
	f.queries = append(f.queries, opts)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.ids, nil
}

func (f *fakeWorkItems) GetByID(_ context.Context, opts repository.GetOptions) (model.WorkItem, error) {
	f.gets = append(f.gets, opts)
	if f.getErr != nil {
		return model.WorkItem{}, f.getErr
	}
	wi, ok := f.items[opts.ID]
	if !ok {
		return model.WorkItem{}, repository.ErrNotFound
	}
	return wi, nil
}

func (f *fakeWorkItems) Create(_ context.Context, opts repository.CreateOptions) (model.WorkItem, error) {
	f.creates = append(f.creates, opts)
	if f.createErr != nil {
		return model.WorkItem{}, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeWorkItems) Update(_ context.Context, opts repository.UpdateOptions) (model.WorkItem, error) {
	f.updates = append(f.updates, opts)
	if f.updateErr != nil {
		return model.WorkItem{}, f.updateErr
	}
	if f.updateEmpty {
		return model.WorkItem{}, nil
	}
	return model.WorkItem{ID: opts.ID}, nil
}

type fakeIssues struct {
	err     error
	updates []repository.UpdateBodyOptions
}

func (f *fakeIssues) UpdateBody(_ context.Context, opts repository.UpdateBodyOptions) error {
	f.updates = append(f.updates, opts)
	return f.err
}

func testConfig() model.SyncConfig {
	return model.SyncConfig{
		Organization: "fabrikam",
		OrgURL:       "https://dev.azure.com/fabrikam",
		AzureToken:   "ado-pat",
		GitHubToken:  "gh-token",
		Project:      "Fabrikam",
		WorkItemType: "Issue",
		ClosedState:  "Closed",
		ActiveState:  "Active",
		NewState:     "New",
	}
}

func testEvent(action model.Action) model.IssueEvent {
	return model.IssueEvent{
		Action:       action,
		Number:       42,
		Title:        "Crash on start",
		Body:         "It crashes.",
		URL:          "https://github.com/octo/widgets/issues/42",
		State:        "open",
		User:         "octocat",
		Owner:        "octo",
		RepoName:     "widgets",
		RepoFullName: "octo/widgets",
		RepoURL:      "https://github.com/octo/widgets",
		Organization: "octo",
		Repository:   "widgets",
		Sender:       "octocat",
		Config:       testConfig(),
	}
}

// linkedItem is a work item already in sync with testEvent.
func linkedItem(id int) model.WorkItem {
	return model.WorkItem{
		ID: id,
		Fields: map[string]any{
			model.FieldTitle:       "Crash on start (GitHub Issue #42)",
			model.FieldDescription: "It crashes.",
			model.FieldReproSteps:  "It crashes.",
			model.FieldTags:        "GitHub Issue; widgets",
			model.FieldState:       "New",
		},
	}
}
