package mirror_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ado-issue-sync/internal/mirror"
	"ado-issue-sync/internal/model"
	pkgLog "ado-issue-sync/pkg/log"
)

func newUseCase(wi *fakeWorkItems, gh *fakeIssues) mirror.UseCase {
	if gh == nil {
		return mirror.New(wi, nil, pkgLog.NewNop())
	}
	return mirror.New(wi, gh, pkgLog.NewNop())
}

func runSync(t *testing.T, uc mirror.UseCase, ev model.IssueEvent) (mirror.SyncOutput, error) {
	t.Helper()
	return uc.Sync(context.Background(), mirror.SyncInput{Event: ev})
}

func TestSync_BotSender(t *testing.T) {
	wi := &fakeWorkItems{}
	gh := &fakeIssues{}
	ev := testEvent(model.ActionOpened)
	ev.Sender = model.BotSender
	ev.Config = model.SyncConfig{}

	out, err := runSync(t, newUseCase(wi, gh), ev)

	require.NoError(t, err)
	assert.Equal(t, mirror.OutcomeSkip, out.Outcome)
	assert.Equal(t, mirror.ReasonBotSender, out.Reason)
	assert.Zero(t, wi.calls())
	assert.Empty(t, gh.updates)
}

func TestSync_InvalidConfig(t *testing.T) {
	tcs := map[string]func(*model.SyncConfig){
		"no organization": func(c *model.SyncConfig) { c.OrgURL = "" },
		"no project":      func(c *model.SyncConfig) { c.Project = "" },
		"no token":        func(c *model.SyncConfig) { c.AzureToken = "" },
		"no type":         func(c *model.SyncConfig) { c.WorkItemType = "" },
	}

	for name, mutate := range tcs {
		t.Run(name, func(t *testing.T) {
			wi := &fakeWorkItems{}
			ev := testEvent(model.ActionOpened)
			mutate(&ev.Config)

			_, err := runSync(t, newUseCase(wi, nil), ev)

			assert.ErrorIs(t, err, mirror.ErrConfiguration)
			assert.Zero(t, wi.calls())
		})
	}
}

func TestSync_Create(t *testing.T) {
	t.Run("Creates And Links Back", func(t *testing.T) {
		wi := &fakeWorkItems{createResult: model.WorkItem{ID: 101}}
		gh := &fakeIssues{}
		ev := testEvent(model.ActionOpened)
		ev.Config.BypassRules = true

		out, err := runSync(t, newUseCase(wi, gh), ev)

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeCreate, out.Outcome)
		assert.Equal(t, 101, out.WorkItemID)
		assert.True(t, out.Mutated)
		require.Len(t, wi.creates, 1)
		assert.Equal(t, "Issue", wi.creates[0].WorkItemType)
		assert.True(t, wi.creates[0].BypassRules)
		assert.False(t, wi.creates[0].ValidateOnly)
		assert.Empty(t, wi.updates)

		assert.Equal(t, mirror.LinkBackUpdated, out.LinkBack.Status)
		require.Len(t, gh.updates, 1)
		assert.Equal(t, "octo", gh.updates[0].Owner)
		assert.Equal(t, "widgets", gh.updates[0].Repo)
		assert.Equal(t, 42, gh.updates[0].Number)
		assert.Equal(t, "It crashes.\r\n\r\nAB#101", gh.updates[0].Body)
	})

	t.Run("Create Once", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}

		out, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionOpened))

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeSkip, out.Outcome)
		assert.Equal(t, mirror.ReasonAlreadyExists, out.Reason)
		assert.Equal(t, 7, out.WorkItemID)
		assert.Empty(t, wi.creates)
		assert.Empty(t, wi.updates)
	})

	t.Run("Empty Result", func(t *testing.T) {
		wi := &fakeWorkItems{}

		_, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionOpened))

		assert.ErrorIs(t, err, mirror.ErrMutation)
		assert.ErrorIs(t, err, mirror.ErrEmptyResult)
		var mutErr *mirror.MutationError
		require.ErrorAs(t, err, &mutErr)
		assert.Equal(t, "create", mutErr.Op)
		assert.False(t, mutErr.Document.Empty())
	})

	t.Run("Create Failure", func(t *testing.T) {
		wi := &fakeWorkItems{createErr: errBoom}
		gh := &fakeIssues{}

		_, err := runSync(t, newUseCase(wi, gh), testEvent(model.ActionOpened))

		assert.ErrorIs(t, err, mirror.ErrMutation)
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, gh.updates)
	})

	t.Run("Search Failure Is Fatal", func(t *testing.T) {
		wi := &fakeWorkItems{queryErr: errBoom}

		_, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionOpened))

		assert.ErrorIs(t, err, mirror.ErrSearch)
		assert.Empty(t, wi.creates)
	})
}

func TestSync_LinkBack(t *testing.T) {
	t.Run("No GitHub Token", func(t *testing.T) {
		wi := &fakeWorkItems{createResult: model.WorkItem{ID: 101}}
		gh := &fakeIssues{}
		ev := testEvent(model.ActionOpened)
		ev.Config.GitHubToken = ""

		out, err := runSync(t, newUseCase(wi, gh), ev)

		require.NoError(t, err)
		assert.Equal(t, mirror.LinkBackSkipped, out.LinkBack.Status)
		assert.Empty(t, gh.updates)
	})

	t.Run("No Issue Client", func(t *testing.T) {
		wi := &fakeWorkItems{createResult: model.WorkItem{ID: 101}}

		out, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionOpened))

		require.NoError(t, err)
		assert.Equal(t, mirror.LinkBackSkipped, out.LinkBack.Status)
	})

	t.Run("Already Linked", func(t *testing.T) {
		wi := &fakeWorkItems{createResult: model.WorkItem{ID: 101}}
		gh := &fakeIssues{}
		ev := testEvent(model.ActionOpened)
		ev.Body = "See AB#101"

		out, err := runSync(t, newUseCase(wi, gh), ev)

		require.NoError(t, err)
		assert.Equal(t, mirror.LinkBackSkipped, out.LinkBack.Status)
		assert.Empty(t, gh.updates)
	})

	t.Run("Failure Is Not Fatal", func(t *testing.T) {
		wi := &fakeWorkItems{createResult: model.WorkItem{ID: 101}}
		gh := &fakeIssues{err: errBoom}

		out, err := runSync(t, newUseCase(wi, gh), testEvent(model.ActionOpened))

		require.NoError(t, err)
		assert.Equal(t, 101, out.WorkItemID)
		assert.ErrorIs(t, out.LinkBackErr, mirror.ErrLinkBack)
		assert.ErrorIs(t, out.LinkBackErr, errBoom)
	})
}

func TestLinkBody(t *testing.T) {
	body, changed := mirror.LinkBody("", 5)
	assert.True(t, changed)
	assert.Equal(t, "\r\n\r\nAB#5", body)

	body, changed = mirror.LinkBody("fixed by AB#5", 5)
	assert.False(t, changed)
	assert.Equal(t, "fixed by AB#5", body)
}

func TestSync_Update(t *testing.T) {
	t.Run("No Op", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}

		out, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionEdited))

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeUpdate, out.Outcome)
		assert.Equal(t, mirror.ReasonNoChanges, out.Reason)
		assert.False(t, out.Mutated)
		assert.Equal(t, 7, out.WorkItemID)
		assert.Empty(t, wi.updates)
	})

	t.Run("Body Changed", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}
		ev := testEvent(model.ActionEdited)
		ev.Body = "It crashes on Tuesdays."

		out, err := runSync(t, newUseCase(wi, nil), ev)

		require.NoError(t, err)
		assert.True(t, out.Mutated)
		require.Len(t, wi.updates, 1)
		assert.Equal(t, 7, wi.updates[0].ID)
		assert.Equal(t, "Fabrikam", wi.updates[0].Project)
		_, ok := wi.updates[0].Document.Find(model.FieldDescription)
		assert.True(t, ok)
		_, ok = wi.updates[0].Document.Find(model.FieldReproSteps)
		assert.True(t, ok)
	})

	t.Run("Not Found", func(t *testing.T) {
		wi := &fakeWorkItems{}

		out, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionEdited))

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeSkip, out.Outcome)
		assert.Equal(t, mirror.ReasonNotFound, out.Reason)
		assert.False(t, out.HasWorkItem())
		assert.Empty(t, wi.updates)
	})

	t.Run("Update Failure", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}, updateErr: errBoom}

		_, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionReopened))

		var mutErr *mirror.MutationError
		require.ErrorAs(t, err, &mutErr)
		assert.Equal(t, 7, mutErr.WorkItemID)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("Empty Update Result", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}, updateEmpty: true}

		_, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionReopened))

		assert.ErrorIs(t, err, mirror.ErrEmptyResult)
	})
}

func TestSync_StateTransitions(t *testing.T) {
	t.Run("Close", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}
		ev := testEvent(model.ActionClosed)
		ev.ClosedAt = "2024-03-01T10:00:00Z"

		out, err := runSync(t, newUseCase(wi, nil), ev)

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeClose, out.Outcome)
		require.Len(t, wi.updates, 1)
		state, _ := wi.updates[0].Document.Find(model.FieldState)
		assert.Equal(t, "Closed", state.Value)
	})

	t.Run("Reopen", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}

		out, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionReopened))

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeReopen, out.Outcome)
		require.Len(t, wi.updates, 1)
		_, ok := wi.updates[0].Document.Find(model.FieldHistory)
		assert.True(t, ok)
	})

	t.Run("Comment", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}
		ev := testEvent(model.ActionCreated)
		ev.CommentText = "+1"

		out, err := runSync(t, newUseCase(wi, nil), ev)

		require.NoError(t, err)
		assert.Equal(t, mirror.OutcomeComment, out.Outcome)
		assert.Len(t, wi.updates, 1)
	})

	t.Run("Label Already Present", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}
		ev := testEvent(model.ActionLabeled)
		ev.Label = "widgets"

		out, err := runSync(t, newUseCase(wi, nil), ev)

		require.NoError(t, err)
		assert.Equal(t, mirror.ReasonNoChanges, out.Reason)
		assert.Empty(t, wi.updates)
	})

	t.Run("Unimplemented", func(t *testing.T) {
		wi := &fakeWorkItems{ids: []int{7}, items: map[int]model.WorkItem{7: linkedItem(7)}}

		out, err := runSync(t, newUseCase(wi, nil), testEvent(model.ActionAssigned))

		require.NoError(t, err)
		assert.Equal(t, mirror.ReasonUnimplemented, out.Reason)
		assert.Empty(t, wi.updates)
		assert.Empty(t, wi.creates)
	})
}
