package mirror_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ado-issue-sync/internal/mirror"
	"ado-issue-sync/internal/model"
)

func paths(doc model.PatchDocument) []string {
	out := make([]string, 0, len(doc))
	for _, op := range doc {
		out = append(out, op.Path)
	}
	return out
}

func TestBuildCreatePatch(t *testing.T) {
	t.Run("Seed", func(t *testing.T) {
		doc := mirror.BuildCreatePatch(testEvent(model.ActionOpened))

		assert.Equal(t, []string{
			"/fields/System.Title",
			"/fields/System.Description",
			"/fields/Microsoft.VSTS.TCM.ReproSteps",
			"/fields/System.Tags",
			model.PathRelations,
			"/fields/System.History",
		}, paths(doc))

		title, _ := doc.Find(model.FieldTitle)
		assert.Equal(t, "Crash on start (GitHub Issue #42)", title.Value)
		tags, _ := doc.Find(model.FieldTags)
		assert.Equal(t, "GitHub Issue; widgets", tags.Value)
		assert.Equal(t, model.Relation{Rel: model.RelationHyperlink, URL: "https://github.com/octo/widgets/issues/42"}, doc[4].Value)

		history := doc[len(doc)-1].Value.(string)
		assert.Contains(t, history, "issue #42")
		assert.Contains(t, history, "octo/widgets")
		assert.Contains(t, history, "octocat")
	})

	t.Run("Area And Iteration", func(t *testing.T) {
		ev := testEvent(model.ActionOpened)
		ev.Config.AreaPath = `Fabrikam\Web`
		ev.Config.IterationPath = `Fabrikam\Sprint 1`

		doc := mirror.BuildCreatePatch(ev)

		area, ok := doc.Find(model.FieldAreaPath)
		require.True(t, ok)
		assert.Equal(t, `Fabrikam\Web`, area.Value)
		iter, ok := doc.Find(model.FieldIterationPath)
		require.True(t, ok)
		assert.Equal(t, `Fabrikam\Sprint 1`, iter.Value)
		assert.Equal(t, model.FieldPath(model.FieldHistory), doc[len(doc)-1].Path)
	})

	t.Run("No Optional Paths", func(t *testing.T) {
		doc := mirror.BuildCreatePatch(testEvent(model.ActionOpened))

		_, ok := doc.Find(model.FieldAreaPath)
		assert.False(t, ok)
		_, ok = doc.Find(model.FieldIterationPath)
		assert.False(t, ok)
	})
}

func TestBuildUpdatePatch(t *testing.T) {
	t.Run("In Sync", func(t *testing.T) {
		doc := mirror.BuildUpdatePatch(testEvent(model.ActionEdited), linkedItem(7))
		assert.True(t, doc.Empty())
	})

	t.Run("Title Changed", func(t *testing.T) {
		ev := testEvent(model.ActionEdited)
		ev.Title = "Crash on boot"

		doc := mirror.BuildUpdatePatch(ev, linkedItem(7))

		assert.Equal(t, []string{"/fields/System.Title", "/fields/System.History"}, paths(doc))
		assert.Equal(t, "Crash on boot (GitHub Issue #42)", doc[0].Value)
	})

	t.Run("Descriptions Travel Together", func(t *testing.T) {
		wi := linkedItem(7)
		wi.Fields[model.FieldReproSteps] = "stale"

		doc := mirror.BuildUpdatePatch(testEvent(model.ActionEdited), wi)

		desc, ok := doc.Find(model.FieldDescription)
		require.True(t, ok)
		repro, ok := doc.Find(model.FieldReproSteps)
		require.True(t, ok)
		assert.Equal(t, "It crashes.", desc.Value)
		assert.Equal(t, "It crashes.", repro.Value)
		_, ok = doc.Find(model.FieldTitle)
		assert.False(t, ok)
	})

	t.Run("Body Cleared", func(t *testing.T) {
		ev := testEvent(model.ActionEdited)
		ev.Body = ""

		doc := mirror.BuildUpdatePatch(ev, linkedItem(7))

		desc, ok := doc.Find(model.FieldDescription)
		require.True(t, ok)
		assert.Equal(t, "", desc.Value)
	})
}

func TestBuildCommentPatch(t *testing.T) {
	ev := testEvent(model.ActionCreated)
	ev.CommentText = "Same here"
	ev.CommentURL = "https://github.com/octo/widgets/issues/42#issuecomment-1"

	doc := mirror.BuildCommentPatch(ev)

	require.Len(t, doc, 1)
	assert.Equal(t, model.FieldPath(model.FieldHistory), doc[0].Path)
	assert.Contains(t, doc[0].Value, "Same here")
	assert.Contains(t, doc[0].Value, ev.CommentURL)

	ev.CommentText = ""
	assert.True(t, mirror.BuildCommentPatch(ev).Empty())
}

func TestBuildClosePatch(t *testing.T) {
	t.Run("With Close Time", func(t *testing.T) {
		ev := testEvent(model.ActionClosed)
		ev.ClosedAt = "2024-03-01T10:00:00Z"

		doc := mirror.BuildClosePatch(ev)

		assert.Equal(t, []string{"/fields/System.State", "/fields/System.History"}, paths(doc))
		assert.Equal(t, "Closed", doc[0].Value)
		assert.Contains(t, doc[1].Value, "2024-03-01T10:00:00Z")
	})

	t.Run("Without Close Time", func(t *testing.T) {
		doc := mirror.BuildClosePatch(testEvent(model.ActionClosed))

		assert.Equal(t, []string{"/fields/System.State"}, paths(doc))
	})
}

func TestBuildReopenPatch(t *testing.T) {
	doc := mirror.BuildReopenPatch(testEvent(model.ActionReopened))

	assert.Equal(t, []string{"/fields/System.State", "/fields/System.History"}, paths(doc))
	assert.Equal(t, "Active", doc[0].Value)
	assert.Equal(t, "GitHub issue reopened by octocat", doc[1].Value)
}

func TestBuildLabelPatches(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		ev := testEvent(model.ActionLabeled)
		ev.Label = "bug"

		doc := mirror.BuildLabelAddPatch(ev, linkedItem(7))

		require.Len(t, doc, 1)
		assert.Equal(t, "GitHub Issue; widgets; bug", doc[0].Value)
	})

	t.Run("Add Present", func(t *testing.T) {
		ev := testEvent(model.ActionLabeled)
		ev.Label = "Widgets"

		assert.True(t, mirror.BuildLabelAddPatch(ev, linkedItem(7)).Empty())
	})

	t.Run("Add Substring Is Not Membership", func(t *testing.T) {
		ev := testEvent(model.ActionLabeled)
		ev.Label = "widget"

		doc := mirror.BuildLabelAddPatch(ev, linkedItem(7))

		require.Len(t, doc, 1)
		assert.Equal(t, "GitHub Issue; widgets; widget", doc[0].Value)
	})

	t.Run("Remove", func(t *testing.T) {
		ev := testEvent(model.ActionUnlabeled)
		ev.Label = "widgets"

		doc := mirror.BuildLabelRemovePatch(ev, linkedItem(7))

		require.Len(t, doc, 1)
		assert.Equal(t, "GitHub Issue", doc[0].Value)
	})

	t.Run("Remove Absent", func(t *testing.T) {
		ev := testEvent(model.ActionUnlabeled)
		ev.Label = "bug"

		assert.True(t, mirror.BuildLabelRemovePatch(ev, linkedItem(7)).Empty())
	})

	t.Run("Add Then Remove", func(t *testing.T) {
		ev := testEvent(model.ActionLabeled)
		ev.Label = "bug"
		wi := linkedItem(7)

		added := mirror.BuildLabelAddPatch(ev, wi)
		wi.Fields[model.FieldTags] = added[0].Value
		removed := mirror.BuildLabelRemovePatch(ev, wi)

		assert.Equal(t, "GitHub Issue; widgets", removed[0].Value)
	})

	t.Run("No Label", func(t *testing.T) {
		ev := testEvent(model.ActionLabeled)
		assert.True(t, mirror.BuildLabelAddPatch(ev, linkedItem(7)).Empty())
		assert.True(t, mirror.BuildLabelRemovePatch(ev, linkedItem(7)).Empty())
	})
}
