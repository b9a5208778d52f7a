package mirror

import (
	"fmt"

	"ado-issue-sync/internal/model"
)

// BuildPatch returns the patch document for outcome. wi is the live work
// item snapshot and is ignored by outcomes that do not read it. An empty
// document means no remote call is needed.
func BuildPatch(outcome Outcome, ev model.IssueEvent, wi model.WorkItem) model.PatchDocument {
	switch outcome {
	case OutcomeCreate:
		return BuildCreatePatch(ev)
	case OutcomeUpdate:
		return BuildUpdatePatch(ev, wi)
	case OutcomeComment:
		return BuildCommentPatch(ev)
	case OutcomeClose:
		return BuildClosePatch(ev)
	case OutcomeReopen:
		return BuildReopenPatch(ev)
	case OutcomeLabelAdd:
		return BuildLabelAddPatch(ev, wi)
	case OutcomeLabelRemove:
		return BuildLabelRemovePatch(ev, wi)
	}
	return nil
}

// BuildCreatePatch seeds a new work item from the issue. Area and iteration
// paths are set only when configured; the history entry is always last.
func BuildCreatePatch(ev model.IssueEvent) model.PatchDocument {
	doc := model.PatchDocument{}.
		AddField(model.FieldTitle, model.MirrorTitle(ev.Title, ev.Number)).
		AddField(model.FieldDescription, ev.Body).
		AddField(model.FieldReproSteps, ev.Body).
		AddField(model.FieldTags, model.NewTagSet(model.MarkerTag, ev.RepoName).String()).
		AddRelation(model.Relation{Rel: model.RelationHyperlink, URL: ev.URL})

	if ev.Config.AreaPath != "" {
		doc = doc.AddField(model.FieldAreaPath, ev.Config.AreaPath)
	}
	if ev.Config.IterationPath != "" {
		doc = doc.AddField(model.FieldIterationPath, ev.Config.IterationPath)
	}

	return doc.AddField(model.FieldHistory, fmt.Sprintf(
		`GitHub <a href="%s" target="_new">issue #%d</a> created in <a href="%s" target="_new">%s</a> by %s`,
		ev.URL, ev.Number, ev.RepoURL, ev.RepoFullName, ev.User,
	))
}

// BuildUpdatePatch diffs the live work item against the issue. The two
// description fields always travel together.
func BuildUpdatePatch(ev model.IssueEvent, wi model.WorkItem) model.PatchDocument {
	var doc model.PatchDocument

	title := model.MirrorTitle(ev.Title, ev.Number)
	if wi.Title() != title {
		doc = doc.AddField(model.FieldTitle, title)
	}

	if wi.Description() != ev.Body || wi.ReproSteps() != ev.Body {
		doc = doc.
			AddField(model.FieldDescription, ev.Body).
			AddField(model.FieldReproSteps, ev.Body)
	}

	if doc.Empty() {
		return nil
	}
	return doc.AddField(model.FieldHistory, "GitHub issue updated by "+ev.User)
}

// BuildCommentPatch copies a new issue comment into the work item history.
func BuildCommentPatch(ev model.IssueEvent) model.PatchDocument {
	if ev.CommentText == "" {
		return nil
	}
	return model.PatchDocument{}.AddField(model.FieldHistory, fmt.Sprintf(
		`<a href="%s" target="_new">GitHub issue comment added</a> by %s</br></br>%s`,
		ev.CommentURL, ev.User, ev.CommentText,
	))
}

// BuildClosePatch moves the work item to the closed state. The history entry
// is written only when the close time is known.
func BuildClosePatch(ev model.IssueEvent) model.PatchDocument {
	doc := model.PatchDocument{}.AddField(model.FieldState, ev.Config.ClosedState)
	if ev.ClosedAt == "" {
		return doc
	}
	return doc.AddField(model.FieldHistory, fmt.Sprintf(
		`GitHub <a href="%s" target="_new">issue #%d</a> was closed on %s by %s`,
		ev.URL, ev.Number, ev.ClosedAt, ev.User,
	))
}

// BuildReopenPatch moves the work item back to the active state.
func BuildReopenPatch(ev model.IssueEvent) model.PatchDocument {
	return model.PatchDocument{}.
		AddField(model.FieldState, ev.Config.ActiveState).
		AddField(model.FieldHistory, "GitHub issue reopened by "+ev.User)
}

// BuildLabelAddPatch adds the event's label to the work item tags.
func BuildLabelAddPatch(ev model.IssueEvent, wi model.WorkItem) model.PatchDocument {
	tags := wi.Tags()
	if ev.Label == "" || tags.Contains(ev.Label) {
		return nil
	}
	return model.PatchDocument{}.AddField(model.FieldTags, tags.Add(ev.Label).String())
}

// BuildLabelRemovePatch removes the event's label from the work item tags.
func BuildLabelRemovePatch(ev model.IssueEvent, wi model.WorkItem) model.PatchDocument {
	tags := wi.Tags()
	if ev.Label == "" || !tags.Contains(ev.Label) {
		return nil
	}
	return model.PatchDocument{}.AddField(model.FieldTags, tags.Remove(ev.Label).String())
}
