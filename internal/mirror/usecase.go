package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"ado-issue-sync/internal/mirror/repository"
	"ado-issue-sync/internal/model"
	pkgLog "ado-issue-sync/pkg/log"
)

type usecase struct {
	workItems repository.WorkItemRepository
	issues    repository.IssueRepository
	finder    *Finder
	l         pkgLog.Logger
}

// Sync processes one issue event
func (uc *usecase) Sync(ctx context.Context, input SyncInput) (SyncOutput, error) {
	ev := input.Event

	if ev.FromBot() {
		uc.l.Infof(ctx, "%s sender, nothing to do", ev.Sender)
		return SyncOutput{Outcome: OutcomeSkip, Reason: ReasonBotSender}, nil
	}

	if err := validateConfig(ev.Config); err != nil {
		return SyncOutput{}, err
	}

	uc.l.Infof(ctx, "Processing %q for issue #%d in %s", ev.Action, ev.Number, ev.RepoFullName)

	res := uc.finder.Find(ctx, ev)
	if res.Status == FindFailed {
		return SyncOutput{}, res.Err
	}

	outcome, reason := Decide(ev.Action, res.Status)
	out := SyncOutput{Outcome: outcome, Reason: reason}
	if res.Status == FindFound {
		out.WorkItemID = res.WorkItem.ID
	}

	switch outcome {
	case OutcomeSkip:
		uc.logSkip(ctx, ev, reason)
		return out, nil

	case OutcomeCreate:
		doc := BuildCreatePatch(ev)
		out.Document = doc

		wi, err := uc.create(ctx, ev, doc)
		if err != nil {
			return out, err
		}
		out.WorkItemID = wi.ID
		out.Mutated = true
		uc.l.Infof(ctx, "Work item %d created for issue #%d", wi.ID, ev.Number)

		out.LinkBack, out.LinkBackErr = uc.linkBack(ctx, ev, wi)
		if out.LinkBackErr != nil {
			uc.l.Warnf(ctx, "Work item %d is not linked back to issue #%d: %v", wi.ID, ev.Number, out.LinkBackErr)
		}
		return out, nil
	}

	doc := BuildPatch(outcome, ev, res.WorkItem)
	out.Document = doc
	if doc.Empty() {
		out.Reason = ReasonNoChanges
		uc.l.Infof(ctx, "Work item %d already up to date for %q, skipping update", res.WorkItem.ID, ev.Action)
		return out, nil
	}

	if _, err := uc.update(ctx, ev, res.WorkItem.ID, doc); err != nil {
		return out, err
	}
	out.Mutated = true
	uc.l.Infof(ctx, "Work item %d updated (%s)", res.WorkItem.ID, outcome)
	return out, nil
}

func (uc *usecase) create(ctx context.Context, ev model.IssueEvent, doc model.PatchDocument) (model.WorkItem, error) {
	wi, err := uc.workItems.Create(ctx, repository.CreateOptions{
		Project:      ev.Config.Project,
		WorkItemType: ev.Config.WorkItemType,
		Document:     doc,
		ValidateOnly: false,
		BypassRules:  ev.Config.BypassRules,
	})
	if err == nil && wi.ID == 0 {
		uc.l.Errorf(ctx, "Work item type may not be correct: %s", ev.Config.WorkItemType)
		err = ErrEmptyResult
	}
	if err != nil {
		uc.logDocument(ctx, doc)
		return model.WorkItem{}, &MutationError{Op: "create", Document: doc, Err: err}
	}
	return wi, nil
}

func (uc *usecase) update(ctx context.Context, ev model.IssueEvent, id int, doc model.PatchDocument) (model.WorkItem, error) {
	wi, err := uc.workItems.Update(ctx, repository.UpdateOptions{
		Project:      ev.Config.Project,
		ID:           id,
		Document:     doc,
		ValidateOnly: false,
		BypassRules:  ev.Config.BypassRules,
	})
	if err == nil && wi.ID == 0 {
		err = ErrEmptyResult
	}
	if err != nil {
		uc.logDocument(ctx, doc)
		return model.WorkItem{}, &MutationError{Op: "update", WorkItemID: id, Document: doc, Err: err}
	}
	return wi, nil
}

func (uc *usecase) logDocument(ctx context.Context, doc model.PatchDocument) {
	raw, err := json.Marshal(doc)
	if err != nil {
		uc.l.Errorf(ctx, "Failed patch document (unencodable): %v", err)
		return
	}
	uc.l.Errorf(ctx, "Failed patch document: %s", raw)
}

func (uc *usecase) logSkip(ctx context.Context, ev model.IssueEvent, reason SkipReason) {
	switch reason {
	case ReasonUnimplemented:
		uc.l.Infof(ctx, "%s action is not yet implemented", ev.Action)
	case ReasonUnhandled:
		uc.l.Infof(ctx, "Unhandled action: %s", ev.Action)
	default:
		uc.l.Infof(ctx, "Skipping %q for issue #%d: %s", ev.Action, ev.Number, reason)
	}
}

// validateConfig rejects configurations that cannot reach a project, before
// any tracker call is made.
func validateConfig(cfg model.SyncConfig) error {
	switch {
	case cfg.OrgURL == "":
		return fmt.Errorf("%w: organization is not set", ErrConfiguration)
	case cfg.Project == "":
		return fmt.Errorf("%w: project is not set", ErrConfiguration)
	case cfg.AzureToken == "":
		return fmt.Errorf("%w: access token is not set", ErrConfiguration)
	case cfg.WorkItemType == "":
		return fmt.Errorf("%w: work item type is not set", ErrConfiguration)
	}
	return nil
}
