package mirror

import (
	"context"
	"fmt"
	"strings"

	"ado-issue-sync/internal/mirror/repository"
	"ado-issue-sync/internal/model"
)

// linkBackSeparator precedes the AB# token appended to the issue body.
const linkBackSeparator = "\r\n\r\n"

// LinkBody returns body with the AB# token for id appended, and whether it
// changed. A body that already mentions the token is returned as is.
func LinkBody(body string, id int) (string, bool) {
	token := model.LinkToken(id)
	if strings.Contains(body, token) {
		return body, false
	}
	return body + linkBackSeparator + token, true
}

// linkBack writes the AB# token of a freshly created work item into the issue
// body so that GitHub and Azure Boards cross-link the two.
func (uc *usecase) linkBack(ctx context.Context, ev model.IssueEvent, wi model.WorkItem) (LinkBackResult, error) {
	switch {
	case ev.Action != model.ActionOpened:
		return LinkBackResult{Status: LinkBackSkipped, Reason: "not an opened event"}, nil
	case wi.ID <= 0:
		return LinkBackResult{Status: LinkBackSkipped, Reason: "no work item"}, nil
	case uc.issues == nil || !ev.Config.CanLinkBack():
		uc.l.Debugf(ctx, "link-back: no github token configured")
		return LinkBackResult{Status: LinkBackSkipped, Reason: "no github token"}, nil
	}

	body, changed := LinkBody(ev.Body, wi.ID)
	if !changed {
		uc.l.Infof(ctx, "link-back: issue #%d already references %s", ev.Number, model.LinkToken(wi.ID))
		return LinkBackResult{Status: LinkBackSkipped, Reason: "already linked"}, nil
	}

	err := uc.issues.UpdateBody(ctx, repository.UpdateBodyOptions{
		Owner:  ev.Owner,
		Repo:   ev.Repository,
		Number: ev.Number,
		Body:   body,
	})
	if err != nil {
		return LinkBackResult{}, fmt.Errorf("%w: %w", ErrLinkBack, err)
	}

	uc.l.Infof(ctx, "link-back: issue #%d now references %s", ev.Number, model.LinkToken(wi.ID))
	return LinkBackResult{Status: LinkBackUpdated}, nil
}
