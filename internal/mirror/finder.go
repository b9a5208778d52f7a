package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ado-issue-sync/internal/mirror/repository"
	"ado-issue-sync/internal/model"
	pkgLog "ado-issue-sync/pkg/log"
)

const findSelect = "SELECT [System.Id], [System.WorkItemType], [System.Description], [System.Title], " +
	"[System.AssignedTo], [System.State], [System.Tags] FROM workitems WHERE [System.TeamProject] = @project"

// Finder locates the work item already linked to an issue.
type Finder struct {
	repo repository.WorkItemRepository
	l    pkgLog.Logger
}

func NewFinder(repo repository.WorkItemRepository, l pkgLog.Logger) *Finder {
	return &Finder{
		repo: repo,
		l:    l,
	}
}

// BuildQuery returns the WIQL selecting work items whose title carries the
// issue reference and whose tags carry the marker tag and, when known, the
// repository name.
func BuildQuery(ev model.IssueEvent) string {
	var b strings.Builder
	b.WriteString(findSelect)
	fmt.Fprintf(&b, " AND [System.Title] CONTAINS '%s'", wiqlQuote(model.IssueReference(ev.Number)))
	fmt.Fprintf(&b, " AND [System.Tags] CONTAINS '%s'", wiqlQuote(model.MarkerTag))
	if ev.Repository != "" {
		fmt.Fprintf(&b, " AND [System.Tags] CONTAINS '%s'", wiqlQuote(ev.Repository))
	}
	return b.String()
}

// wiqlQuote escapes a value for use inside a single-quoted WIQL literal.
func wiqlQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Find runs the search and fetches the first match with all fields and
// relations. Additional matches are ignored.
func (f *Finder) Find(ctx context.Context, ev model.IssueEvent) FindResult {
	wiql := BuildQuery(ev)
	f.l.Debugf(ctx, "finder: %s", wiql)

	ids, err := f.repo.Query(ctx, repository.QueryOptions{
		Project: ev.Config.Project,
		WIQL:    wiql,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrUnauthorized) {
			f.l.Errorf(ctx, "finder: check the organization %q, the project %q and the token scope", ev.Config.Organization, ev.Config.Project)
			return failed(fmt.Errorf("%w: %w", ErrConfiguration, err))
		}
		return failed(fmt.Errorf("%w: wiql query: %w", ErrSearch, err))
	}

	if len(ids) == 0 {
		f.l.Infof(ctx, "finder: no work item linked to issue #%d", ev.Number)
		return notFound()
	}
	if len(ids) > 1 {
		f.l.Warnf(ctx, "finder: %d work items linked to issue #%d, using %d", len(ids), ev.Number, ids[0])
	}

	wi, err := f.repo.GetByID(ctx, repository.GetOptions{
		Project: ev.Config.Project,
		ID:      ids[0],
		Expand:  "all",
	})
	if err != nil {
		return failed(fmt.Errorf("%w: get work item %d: %w", ErrSearch, ids[0], err))
	}

	f.l.Infof(ctx, "finder: existing work item found: %d", wi.ID)
	return found(wi)
}
