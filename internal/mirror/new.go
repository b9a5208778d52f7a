package mirror

import (
	"ado-issue-sync/internal/mirror/repository"
	pkgLog "ado-issue-sync/pkg/log"
)

// New creates the mirror UseCase. issues may be nil, in which case link-back
// is never attempted.
func New(
	workItems repository.WorkItemRepository,
	issues repository.IssueRepository,
	l pkgLog.Logger,
) UseCase {
	return &usecase{
		workItems: workItems,
		issues:    issues,
		finder:    NewFinder(workItems, l),
		l:         l,
	}
}
