package github

import (
	"context"
	"fmt"

	"ado-issue-sync/internal/mirror/repository"
	pkgLog "ado-issue-sync/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a new GitHub issue repository.
func New(client *Client, l pkgLog.Logger) repository.IssueRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) UpdateBody(ctx context.Context, opt repository.UpdateBodyOptions) error {
	if opt.Owner == "" || opt.Repo == "" || opt.Number <= 0 {
		return fmt.Errorf("github repository: incomplete issue reference %s/%s#%d", opt.Owner, opt.Repo, opt.Number)
	}

	body := opt.Body
	if _, err := r.client.UpdateIssue(ctx, opt.Owner, opt.Repo, opt.Number, UpdateIssueRequest{Body: &body}); err != nil {
		r.l.Errorf(ctx, "github repository: failed to update body of %s/%s#%d: %v", opt.Owner, opt.Repo, opt.Number, err)
		return err
	}
	return nil
}
