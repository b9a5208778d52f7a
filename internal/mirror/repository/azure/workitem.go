package azure

import (
	"context"

	"ado-issue-sync/internal/mirror/repository"
	"ado-issue-sync/internal/model"
	pkgLog "ado-issue-sync/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a new Azure Boards work item repository.
func New(client *Client, l pkgLog.Logger) repository.WorkItemRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) Query(ctx context.Context, opt repository.QueryOptions) ([]int, error) {
	r.l.Debugf(ctx, "azure repository: wiql %s", opt.WIQL)

	resp, err := r.client.QueryByWIQL(ctx, opt.Project, opt.WIQL)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(resp.WorkItems))
	for _, ref := range resp.WorkItems {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (r *implRepository) GetByID(ctx context.Context, opt repository.GetOptions) (model.WorkItem, error) {
	expand := opt.Expand
	if expand == "" {
		expand = "all"
	}

	wi, err := r.client.GetWorkItem(ctx, opt.Project, opt.ID, expand)
	if err != nil {
		return model.WorkItem{}, err
	}
	return *wi, nil
}

// Create returns a zero WorkItem when the API answers without a body;
// callers treat ID 0 as an empty result.
func (r *implRepository) Create(ctx context.Context, opt repository.CreateOptions) (model.WorkItem, error) {
	wi, err := r.client.CreateWorkItem(ctx, opt.Project, opt.WorkItemType, opt.Document, opt.ValidateOnly, opt.BypassRules)
	if err != nil {
		r.l.Errorf(ctx, "azure repository: failed to create %s: %v", opt.WorkItemType, err)
		return model.WorkItem{}, err
	}
	if wi == nil {
		return model.WorkItem{}, nil
	}
	return *wi, nil
}

func (r *implRepository) Update(ctx context.Context, opt repository.UpdateOptions) (model.WorkItem, error) {
	wi, err := r.client.UpdateWorkItem(ctx, opt.Project, opt.ID, opt.Document, opt.ValidateOnly, opt.BypassRules)
	if err != nil {
		r.l.Errorf(ctx, "azure repository: failed to update work item %d: %v", opt.ID, err)
		return model.WorkItem{}, err
	}
	if wi == nil {
		return model.WorkItem{}, nil
	}
	return *wi, nil
}
