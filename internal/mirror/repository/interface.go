package repository

import (
	"context"

	"ado-issue-sync/internal/model"
)

// WorkItemRepository is the target tracker (Azure Boards) data access.
type WorkItemRepository interface {
	// Query runs a WIQL query and returns the matching work item ids in result order.
	Query(ctx context.Context, opt QueryOptions) ([]int, error)
	GetByID(ctx context.Context, opt GetOptions) (model.WorkItem, error)
	Create(ctx context.Context, opt CreateOptions) (model.WorkItem, error)
	Update(ctx context.Context, opt UpdateOptions) (model.WorkItem, error)
}

// IssueRepository is the source tracker (GitHub) data access.
type IssueRepository interface {
	UpdateBody(ctx context.Context, opt UpdateBodyOptions) error
}
