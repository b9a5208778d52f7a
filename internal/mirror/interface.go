package mirror

import "context"

// UseCase mirrors one GitHub issue lifecycle event into Azure Boards.
type UseCase interface {
	// Sync runs the find → dispatch → patch → mutate → link-back chain for one event.
	Sync(ctx context.Context, input SyncInput) (SyncOutput, error)
}
