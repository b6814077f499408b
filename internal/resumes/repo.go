package resumes

import "context"

// Repo defines storage for resume drafts, partitioned by owner.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	Get(ctx context.Context, ownerID, id string) (Resume, error)
	List(ctx context.Context, ownerID string) ([]Resume, error)
	// Update applies fn to a private copy and stores the copy only when fn
	// succeeds.
	Update(ctx context.Context, ownerID, id string, fn func(*Resume) error) (Resume, error)
	Delete(ctx context.Context, ownerID, id string) error
}
