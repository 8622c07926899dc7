package worker

import (
	"context"
)

// WorkerRepository looks workers up. Both methods return nil when no worker
// matches.
type WorkerRepository interface {
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindByExternalID(ctx context.Context, externalID string) (*Worker, error)
}
