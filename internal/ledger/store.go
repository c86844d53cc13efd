// Package ledger records conversion runs.
package ledger

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/edgebin/internal/model"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Store defines the persistence interface for conversion runs.
type Store interface {
	RecordRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, filter model.RunFilter) ([]*model.Run, error)

	// Lifecycle
	Close() error
}
