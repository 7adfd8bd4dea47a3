package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// SnapshotInput is the (empty) message for reading the canvas.
type SnapshotInput struct{}

type snapshotService interface {
	Snapshot(ctx context.Context) ([]canvas.Component, error)
}

// SnapshotQuery executes a read-only canvas snapshot.
type SnapshotQuery struct {
	service snapshotService
}

// NewSnapshotQuery builds the query.
func NewSnapshotQuery(service snapshotService) *SnapshotQuery {
	return &SnapshotQuery{service: service}
}

var _ gocommand.Querier[SnapshotInput, []canvas.Component] = (*SnapshotQuery)(nil)

// Query returns the current canvas contents.
func (q *SnapshotQuery) Query(ctx context.Context, _ SnapshotInput) ([]canvas.Component, error) {
	return q.service.Snapshot(ctx)
}
