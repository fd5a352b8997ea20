package events

import (
	"context"
	"time"

	"deepresearch/common"
	"deepresearch/types"
)

// resultStore is the slice of the archive the archiver needs.
type resultStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	PutJSON(ctx context.Context, key string, v interface{}) error
}

// ResultArchiver writes completed research results to the S3 archive as
// JSON. It satisfies the job manager's publisher contract so archiving
// rides the same lifecycle notifications as Kafka.
type ResultArchiver struct {
	store resultStore
}

// NewResultArchiver wraps an archive. Returns nil when the archive is nil.
func NewResultArchiver(archive *common.Archive) *ResultArchiver {
	if archive == nil {
		return nil
	}
	return &ResultArchiver{store: archive}
}

// Publish stores the workflow state of completed jobs under results/.
// Other lifecycle events are ignored.
func (a *ResultArchiver) Publish(event string, job types.Job) error {
	if event != "research.completed" || job.Result == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	key := "results/" + job.ID + ".json"
	// Completed results never change; a redelivered event must not
	// rewrite the stored object.
	if ok, err := a.store.Exists(ctx, key); err == nil && ok {
		return nil
	}
	return a.store.PutJSON(ctx, key, job.Result)
}
