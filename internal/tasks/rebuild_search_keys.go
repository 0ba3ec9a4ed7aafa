package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// SearchKeyRebuilder recomputes stored search keys. An empty entity means
// every searchable entity.
type SearchKeyRebuilder interface {
	Rebuild(ctx context.Context, entity string) (int, error)
}

// RebuildSearchKeysTask recomputes the SearchKeys column of articles and
// kalaam in the background.
type RebuildSearchKeysTask struct {
	Entity string `json:"entity,omitempty"`
}

func (t RebuildSearchKeysTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "rebuild_search_keys",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func RebuildSearchKeysProcessor(rebuilder SearchKeyRebuilder) backlite.QueueProcessor[RebuildSearchKeysTask] {
	return func(ctx context.Context, task RebuildSearchKeysTask) error {
		if rebuilder == nil {
			return fmt.Errorf("search key rebuilder not configured")
		}

		updated, err := rebuilder.Rebuild(ctx, task.Entity)
		if err != nil {
			return err
		}

		scope := task.Entity
		if scope == "" {
			scope = "all"
		}
		log.Printf("[TASK] Search key rebuild (%s) updated %d rows", scope, updated)
		return nil
	}
}

func NewRebuildSearchKeysQueue(rebuilder SearchKeyRebuilder) backlite.Queue {
	return backlite.NewQueue(RebuildSearchKeysProcessor(rebuilder))
}
