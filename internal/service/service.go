// Package service defines the interface the command shell uses to reach
// the task collection, independent of how it is stored.
package service

import (
	"context"

	"tasktracker/internal/task"
)

// Service defines the task operations available to commands.
// Every mutation is persisted before the call returns.
type Service interface {
	// Add assigns the next id to t, appends it and saves.
	// Returns an error wrapping task.ErrEmptyTitle for a blank title.
	Add(t *task.Task) (*task.Task, error)

	// List returns the tasks matching f in insertion order.
	List(f Filter) []*task.Task

	// Get returns the task with the given id.
	Get(id int) (*task.Task, error)

	// Edit overwrites each non-empty field of ch on the task and saves.
	Edit(id int, ch Changes) (*task.Task, error)

	// Complete marks the task completed and saves.
	Complete(id int) (*task.Task, error)

	// Delete removes the task and saves.
	Delete(id int) (*task.Task, error)

	// Stats summarizes the collection.
	Stats() Stats
}

// Remote is an external task service that local tasks can be copied to.
type Remote interface {
	// DefaultList returns the user's default list.
	DefaultList(ctx context.Context) (RemoteList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (RemoteList, error)

	// CreateTask copies t into the list.
	CreateTask(ctx context.Context, listID string, t *task.Task) error
}
