// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tasktracker/internal/service"
	"tasktracker/internal/store"
	"tasktracker/internal/task"
)

// DefaultListID is the ID used for the remote default list.
const DefaultListID = "@default"

// ErrAmbiguous is returned when multiple remote lists match a name.
var ErrAmbiguous = errors.New("ambiguous")

// ErrRemoteNotFound is returned when a remote list does not exist.
var ErrRemoteNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
// It follows the same id and validation rules as store.Store but never
// touches the filesystem.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []*task.Task
	nextID int

	// Now is the clock used for completion and overdue checks.
	Now time.Time

	// SaveErr, when set, is returned by every mutation instead of saving.
	SaveErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		Now:    time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local),
	}
}

// Seed appends a task with the given id without running validation.
func (f *FakeService) Seed(t *task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
}

// AddTask seeds a pending task with the given title and priority.
func (f *FakeService) AddTask(id int, title string, p task.Priority) *task.Task {
	t := task.New(title, "", nil, p)
	t.ID = id
	f.Seed(t)
	return t
}

// Add implements service.Service.
func (f *FakeService) Add(t *task.Task) (*task.Task, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.nextID
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// List implements service.Service.
func (f *FakeService) List(filter service.Filter) []*task.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if filter.Now.IsZero() {
		filter.Now = f.Now
	}
	var result []*task.Task
	for _, t := range f.tasks {
		if filter.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// Get implements service.Service.
func (f *FakeService) Get(id int) (*task.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, t, err := f.find(id)
	return t, err
}

// Edit implements service.Service.
func (f *FakeService) Edit(id int, ch service.Changes) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, t, err := f.find(id)
	if err != nil {
		return nil, err
	}
	var deadline *task.Date
	if ch.Deadline != "" {
		d, err := task.ParseDate(ch.Deadline)
		if err != nil {
			return nil, err
		}
		deadline = &d
	}
	if ch.Title != "" && strings.TrimSpace(ch.Title) == "" {
		return nil, task.ErrEmptyTitle
	}
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	if ch.Title != "" {
		t.Title = ch.Title
	}
	if ch.Description != "" {
		t.Description = ch.Description
	}
	if deadline != nil {
		t.Deadline = deadline
	}
	if ch.Priority != "" {
		t.Priority = task.NormalizePriority(ch.Priority)
	}
	return t, nil
}

// Complete implements service.Service.
func (f *FakeService) Complete(id int) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, t, err := f.find(id)
	if err != nil {
		return nil, err
	}
	if t.Completed {
		return t, fmt.Errorf("%w: %d", store.ErrAlreadyCompleted, id)
	}
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	t.MarkCompleteAt(f.Now)
	return t, nil
}

// Delete implements service.Service.
func (f *FakeService) Delete(id int) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, t, err := f.find(id)
	if err != nil {
		return nil, err
	}
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	f.tasks = append(f.tasks[:i:i], f.tasks[i+1:]...)
	return t, nil
}

// Stats implements service.Service.
func (f *FakeService) Stats() service.Stats {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var st service.Stats
	for _, t := range f.tasks {
		st.Count(t, f.Now)
	}
	return st
}

func (f *FakeService) find(id int) (int, *task.Task, error) {
	for i, t := range f.tasks {
		if t.ID == id {
			return i, t, nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %d", store.ErrNotFound, id)
}

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu    sync.Mutex
	lists []service.RemoteList
	tasks map[string][]*task.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	CreateTaskErr  error
}

// NewFakeRemote creates a FakeRemote with a default list.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []service.RemoteList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		tasks: make(map[string][]*task.Task),
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.RemoteList{ID: id, Title: title})
}

// Tasks returns the titles of the tasks pushed to a list.
func (f *FakeRemote) Tasks(listID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var titles []string
	for _, t := range f.tasks[listID] {
		titles = append(titles, t.Title)
	}
	return titles
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.RemoteList, error) {
	if f.DefaultListErr != nil {
		return service.RemoteList{}, f.DefaultListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.RemoteList{}, errors.New("no default list")
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	if f.ResolveListErr != nil {
		return service.RemoteList{}, f.ResolveListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.RemoteList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.RemoteList{}, ErrRemoteNotFound
	case 1:
		return matches[0], nil
	default:
		return service.RemoteList{}, ErrAmbiguous
	}
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID string, t *task.Task) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], t)
	return nil
}
