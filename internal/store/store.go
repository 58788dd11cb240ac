// Package store keeps the task collection in memory and mirrors it to a
// single JSON file that is rewritten in full on every change.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tasktracker/internal/service"
	"tasktracker/internal/task"
)

// LoadStatus describes what Load found in the backing file.
type LoadStatus int

const (
	// Loaded means the file was read and decoded.
	Loaded LoadStatus = iota
	// Missing means the file does not exist yet.
	Missing
	// Empty means the file exists but has no content.
	Empty
	// Recovered means the file could not be decoded and was ignored.
	Recovered
)

func (s LoadStatus) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Store owns the task collection and its backing file.
// It is not safe for concurrent use.
type Store struct {
	path   string
	tasks  []*task.Task
	maxID  int
	logger *slog.Logger
	now    func() time.Time
}

var _ service.Service = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for completion timestamps and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty store backed by path. Call Load to read the file.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads its backing file.
func Open(path string, opts ...Option) (*Store, error) {
	s := New(path, opts...)
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory collection with the contents of the backing
// file. A missing, empty or undecodable file yields an empty collection;
// only read failures are returned as errors.
func (s *Store) Load() (LoadStatus, error) {
	s.tasks = nil
	s.maxID = 0

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("tasks file not found, starting empty", "path", s.path)
		return Missing, nil
	}
	if err != nil {
		return Missing, fmt.Errorf("read tasks file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Debug("tasks file is empty", "path", s.path)
		return Empty, nil
	}

	var records []task.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("tasks file is corrupted, starting with an empty task list",
			"path", s.path, "error", err)
		return Recovered, nil
	}

	s.tasks = make([]*task.Task, 0, len(records))
	for _, r := range records {
		t := task.Deserialize(r)
		s.tasks = append(s.tasks, t)
		if t.ID > s.maxID {
			s.maxID = t.ID
		}
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(s.tasks))
	return Loaded, nil
}

// Save writes the whole collection to the backing file. The document is
// written to a temporary file in the same directory and renamed into place.
func (s *Store) Save() error {
	records := make([]task.Record, 0, len(s.tasks))
	for _, t := range s.tasks {
		records = append(records, t.Serialize())
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create tasks directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write tasks file: %w", err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// NextID returns the id the next added task will get: one more than the
// highest id seen by this store, counting a missing id as 0.
// Ids removed during this session are never handed out again.
func (s *Store) NextID() int {
	highest := s.maxID
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// Add implements service.Service.
func (s *Store) Add(t *task.Task) (*task.Task, error) {
	if t == nil {
		return nil, ErrEmptyTitle
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !t.Priority.Valid() {
		t.Priority = task.DefaultPriority
	}

	t.ID = s.NextID()
	s.tasks = append(s.tasks, t)

	if err := s.Save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		t.ID = 0
		return nil, err
	}
	if t.ID > s.maxID {
		s.maxID = t.ID
	}
	return t, nil
}

// List implements service.Service.
func (s *Store) List(f service.Filter) []*task.Task {
	if f.Now.IsZero() {
		f.Now = s.now()
	}
	var result []*task.Task
	for _, t := range s.tasks {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// Get implements service.Service.
func (s *Store) Get(id int) (*task.Task, error) {
	_, t, err := s.find(id)
	return t, err
}

// Edit implements service.Service. A non-empty deadline that is not a
// valid date fails with ErrInvalidDate before anything changes, and a
// title of only spaces fails with ErrEmptyTitle.
func (s *Store) Edit(id int, ch service.Changes) (*task.Task, error) {
	_, t, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if ch.Title != "" && strings.TrimSpace(ch.Title) == "" {
		return nil, ErrEmptyTitle
	}

	var deadline *task.Date
	if ch.Deadline != "" {
		d, err := task.ParseDate(ch.Deadline)
		if err != nil {
			return nil, err
		}
		deadline = &d
	}

	prev := *t
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

	if err := s.Save(); err != nil {
		*t = prev
		return nil, err
	}
	return t, nil
}

// Complete implements service.Service.
func (s *Store) Complete(id int) (*task.Task, error) {
	_, t, err := s.find(id)
	if err != nil {
		return nil, err
	}

	prev := *t
	if !t.MarkCompleteAt(s.now()) {
		return t, fmt.Errorf("%w: %d", ErrAlreadyCompleted, id)
	}

	if err := s.Save(); err != nil {
		*t = prev
		return nil, err
	}
	return t, nil
}

// Delete implements service.Service.
func (s *Store) Delete(id int) (*task.Task, error) {
	i, t, err := s.find(id)
	if err != nil {
		return nil, err
	}

	prev := s.tasks
	remaining := make([]*task.Task, 0, len(s.tasks)-1)
	remaining = append(remaining, s.tasks[:i]...)
	remaining = append(remaining, s.tasks[i+1:]...)
	s.tasks = remaining

	if err := s.Save(); err != nil {
		s.tasks = prev
		return nil, err
	}
	return t, nil
}

// Stats implements service.Service.
func (s *Store) Stats() service.Stats {
	now := s.now()
	var st service.Stats
	for _, t := range s.tasks {
		st.Count(t, now)
	}
	return st
}

func (s *Store) find(id int) (int, *task.Task, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, t, nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// ParseID parses a task id typed by the user.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidID, s)
	}
	return id, nil
}
