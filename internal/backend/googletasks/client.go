// Package googletasks implements service.Remote using the Google Tasks API.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasktracker/internal/config"
	"tasktracker/internal/service"
	"tasktracker/internal/task"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Remote using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

var _ service.Remote = (*Client)(nil)

// New creates a client from the credentials stored by login.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// The token source refreshes the access token as needed
	return NewWithHTTPClient(ctx, oauth2.NewClient(ctx, oc.TokenSource(ctx, token)))
}

// NewWithHTTPClient creates a client with a custom HTTP client and optional
// extra client options (for testing against a local server).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.RemoteList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.RemoteList{}, wrapError(err)
	}

	return service.RemoteList{
		ID:        DefaultListID,
		Title:     list.Title,
		IsDefault: true,
	}, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []service.RemoteList
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
				matches = append(matches, service.RemoteList{ID: list.Id, Title: list.Title})
			}
		}
		return nil
	})
	if err != nil {
		return service.RemoteList{}, wrapError(err)
	}

	switch len(matches) {
	case 0:
		return service.RemoteList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return service.RemoteList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}

// CreateTask inserts a copy of t into the list.
func (c *Client) CreateTask(ctx context.Context, listID string, t *task.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, toRemote(t)).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// toRemote maps a local task onto the Google Tasks resource. Due dates are
// midnight UTC; the API ignores the time part.
func toRemote(t *task.Task) *tasks.Task {
	rt := &tasks.Task{
		Title:  t.Title,
		Notes:  t.Description,
		Status: statusNeedsAction,
	}
	if t.Deadline != nil && t.Deadline.Valid() {
		rt.Due = t.Deadline.Time().Format(time.RFC3339)
	}
	if t.Completed {
		rt.Status = statusCompleted
		if t.CompletedAt != nil && t.CompletedAt.Valid() {
			completed := t.CompletedAt.Time().UTC().Format(time.RFC3339)
			rt.Completed = &completed
		}
	}
	return rt
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	// Check for timeout
	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	// Check for auth errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: tasktracker login)")
	}

	// Check for not found
	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
