// Package workspace provisions working directories by cloning circuit
// repositories, tracking each clone so it can be removed later.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/naz3eh/zkp-service/internal/command"
)

// ErrNotFound is returned when a workspace id is unknown.
var ErrNotFound = errors.New("workspace not found")

// CloneError reports that git ran and rejected the clone; Stderr carries its
// captured error output.
type CloneError struct {
	Stderr string
}

func (e *CloneError) Error() string {
	return "git clone failed: " + e.Stderr
}

// Workspace is one tracked working directory.
type Workspace struct {
	ID      string `json:"id"`
	RepoURL string `json:"repo_url"`
	Path    string `json:"path"`
}

// Manager clones repositories under a root directory and tracks them by id.
// It is safe for concurrent use.
type Manager struct {
	root   string
	runner command.Runner
	logger *slog.Logger

	mu   sync.Mutex
	dirs map[string]Workspace
}

// NewManager creates a workspace manager rooted at root. A nil runner falls
// back to os/exec.
func NewManager(root string, runner command.Runner, logger *slog.Logger) *Manager {
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &Manager{
		root:   root,
		runner: runner,
		logger: logger,
		dirs:   make(map[string]Workspace),
	}
}

// Clone clones repoURL into a fresh directory under the root and tracks it.
func (m *Manager) Clone(ctx context.Context, repoURL string) (Workspace, error) {
	if repoURL == "" {
		return Workspace{}, errors.New("repository URL is required")
	}
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return Workspace{}, fmt.Errorf("create workspace root: %w", err)
	}

	id := "ws_" + ulid.Make().String()
	path := filepath.Join(m.root, id)

	_, stderr, err := m.runner.Run(ctx, "git", "clone", "--depth", "1", repoURL, path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Workspace{}, &CloneError{Stderr: strings.TrimSpace(string(stderr))}
		}
		return Workspace{}, fmt.Errorf("run git clone: %w", err)
	}

	ws := Workspace{ID: id, RepoURL: repoURL, Path: path}
	m.mu.Lock()
	m.dirs[id] = ws
	m.mu.Unlock()

	m.logger.Info("workspace cloned", "workspace_id", id, "repo_url", repoURL, "path", path)
	return ws, nil
}

// Remove deletes a tracked workspace directory and stops tracking it.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	ws, ok := m.dirs[id]
	if ok {
		delete(m.dirs, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	if err := os.RemoveAll(ws.Path); err != nil {
		return fmt.Errorf("remove workspace directory: %w", err)
	}
	m.logger.Info("workspace removed", "workspace_id", id, "path", ws.Path)
	return nil
}

// List returns all tracked workspaces sorted by id for a stable response.
func (m *Manager) List() []Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Workspace, 0, len(m.dirs))
	for _, ws := range m.dirs {
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
