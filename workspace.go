// Package gitload provides per-user workspace lifecycle management.
// A workspace is the local directory and repository state dedicated to one
// (user, repository) pair.
package gitload

import (
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// RemoteName is the remote every workspace binds its target URL to.
const RemoteName = "origin"

// Workspace owns the local directory for one (user, repository) pair.
// The directory is a pure function of (basePath, user, repoName): the same
// pair always maps to the same path and distinct pairs never collide.
//
// Two concurrent requests for different users never contend. Concurrent
// requests for the same (user, repo) pair are not safe and must be prevented
// by scenario design: one logical user is one logical thread of activity.
type Workspace struct {
	dir string
	url string
}

// NewWorkspace computes the workspace for the given user and remote URL.
// The repository name is the last segment of the URL path, with a trailing
// ".git" stripped.
func NewWorkspace(basePath, user, rawURL string) (*Workspace, error) {
	if basePath == "" {
		return nil, WrapError(ErrWorkspace, "base path is required")
	}
	if user == "" {
		return nil, WrapError(ErrWorkspace, "user is required")
	}

	name, err := repoName(rawURL)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		dir: filepath.Join(basePath, user, name),
		url: rawURL,
	}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// EnsureInitialized opens the local repository, creating it together with
// its origin remote on first use. Re-entry is idempotent: an existing
// repository is opened without modification, except that an origin remote
// bound to a different URL is rebound to the current target.
func (w *Workspace) EnsureInitialized() (*git.Repository, error) {
	repo, err := git.PlainOpen(w.dir)
	switch {
	case err == nil:
		return repo, w.ensureRemote(repo)

	case errors.Is(err, git.ErrRepositoryNotExists):
		if mkErr := os.MkdirAll(w.dir, 0o755); mkErr != nil {
			return nil, classify(ErrWorkspace, mkErr)
		}
		repo, err = git.PlainInit(w.dir, false)
		if err != nil {
			return nil, classify(ErrWorkspace, err)
		}
		return repo, w.ensureRemote(repo)

	default:
		return nil, classify(ErrWorkspace, err)
	}
}

// Reset recursively deletes the workspace directory, leaving no residue.
// A missing directory counts as success; a clone writes into the result.
func (w *Workspace) Reset() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return classify(ErrWorkspace, err)
	}
	return nil
}

func (w *Workspace) ensureRemote(repo *git.Repository) error {
	remote, err := repo.Remote(RemoteName)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return w.createRemote(repo)
	}
	if err != nil {
		return classify(ErrWorkspace, err)
	}

	urls := remote.Config().URLs
	if len(urls) > 0 && urls[0] == w.url {
		return nil
	}

	// Stale origin from an earlier scenario run: rebind to the current target.
	if err := repo.DeleteRemote(RemoteName); err != nil {
		return classify(ErrWorkspace, err)
	}
	return w.createRemote(repo)
}

func (w *Workspace) createRemote(repo *git.Repository) error {
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: RemoteName,
		URLs: []string{w.url},
	})
	if err != nil {
		return classify(ErrWorkspace, err)
	}
	return nil
}

func repoName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", classify(ErrWorkspace, err)
	}

	name := strings.TrimSuffix(path.Base(u.Path), ".git")
	if name == "" || name == "." || name == "/" {
		return "", WrapErrorf(ErrWorkspace, "no repository name in url %q", rawURL)
	}
	return name, nil
}
