package gitload

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/client"
	"github.com/go-git/go-git/v5/plumbing/transport/server"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testLoader backs an in-process git server: every registered URL maps to an
// in-memory storer, so clone/fetch/pull/push exercise the real wire path
// without a network.
var (
	testLoader  = server.MapLoader{}
	installOnce sync.Once
)

func installTestTransport() {
	installOnce.Do(func() {
		client.InstallProtocol("http", server.NewClient(testLoader))
	})
}

// newUpstream registers a fresh upstream repository with one seed commit on
// master and returns its URL.
func newUpstream(t *testing.T) string {
	t.Helper()
	installTestTransport()

	url := fmt.Sprintf("http://gitload.test/%s.git", uuid.NewString())
	testLoader[url] = memory.NewStorage()
	seedUpstream(t, url)
	return url
}

// newEmptyUpstream registers an upstream with no history at all.
func newEmptyUpstream(t *testing.T) string {
	t.Helper()
	installTestTransport()

	url := fmt.Sprintf("http://gitload.test/%s.git", uuid.NewString())
	testLoader[url] = memory.NewStorage()
	return url
}

func seedUpstream(t *testing.T, url string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err, "failed to init seed repository")

	err = os.WriteFile(filepath.Join(dir, "README.md"), []byte("# load target\n"), 0o644)
	require.NoError(t, err, "failed to write seed file")

	worktree, err := repo.Worktree()
	require.NoError(t, err, "failed to get seed worktree")

	_, err = worktree.Add("README.md")
	require.NoError(t, err, "failed to add seed file")

	_, err = worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "seed", Email: "seed@localhost", When: time.Now()},
	})
	require.NoError(t, err, "failed to create seed commit")

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: RemoteName,
		URLs: []string{url},
	})
	require.NoError(t, err, "failed to create seed remote")

	err = repo.Push(&git.PushOptions{
		RemoteName: RemoteName,
		RefSpecs:   []gitconfig.RefSpec{"refs/heads/master:refs/heads/master"},
	})
	require.NoError(t, err, "failed to push seed commit")

	// Clones need a default branch to check out.
	err = upstreamStorage(t, url).SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.Master))
	require.NoError(t, err, "failed to set upstream HEAD")
}

func upstreamStorage(t *testing.T, url string) *memory.Storage {
	t.Helper()

	storage, ok := testLoader[url].(*memory.Storage)
	require.True(t, ok, "upstream not registered: %s", url)
	return storage
}

func testConfig(t *testing.T) *Config {
	t.Helper()

	return &Config{
		BasePath: t.TempDir(),
		HTTP: HTTPConfig{
			Username: "load",
			Password: "secret",
		},
	}
}

// workspaceDir resolves the deterministic workspace directory for a pair.
func workspaceDir(t *testing.T, cfg *Config, user, url string) string {
	t.Helper()

	workspace, err := NewWorkspace(cfg.BasePath, user, url)
	require.NoError(t, err, "failed to compute workspace")
	return workspace.Dir()
}

// newLocalRepo initializes a throwaway repository for generator tests.
func newLocalRepo(t *testing.T) *git.Repository {
	t.Helper()

	repo, err := git.PlainInit(t.TempDir(), false)
	require.NoError(t, err, "failed to init local repository")
	return repo
}
