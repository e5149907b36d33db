// Package gitload provides synthetic commit generation for the push path.
package gitload

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitSpec bounds one synthetic commit. All three fields are hard limits:
// exceeding any of them is a contract failure, not best-effort.
type CommitSpec struct {
	// FileCount is the exact number of files the commit touches.
	FileCount int

	// MaxFileSizeBytes caps each individual file.
	MaxFileSizeBytes int

	// TotalByteBudget caps the aggregate size of the change.
	TotalByteBudget int
}

// Validate checks that the spec is satisfiable.
func (s CommitSpec) Validate() error {
	if s.FileCount <= 0 {
		return WrapError(ErrCommitGeneration, "file count must be positive")
	}
	if s.MaxFileSizeBytes <= 0 {
		return WrapError(ErrCommitGeneration, "max file size must be positive")
	}
	if s.TotalByteBudget <= 0 {
		return WrapError(ErrCommitGeneration, "byte budget must be positive")
	}
	if s.TotalByteBudget < s.FileCount {
		return WrapError(ErrCommitGeneration, "byte budget cannot cover one byte per file")
	}
	return nil
}

const payloadAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// commitAuthor identifies synthetic commits; the simulated user never
// appears in commit metadata, only in the workspace path and credentials.
var commitAuthor = object.Signature{
	Name:  "gitload",
	Email: "gitload@localhost",
}

// GenerateCommit writes spec.FileCount files through the repository's
// worktree filesystem, each within spec.MaxFileSizeBytes and in aggregate
// within spec.TotalByteBudget, then stages and commits them. File names are
// stable across invocations so repeated pushes modify the same paths instead
// of growing the tree; content is random, so every invocation produces a
// change. The suffix distinguishes commit messages across pushes.
//
// On success the worktree is left committed and clean.
func GenerateCommit(repo *git.Repository, spec CommitSpec, suffix string) (plumbing.Hash, error) {
	if err := spec.Validate(); err != nil {
		return plumbing.ZeroHash, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, classify(ErrCommitGeneration, err)
	}
	wtFS := worktree.Filesystem

	remaining := spec.TotalByteBudget
	for i := 0; i < spec.FileCount; i++ {
		// Leave at least one byte of budget for every file still to come.
		filesAfter := spec.FileCount - i - 1
		ceiling := spec.MaxFileSizeBytes
		if room := remaining - filesAfter; room < ceiling {
			ceiling = room
		}
		size := 1
		if ceiling > 1 {
			size = 1 + rand.IntN(ceiling)
		}
		remaining -= size

		name := fmt.Sprintf("load-%d.dat", i)
		if err := util.WriteFile(wtFS, name, randomPayload(size), 0o644); err != nil {
			return plumbing.ZeroHash, classify(ErrCommitGeneration, err)
		}
		if _, err := worktree.Add(name); err != nil {
			return plumbing.ZeroHash, classify(ErrCommitGeneration, err)
		}
	}

	when := time.Now()
	author := commitAuthor
	author.When = when

	hash, err := worktree.Commit(fmt.Sprintf("Synthetic load commit %s", suffix), &git.CommitOptions{
		Author:    &author,
		Committer: &author,
	})
	if err != nil {
		return plumbing.ZeroHash, classify(ErrCommitGeneration, err)
	}

	return hash, nil
}

func randomPayload(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = payloadAlphabet[rand.IntN(len(payloadAlphabet))]
	}
	return data
}
