package gitload

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// DefaultHook is the hook resource a clone installs when none is named.
const DefaultHook = "commit-msg"

//go:embed hooks
var hookFS embed.FS

// installHook copies an embedded hook script into the cloned repository's
// .git/hooks directory and marks it executable. Installation is best-effort
// by contract: callers log failures and never flip a successful clone to
// Fail over them.
func installHook(repoDir, name string) error {
	data, err := hookFS.ReadFile(path.Join("hooks", name))
	if err != nil {
		return fmt.Errorf("unknown hook resource %q: %w", name, err)
	}

	hooksDir := filepath.Join(repoDir, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	target := filepath.Join(hooksDir, name)
	if err := os.WriteFile(target, data, 0o755); err != nil {
		return fmt.Errorf("failed to install hook %q: %w", name, err)
	}

	return nil
}
