package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

// writeTestKey generates an unencrypted ed25519 private key file.
func writeTestKey(t *testing.T) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err, "failed to generate key")

	block, err := gossh.MarshalPrivateKey(priv, "")
	require.NoError(t, err, "failed to marshal key")

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestSelectSSH(t *testing.T) {
	keyPath := writeTestKey(t)

	method, err := Select("ssh://git@git.example.com/project.git", Options{
		SSHPrivateKeyPath: keyPath,
		// Credentials must never leak onto the ssh path.
		HTTPUsername: "user",
		HTTPPassword: "pass",
	})
	require.NoError(t, err)

	keys, ok := method.(*gitssh.PublicKeys)
	require.True(t, ok, "ssh scheme must produce key-based auth, got %T", method)
	assert.Equal(t, "git", keys.User)
}

func TestSelectSSHErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "no key configured",
			opts: Options{},
		},
		{
			name: "key file missing",
			opts: Options{SSHPrivateKeyPath: "/nonexistent/id_ed25519"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := Select("ssh://git@git.example.com/project.git", tt.opts)
			require.Error(t, err)
			assert.Nil(t, method)
		})
	}
}

func TestSelectHTTP(t *testing.T) {
	for _, scheme := range []string{"http", "https"} {
		t.Run(scheme, func(t *testing.T) {
			method, err := Select(scheme+"://git.example.com/project.git", Options{
				SSHPrivateKeyPath: "/some/key", // must never leak onto the http path
				HTTPUsername:      "loaduser",
				HTTPPassword:      "loadpass",
			})
			require.NoError(t, err)

			basic, ok := method.(*githttp.BasicAuth)
			require.True(t, ok, "%s scheme must produce basic auth, got %T", scheme, method)
			assert.Equal(t, "loaduser", basic.Username)
			assert.Equal(t, "loadpass", basic.Password)
		})
	}
}

func TestSelectUnsupportedScheme(t *testing.T) {
	tests := []string{
		"ftp://git.example.com/project.git",
		"git://git.example.com/project.git",
		"file:///tmp/project",
	}

	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			method, err := Select(url, Options{HTTPUsername: "u", HTTPPassword: "p"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedScheme))
			assert.Nil(t, method)
		})
	}
}

func TestSelectMalformedURL(t *testing.T) {
	// scp-style remotes carry no explicit scheme and are outside the contract.
	method, err := Select("git@git.example.com:project.git", Options{})
	require.Error(t, err)
	assert.Nil(t, method)
}
