// Package auth selects the transport authentication strategy for a remote
// URL. It maps URL schemes onto go-git auth methods: key-based for ssh,
// credential-based for http and https.
package auth

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// ErrUnsupportedScheme is returned for any URL scheme outside
// {ssh, http, https}. A scheme outside that set is a configuration error,
// never a silent default.
var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// Options carries the credential material the selector may draw from.
// It is read-only; Select never mutates it.
type Options struct {
	// SSHPrivateKeyPath is the identity file loaded for ssh remotes.
	SSHPrivateKeyPath string

	// HTTPUsername and HTTPPassword are attached to http(s) remotes
	// as basic-auth credentials.
	HTTPUsername string
	HTTPPassword string
}

// Select returns the auth method for rawURL. Dispatch is total and
// exclusive: an ssh URL never receives credentials, an http(s) URL never
// receives a key, and any other scheme fails with ErrUnsupportedScheme.
// Select performs no network I/O; ssh key material is read from disk.
//
//nolint:ireturn // go-git requires returning the transport.AuthMethod interface
func Select(rawURL string, opts Options) (transport.AuthMethod, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote url %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "ssh":
		return keyAuth(opts)
	case "http", "https":
		return &githttp.BasicAuth{
			Username: opts.HTTPUsername,
			Password: opts.HTTPPassword,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

//nolint:ireturn // go-git requires returning the transport.AuthMethod interface
func keyAuth(opts Options) (transport.AuthMethod, error) {
	if opts.SSHPrivateKeyPath == "" {
		return nil, fmt.Errorf("no ssh private key configured")
	}
	if _, err := os.Stat(opts.SSHPrivateKeyPath); err != nil {
		return nil, fmt.Errorf("ssh private key: %w", err)
	}

	keys, err := gitssh.NewPublicKeysFromFile("git", opts.SSHPrivateKeyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load ssh key: %w", err)
	}

	// Load targets are disposable test instances; host keys are not pinned.
	keys.HostKeyCallback = gossh.InsecureIgnoreHostKey()

	return keys, nil
}
