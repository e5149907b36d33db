// Package gitload models remote git operations as discrete, measurable
// requests. This file contains the request variants and their protocol logic.
package gitload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/loadworks/gitload/internal/auth"
)

// UploadRef is the review-style ref every push targets. It is deliberately
// not configurable: pushes model code-review submissions, not branch updates.
const UploadRef = "refs/for/master"

// PushCommitSpec bounds the synthetic commit generated for every push.
var PushCommitSpec = CommitSpec{
	FileCount:        4,
	MaxFileSizeBytes: 100,
	TotalByteBudget:  10000,
}

// Kind identifies a request variant. The set is closed: Clone, Fetch, Pull,
// Push, and Invalid for anything else.
type Kind int

const (
	KindClone Kind = iota
	KindFetch
	KindPull
	KindPush
	KindInvalid
)

// String returns the human-readable variant label.
func (k Kind) String() string {
	switch k {
	case KindClone:
		return "Clone"
	case KindFetch:
		return "Fetch"
	case KindPull:
		return "Pull"
	case KindPush:
		return "Push"
	default:
		return "Invalid"
	}
}

// KindOf parses an operation label, case-insensitively. Anything outside the
// closed set maps to KindInvalid, which always fails on send.
func KindOf(s string) Kind {
	switch strings.ToLower(s) {
	case "clone":
		return KindClone
	case "fetch":
		return KindFetch
	case "pull":
		return KindPull
	case "push":
		return KindPush
	default:
		return KindInvalid
	}
}

// Params carries the inputs shared by every request variant.
type Params struct {
	// URL is the remote repository location. Its scheme selects the
	// transport strategy; schemes outside {ssh, http, https} fail lazily
	// at send time.
	URL string

	// User is the simulated user's identity. It namespaces local storage
	// and is never sent over the wire except via credentials.
	User string

	// Config is the process-wide configuration bundle, read-only for the
	// lifetime of the request.
	Config *Config

	// Logger receives out-of-band error detail. Nil disables logging.
	Logger *zerolog.Logger
}

// Request is one remote git operation performed on behalf of a simulated
// user. The harness calls Send exactly once and records the request name,
// elapsed time, and mapped status.
type Request interface {
	// Name is the human-readable request label, e.g. "Clone: <url>".
	Name() string

	// Send performs the operation and returns its terminal response.
	// It blocks for the duration of the network and filesystem work; every
	// failure is absorbed into a Fail response rather than propagated.
	Send(ctx context.Context) Response
}

// New builds the request variant for kind. Unknown kinds produce an Invalid
// request rather than an error, so a bad scenario entry costs one failed
// request, never a crashed run.
//
//nolint:ireturn // the closed variant set is dispatched behind the Request interface
func New(kind Kind, p Params) Request {
	switch kind {
	case KindClone:
		return NewClone(p)
	case KindFetch:
		return NewFetch(p)
	case KindPull:
		return NewPull(p)
	case KindPush:
		return NewPush(p)
	default:
		return NewInvalid(p)
	}
}

// base carries the state common to all variants.
type base struct {
	kind Kind
	url  string
	user string
	cfg  *Config
	log  zerolog.Logger
}

func newBase(kind Kind, p Params) base {
	log := zerolog.Nop()
	if p.Logger != nil {
		log = *p.Logger
	}
	log = log.With().
		Str("op", kind.String()).
		Str("user", p.User).
		Str("url", p.URL).
		Logger()

	return base{
		kind: kind,
		url:  p.URL,
		user: p.User,
		cfg:  p.Config,
		log:  log,
	}
}

// Name implements Request.
func (b *base) Name() string {
	return fmt.Sprintf("%s: %s", b.kind, b.url)
}

// respond converts the outcome of a send into the terminal response,
// emitting error detail out-of-band. This is the single point where the
// error taxonomy collapses into the binary status.
func (b *base) respond(err error) Response {
	if err != nil {
		b.log.Error().Err(err).Msg("request failed")
		return Response{Status: Fail}
	}
	b.log.Debug().Msg("request completed")
	return Response{Status: OK}
}

// authMethod resolves the transport strategy for the request URL. It runs
// before any workspace mutation so that a configuration error never
// destroys existing local state.
//
//nolint:ireturn // go-git requires the transport.AuthMethod interface
func (b *base) authMethod() (transport.AuthMethod, error) {
	return auth.Select(b.url, auth.Options{
		SSHPrivateKeyPath: b.cfg.SSH.PrivateKeyPath,
		HTTPUsername:      b.cfg.HTTP.Username,
		HTTPPassword:      b.cfg.HTTP.Password,
	})
}

func (b *base) workspace() (*Workspace, error) {
	return NewWorkspace(b.cfg.BasePath, b.user, b.url)
}

// transportErr folds an operation error into the transport category,
// treating go-git's already-up-to-date signal as success.
func transportErr(err error) error {
	if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return classify(ErrTransport, err)
}

// Clone deletes any existing workspace for the (user, repo) pair and clones
// the remote into a fresh one. Back-to-back clones are equivalent to a
// single fresh clone; nothing from a prior run survives.
type Clone struct {
	base

	// Hook names an embedded hook resource installed after a successful
	// clone. Empty disables installation; installation failures are logged
	// and never fail the clone.
	Hook string
}

// NewClone builds a clone request.
func NewClone(p Params) *Clone {
	return &Clone{base: newBase(KindClone, p)}
}

// Send implements Request.
func (r *Clone) Send(ctx context.Context) Response {
	return r.respond(r.send(ctx))
}

func (r *Clone) send(ctx context.Context) error {
	method, err := r.authMethod()
	if err != nil {
		return err
	}

	workspace, err := r.workspace()
	if err != nil {
		return err
	}
	if err := workspace.Reset(); err != nil {
		return err
	}

	_, err = git.PlainCloneContext(ctx, workspace.Dir(), false, &git.CloneOptions{
		URL:  r.url,
		Auth: method,
	})
	if err != nil {
		return transportErr(err)
	}

	if r.Hook != "" {
		if hookErr := installHook(workspace.Dir(), r.Hook); hookErr != nil {
			r.log.Warn().Err(hookErr).Msg("post-clone hook install skipped")
		}
	}

	return nil
}

// Fetch fetches from origin, initializing the workspace on first use.
type Fetch struct {
	base
}

// NewFetch builds a fetch request.
func NewFetch(p Params) *Fetch {
	return &Fetch{base: newBase(KindFetch, p)}
}

// Send implements Request.
func (r *Fetch) Send(ctx context.Context) Response {
	return r.respond(r.send(ctx))
}

func (r *Fetch) send(ctx context.Context) error {
	method, err := r.authMethod()
	if err != nil {
		return err
	}

	workspace, err := r.workspace()
	if err != nil {
		return err
	}
	repo, err := workspace.EnsureInitialized()
	if err != nil {
		return err
	}

	return transportErr(repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: RemoteName,
		Auth:       method,
	}))
}

// Pull fetches from origin and integrates into the current branch,
// initializing the workspace on first use.
type Pull struct {
	base
}

// NewPull builds a pull request.
func NewPull(p Params) *Pull {
	return &Pull{base: newBase(KindPull, p)}
}

// Send implements Request.
func (r *Pull) Send(ctx context.Context) Response {
	return r.respond(r.send(ctx))
}

func (r *Pull) send(ctx context.Context) error {
	method, err := r.authMethod()
	if err != nil {
		return err
	}

	workspace, err := r.workspace()
	if err != nil {
		return err
	}
	repo, err := workspace.EnsureInitialized()
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return classify(ErrWorkspace, err)
	}

	return transportErr(worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: RemoteName,
		Auth:       method,
	}))
}

// Push generates one synthetic commit within PushCommitSpec and pushes the
// current head to the UploadRef, initializing the workspace on first use.
type Push struct {
	base

	suffix string
}

// NewPush builds a push request with a fresh uniqueness suffix for the
// generated commit message.
func NewPush(p Params) *Push {
	return &Push{
		base:   newBase(KindPush, p),
		suffix: uuid.NewString(),
	}
}

// Send implements Request.
func (r *Push) Send(ctx context.Context) Response {
	return r.respond(r.send(ctx))
}

func (r *Push) send(ctx context.Context) error {
	method, err := r.authMethod()
	if err != nil {
		return err
	}

	workspace, err := r.workspace()
	if err != nil {
		return err
	}
	repo, err := workspace.EnsureInitialized()
	if err != nil {
		return err
	}

	if _, err := GenerateCommit(repo, PushCommitSpec, r.suffix); err != nil {
		return err
	}

	// go-git's refspec matcher wants a concrete ref on the left side, so
	// the symbolic HEAD is resolved; the target stays the fixed UploadRef.
	head, err := repo.Head()
	if err != nil {
		return classify(ErrWorkspace, err)
	}
	refspec := gitconfig.RefSpec(fmt.Sprintf("%s:%s", head.Name(), UploadRef))

	return transportErr(repo.PushContext(ctx, &git.PushOptions{
		RemoteName: RemoteName,
		RefSpecs:   []gitconfig.RefSpec{refspec},
		Auth:       method,
	}))
}

// Invalid is the variant for unrecognized operation kinds. It performs no
// I/O and always fails.
type Invalid struct {
	base
}

// NewInvalid builds an invalid request.
func NewInvalid(p Params) *Invalid {
	return &Invalid{base: newBase(KindInvalid, p)}
}

// Send implements Request.
func (r *Invalid) Send(_ context.Context) Response {
	return r.respond(ErrInvalidRequest)
}
