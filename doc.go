// Package gitload models remote version-control operations (clone, fetch,
// pull, push) as discrete, measurable requests for a load-generation harness.
//
// Each request drives a real git transport against a target repository on
// behalf of one simulated user, records success or failure, and — for push —
// synthesizes realistic write traffic by generating commits on demand.
//
// # Basic Usage
//
// Build a request and send it:
//
//	cfg, err := gitload.LoadConfig("")
//	if err != nil {
//	    // handle error
//	}
//
//	req := gitload.New(gitload.KindClone, gitload.Params{
//	    URL:    "https://git.example.com/project.git",
//	    User:   "user-1",
//	    Config: cfg,
//	})
//
//	resp := req.Send(context.Background())
//	status := resp.HarnessStatus() // ok or ko
//
// The URL scheme selects the transport strategy: ssh remotes authenticate
// with the configured private key, http and https remotes with basic
// credentials. Any other scheme fails the request without a network call.
//
// # Workspaces
//
// Every (user, repository) pair owns a deterministic local directory at
// {basePath}/{user}/{repoName}. Clone unconditionally recreates it; fetch,
// pull and push initialize it lazily and reuse it afterwards. Requests for
// different users never contend. Concurrent requests for the same pair are
// not safe and must be prevented by scenario design.
//
// # Push traffic
//
// Push generates one synthetic commit per request — a fixed number of files
// within fixed size bounds — and submits the current head to the
// review-style ref refs/for/master.
//
// All failures are absorbed at the request boundary: the harness only ever
// sees a binary status, and error detail goes to the configured zerolog
// logger.
package gitload
