// Package gitload provides the request outcome types and their mapping
// into the harness result vocabulary.
package gitload

// Status is the internal binary outcome of a request execution.
// The set is closed by construction; no third value exists.
type Status int

const (
	// OK means the operation completed successfully.
	OK Status = iota

	// Fail means the operation failed; detail goes to the logger, never
	// into the response.
	Fail
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Fail:
		return "Fail"
	default:
		return "unknown"
	}
}

// Response is the terminal result of one request execution. It is created
// once per request, immutable, and consumed immediately by the harness.
type Response struct {
	Status Status
}

// HarnessStatus is the result vocabulary of the load harness.
type HarnessStatus int

const (
	// HarnessOK is the harness success status.
	HarnessOK HarnessStatus = iota

	// HarnessKO is the harness failure status.
	HarnessKO
)

// String returns the harness wire label for the status.
func (s HarnessStatus) String() string {
	switch s {
	case HarnessOK:
		return "ok"
	case HarnessKO:
		return "ko"
	default:
		return "unknown"
	}
}

// HarnessStatus translates the response into the harness vocabulary.
// The mapping is pure, total and side-effect free.
func (r Response) HarnessStatus() HarnessStatus {
	if r.Status == OK {
		return HarnessOK
	}
	return HarnessKO
}
