package walrus

import (
	"errors"
	"fmt"
)

// ErrorKind classifies upload and retrieval failures. Callers branch on the
// kind: validation-style failures mean "fix the request", exhausted-retry
// kinds mean "try again later".
type ErrorKind string

const (
	// KindAllEndpointsFailed - every publisher in the registry rejected or
	// errored; the subsystem does not retry past one full pass.
	KindAllEndpointsFailed ErrorKind = "ALL_ENDPOINTS_FAILED"

	// KindDeploymentFailed - the canonical deployment endpoint returned a
	// non-503 error status. Not retried.
	KindDeploymentFailed ErrorKind = "DEPLOYMENT_FAILED"

	// KindMaxRetriesExceeded - the 503 backoff loop exhausted its budget.
	KindMaxRetriesExceeded ErrorKind = "MAX_RETRIES_EXCEEDED"

	// KindNetworkUnavailable - transport-level failure, surfaced after the
	// backoff budget was spent on it.
	KindNetworkUnavailable ErrorKind = "NETWORK_UNAVAILABLE"

	// KindNetworkTimeout - the 60s overall deployment deadline fired.
	KindNetworkTimeout ErrorKind = "NETWORK_TIMEOUT"

	// KindNotFoundAfterPropagationWait - no aggregator served the blob across
	// all propagation passes.
	KindNotFoundAfterPropagationWait ErrorKind = "NOT_FOUND_AFTER_PROPAGATION_WAIT"
)

// UploadError is the typed failure of either upload mode. HTTPStatus is set
// for KindDeploymentFailed, Attempts counts endpoint or retry attempts made
// before surfacing.
type UploadError struct {
	Kind       ErrorKind
	HTTPStatus int
	Attempts   int
	Err        error
}

func (e *UploadError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("walrus upload: %s (http %d, attempts %d)", e.Kind, e.HTTPStatus, e.Attempts)
	}
	if e.Err != nil {
		return fmt.Sprintf("walrus upload: %s (attempts %d): %v", e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("walrus upload: %s (attempts %d)", e.Kind, e.Attempts)
}

func (e *UploadError) Unwrap() error { return e.Err }

// RetrievalError is the typed failure of the read path.
type RetrievalError struct {
	Kind   ErrorKind
	BlobID string
	Passes int
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("walrus fetch %s: %s (passes %d)", e.BlobID, e.Kind, e.Passes)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// statusError carries a non-success HTTP status from a single endpoint
// attempt, before the retry policy classifies it.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("endpoint returned http %d", e.status)
}

// KindOf extracts the error kind from a wrapped upload/retrieval error, or ""
// if err is not one of ours.
func KindOf(err error) ErrorKind {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	var re *RetrievalError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
