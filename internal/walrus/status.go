package walrus

import (
	"context"
	"errors"
	"net/http"
)

// Status is the availability of the Walrus write path as seen by the probe.
// Timeout is deliberately distinct from Unavailable: a timed-out probe means
// "network busy, retry later", a refused one means "network down, use
// fallback storage".
type Status string

const (
	StatusChecking    Status = "checking"
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusTimeout     Status = "timeout"
)

// CheckStatus probes the canonical publisher with a cheap OPTIONS request.
// Stateless per call; the presentation layer polls it on an interval.
func (c *Client) CheckStatus(ctx context.Context) Status {
	probeCtx := ctx
	if c.cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.cfg.ProbeTimeout)
		defer cancel()
	}

	resp, err := c.http.R().
		SetContext(probeCtx).
		SetRetryCount(0).
		Options(c.cfg.Endpoints.Canonical() + blobsPath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || probeCtx.Err() == context.DeadlineExceeded {
			return StatusTimeout
		}
		return StatusUnavailable
	}

	// 405 means the publisher is up but does not implement OPTIONS.
	if resp.IsSuccessState() || resp.StatusCode == http.StatusMethodNotAllowed {
		return StatusAvailable
	}
	return StatusUnavailable
}
