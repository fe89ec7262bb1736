package walrus

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// Fetch reads a blob back from the network. A freshly written blob may not be
// visible on every aggregator yet, so the read makes up to PropagationPasses
// sweeps over the aggregator list, sleeping PropagationDelay between sweeps.
// The first aggregator to answer wins. Returns the payload and its
// Content-Type as reported by the aggregator.
func (c *Client) Fetch(ctx context.Context, blobID string) ([]byte, string, error) {
	aggregators := c.cfg.Endpoints.Aggregators()

	var lastErr error
	for pass := 0; pass < c.cfg.PropagationPasses; pass++ {
		if pass > 0 {
			slog.Debug("walrus blob not yet propagated, waiting",
				"blobId", blobID,
				"pass", pass+1,
				"delay", c.cfg.PropagationDelay)
			if err := c.sleep(ctx, c.cfg.PropagationDelay); err != nil {
				return nil, "", &RetrievalError{Kind: KindNotFoundAfterPropagationWait, BlobID: blobID, Passes: pass, Err: err}
			}
		}

		for _, aggregator := range aggregators {
			data, contentType, err := c.getBlob(ctx, aggregator, blobID)
			if err == nil {
				return data, contentType, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				return nil, "", &RetrievalError{Kind: KindNotFoundAfterPropagationWait, BlobID: blobID, Passes: pass + 1, Err: ctx.Err()}
			}
		}
	}

	return nil, "", &RetrievalError{
		Kind:   KindNotFoundAfterPropagationWait,
		BlobID: blobID,
		Passes: c.cfg.PropagationPasses,
		Err:    lastErr,
	}
}

func (c *Client) getBlob(ctx context.Context, aggregator, blobID string) ([]byte, string, error) {
	attemptCtx := ctx
	if c.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
		defer cancel()
	}

	resp, err := c.http.R().
		SetContext(attemptCtx).
		SetRetryCount(0).
		Get(aggregator + blobsPath + "/" + blobID)
	if err != nil {
		return nil, "", fmt.Errorf("get blob: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, "", &statusError{status: resp.StatusCode}
	}
	return resp.Bytes(), resp.GetHeader("Content-Type"), nil
}

// Head is a lightweight existence check used by verification displays and
// deployment-status polling. It never transfers the body. A blob is reported
// as missing only when every aggregator said so; there is no
// assume-it-exists shortcut here, the server can always do the real check.
func (c *Client) Head(ctx context.Context, blobID string) (*HeadResult, error) {
	for _, aggregator := range c.cfg.Endpoints.Aggregators() {
		res, err := c.headBlob(ctx, aggregator, blobID)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return &HeadResult{Exists: false}, nil
}

func (c *Client) headBlob(ctx context.Context, aggregator, blobID string) (*HeadResult, error) {
	attemptCtx := ctx
	if c.cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.cfg.ProbeTimeout)
		defer cancel()
	}

	resp, err := c.http.R().
		SetContext(attemptCtx).
		SetRetryCount(0).
		Head(aggregator + blobsPath + "/" + blobID)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessState() {
		return nil, &statusError{status: resp.StatusCode}
	}

	res := &HeadResult{
		Exists:      true,
		ContentType: resp.GetHeader("Content-Type"),
	}
	if cl := resp.GetHeader("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			res.Size = n
		}
	}
	return res, nil
}
