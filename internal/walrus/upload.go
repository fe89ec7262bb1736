package walrus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Upload stores payload on the Walrus network using the best-effort path:
// publishers are tried strictly in registry order, each with its own timeout,
// and the first success wins. A failing publisher is skipped without delay.
// When every publisher has been tried once, the upload fails with
// KindAllEndpointsFailed.
func (c *Client) Upload(ctx context.Context, payload []byte, contentType string) (*BlobMetadata, error) {
	publishers := c.cfg.Endpoints.Publishers()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var lastErr error
	for i, publisher := range publishers {
		slog.Debug("walrus upload attempt",
			"publisher", publisher,
			"attempt", fmt.Sprintf("%d/%d", i+1, len(publishers)),
			"size", humanize.Bytes(uint64(len(payload))))

		meta, err := c.putBlob(ctx, publisher, payload, contentType, nil)
		if err == nil {
			slog.Info("walrus upload ok", "publisher", publisher, "blobId", meta.BlobID)
			return meta, nil
		}
		lastErr = err
		slog.Warn("walrus publisher failed", "publisher", publisher, "error", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, &UploadError{
		Kind:     KindAllEndpointsFailed,
		Attempts: len(publishers),
		Err:      lastErr,
	}
}

// putBlob performs one PUT /v1/blobs against a single publisher and
// normalizes the response. extraQuery carries the deployment parameters on
// the paid path; nil on the simple path.
func (c *Client) putBlob(ctx context.Context, publisher string, payload []byte, contentType string, extraQuery map[string]string) (*BlobMetadata, error) {
	attemptCtx := ctx
	if c.cfg.UploadTimeout > 0 && extraQuery == nil {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.cfg.UploadTimeout)
		defer cancel()
	}

	r := c.http.R().
		SetContext(attemptCtx).
		SetRetryCount(0).
		SetContentType(contentType).
		SetBodyBytes(payload)
	for k, v := range extraQuery {
		r.SetQueryParam(k, v)
	}

	resp, err := r.Put(publisher + blobsPath)
	if err != nil {
		return nil, fmt.Errorf("put blob: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, &statusError{status: resp.StatusCode}
	}

	var sr storeResponse
	if err := jsonUnmarshal(resp.Bytes(), &sr); err != nil {
		return nil, fmt.Errorf("decode publisher response: %w", err)
	}
	return sr.normalize(int64(len(payload)), contentType)
}
