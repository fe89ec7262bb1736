package walrus

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// Deploy stores payload with a purchased storage duration. Unlike Upload it
// pins a single canonical publisher: failing over mid-payment could register
// and charge the blob twice. Transient signals (503 from network load,
// transport errors, timeouts) are retried with exponential backoff
// (BackoffBase * 2^attempt) up to MaxRetries; any other error status fails
// immediately. The whole operation runs under the DeployTimeout deadline.
func (c *Client) Deploy(ctx context.Context, payload []byte, storageEpochs int, walletAddress string) (*BlobMetadata, error) {
	if c.cfg.DeployTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.DeployTimeout)
		defer cancel()
	}

	endpoint := c.cfg.Endpoints.Canonical()
	query := map[string]string{
		"epochs":         strconv.Itoa(storageEpochs),
		"send_object_to": walletAddress,
	}

	var lastKind ErrorKind
	var lastErr error
	for attempt := 0; ; attempt++ {
		meta, err := c.putBlob(ctx, endpoint, payload, "application/octet-stream", query)
		if err == nil {
			cost := EstimateDeploymentCost(int64(len(payload)), storageEpochs)
			meta.DeploymentCost = &cost
			meta.StorageEpochs = storageEpochs
			slog.Info("walrus deploy ok",
				"blobId", meta.BlobID,
				"epochs", storageEpochs,
				"cost", cost.String(),
				"attempt", attempt+1)
			return meta, nil
		}

		var se *statusError
		switch {
		case errors.As(err, &se) && se.status == 503:
			// Network under load; the documented transient signal.
			lastKind = KindMaxRetriesExceeded
			lastErr = err
		case errors.As(err, &se):
			return nil, &UploadError{
				Kind:       KindDeploymentFailed,
				HTTPStatus: se.status,
				Attempts:   attempt + 1,
				Err:        err,
			}
		case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
			lastKind = KindNetworkTimeout
			lastErr = err
		default:
			lastKind = KindNetworkUnavailable
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, &UploadError{Kind: KindNetworkTimeout, Attempts: attempt + 1, Err: lastErr}
		}
		if attempt >= c.cfg.MaxRetries {
			return nil, &UploadError{Kind: lastKind, Attempts: attempt + 1, Err: lastErr}
		}

		delay := c.cfg.BackoffBase * time.Duration(1<<attempt)
		slog.Warn("walrus deploy transient failure, backing off",
			"endpoint", endpoint,
			"attempt", attempt+1,
			"delay", delay,
			"error", err)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, &UploadError{Kind: KindNetworkTimeout, Attempts: attempt + 1, Err: err}
		}
	}
}
