package walrus

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeploymentStatus reports whether a deployed blob is visible on the network
// yet. "pending" is not an error: propagation takes time after a successful
// write.
func (h *Handler) DeploymentStatus(ctx *gin.Context) {
	blobID := ctx.Param("blobId")

	res, err := h.storage.Head(ctx.Request.Context(), blobID)
	if err != nil {
		res = nil
	}

	currentEpoch, epochErr := h.epochs.CurrentEpoch(ctx.Request.Context())
	if epochErr != nil {
		// The availability answer is still useful without the epoch.
		slog.Warn("deployment status epoch query failed", "error", epochErr)
		currentEpoch = 0
	}

	if res != nil && res.Exists {
		ctx.PureJSON(http.StatusOK, &DeploymentStatusResponse{
			Status:       "confirmed",
			BlobID:       blobID,
			Available:    true,
			CurrentEpoch: currentEpoch,
			Size:         res.Size,
			ContentType:  res.ContentType,
		})
		return
	}

	ctx.PureJSON(http.StatusOK, &DeploymentStatusResponse{
		Status:       "pending",
		BlobID:       blobID,
		Available:    false,
		CurrentEpoch: currentEpoch,
		Message:      "blob may still be propagating across the network",
	})
}

// NetworkStatus exposes the availability probe for the UI poller.
func (h *Handler) NetworkStatus(ctx *gin.Context) {
	status := h.storage.CheckStatus(ctx.Request.Context())
	ctx.PureJSON(http.StatusOK, &NetworkStatusResponse{
		Status: string(status),
	})
}
