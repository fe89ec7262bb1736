package walrus

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auditwarp/auditwarp/internal/server/handlers/api"
)

// GetBlob proxies a blob read through the aggregator failover + propagation
// loop. Proxying keeps the browser inside our origin, so no aggregator CORS
// policy can block the download.
func (h *Handler) GetBlob(ctx *gin.Context) {
	blobID := ctx.Param("blobId")

	data, contentType, err := h.storage.Fetch(ctx.Request.Context(), blobID)
	if err != nil {
		api.AbortWithError(ctx, http.StatusNotFound, api.CodeWalrusBlobNotFound,
			errors.New("blob not found, it may still be propagating across the network, please try again in a few minutes"))
		return
	}

	if contentType == "" {
		contentType = "application/pdf"
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "audit-report-"+blobID+".pdf"))
	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(http.StatusOK, contentType, data)
}

// HeadBlob answers existence checks with a real probe against the
// aggregators. An unanswered probe means "not found" - a plausible-looking
// identifier is not treated as verified.
func (h *Handler) HeadBlob(ctx *gin.Context) {
	blobID := ctx.Param("blobId")

	res, err := h.storage.Head(ctx.Request.Context(), blobID)
	if err != nil || !res.Exists {
		ctx.Status(http.StatusNotFound)
		return
	}

	if res.ContentType != "" {
		ctx.Header("Content-Type", res.ContentType)
	}
	if res.Size > 0 {
		ctx.Header("Content-Length", fmt.Sprintf("%d", res.Size))
	}
	ctx.Status(http.StatusOK)
}
