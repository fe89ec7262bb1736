package walrus

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auditwarp/auditwarp/internal/server/handlers/api"
)

// Upload is the best-effort proxy: the payload is pushed through the
// publisher failover list and the normalized metadata comes back. No payment,
// no epoch accounting.
func (h *Handler) Upload(ctx *gin.Context) {
	payload, err := readPayload(ctx)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeWalrusMissingPayload,
			fmt.Errorf("file data required: %w", err))
		return
	}
	if len(payload) == 0 {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeWalrusMissingPayload,
			errors.New("file data required"))
		return
	}

	contentType := ctx.GetHeader("Content-Type")
	meta, err := h.storage.Upload(ctx.Request.Context(), payload, contentType)
	if err != nil {
		h.abortUploadError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, meta)
}
