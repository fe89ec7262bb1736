package walrus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auditwarp/auditwarp/internal/ipfs"
	"github.com/auditwarp/auditwarp/internal/server/handlers/api"
)

// Pinner is the IPFS leg; reports keep both a Walrus blob id and a CID.
type Pinner interface {
	Pin(ctx context.Context, payload []byte, fileName string) (string, error)
	GatewayURL(cid string) string
}

type IPFSHandler struct {
	pinner Pinner
}

func NewIPFS(pinner Pinner) *IPFSHandler {
	return &IPFSHandler{pinner: pinner}
}

// Pin uploads a multipart "file" field to the pinning service and returns
// the CID plus a gateway URL.
func (h *IPFSHandler) Pin(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("multipart file field: %w", err))
		return
	}

	fd, err := file.Open()
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("open multipart file: %w", err))
		return
	}
	defer fd.Close()

	payload, err := io.ReadAll(fd)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("read multipart file: %w", err))
		return
	}

	cid, err := h.pinner.Pin(ctx.Request.Context(), payload, file.Filename)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ipfs.ErrNoCredentials) {
			status = http.StatusServiceUnavailable
		}
		api.AbortWithError(ctx, status, api.CodeIpfsPinFailed, err)
		return
	}

	ctx.PureJSON(http.StatusOK, &PinResponse{
		IpfsHash: cid,
		URL:      h.pinner.GatewayURL(cid),
	})
}
