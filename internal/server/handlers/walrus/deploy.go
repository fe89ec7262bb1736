package walrus

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auditwarp/auditwarp/internal/server/handlers/api"
	"github.com/auditwarp/auditwarp/internal/walrus"
)

// Deploy is the paid upload orchestration: validate, price, query the ledger
// epoch, hand off to the deployment uploader, then bookkeep. Validation is
// fail-fast and ordered; the uploader is never invoked on invalid input.
func (h *Handler) Deploy(ctx *gin.Context) {
	payload, err := readPayload(ctx)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeWalrusMissingPayload,
			fmt.Errorf("file data required for deployment: %w", err))
		return
	}
	if len(payload) == 0 {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeWalrusMissingPayload,
			errors.New("file data required for deployment"))
		return
	}

	walletAddress := ctx.GetHeader("X-Wallet-Address")
	if walletAddress == "" {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeWalrusMissingWallet,
			errors.New("wallet address required for deployment"))
		return
	}

	if len(payload) > maxDeployBytes {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeWalrusPayloadTooLarge,
			fmt.Errorf("file size %d exceeds the 50MB limit", len(payload)))
		return
	}

	storageEpochs := parseEpochs(ctx.GetHeader("X-Storage-Epochs"))
	cfg := walrus.NewDeploymentConfig(int64(len(payload)), storageEpochs)

	currentEpoch, err := h.epochs.CurrentEpoch(ctx.Request.Context())
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadGateway, api.CodeSuiRPCFailed,
			fmt.Errorf("query current epoch: %w", err))
		return
	}

	meta, err := h.storage.Deploy(ctx.Request.Context(), payload, storageEpochs, walletAddress)
	if err != nil {
		h.abortUploadError(ctx, err)
		return
	}

	h.bookkeep(ctx, meta)

	cost := cfg.EstimatedCost
	if meta.DeploymentCost != nil {
		cost = *meta.DeploymentCost
	}
	ctx.PureJSON(http.StatusOK, &DeployResponse{
		BlobID:          meta.BlobID,
		TransactionHash: meta.TransactionHash,
		Cost:            cost.InexactFloat64(),
		StorageEpochs:   storageEpochs,
		ExpirationEpoch: currentEpoch + uint64(storageEpochs),
		Status:          "confirmed",
	})
}

// bookkeep attaches the deployment metadata to a report row when the caller
// asked for it. The upload already succeeded, so a failing write here is
// logged and swallowed - storage success is authoritative.
func (h *Handler) bookkeep(ctx *gin.Context, meta *walrus.BlobMetadata) {
	reportID := ctx.Query("report_id")
	if reportID == "" {
		return
	}
	id, err := strconv.ParseInt(reportID, 10, 64)
	if err != nil {
		slog.Warn("walrus deploy bookkeeping skipped", "report_id", reportID, "error", err)
		return
	}
	metaJSON, err := meta.MarshalString()
	if err != nil {
		slog.Error("walrus deploy bookkeeping marshal", "report_id", id, "error", err)
		return
	}
	if err := h.reports.AttachWalrusMetadata(id, metaJSON); err != nil {
		slog.Error("walrus deploy bookkeeping failed", "report_id", id, "blobId", meta.BlobID, "error", err)
	}
}

func (h *Handler) abortUploadError(ctx *gin.Context, err error) {
	var ue *walrus.UploadError
	if !errors.As(err, &ue) {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	switch ue.Kind {
	case walrus.KindAllEndpointsFailed:
		api.AbortWithError(ctx, http.StatusServiceUnavailable, api.CodeWalrusAllPublishersFailed,
			errors.New("all Walrus publishers are currently experiencing issues, please try again later"))
	case walrus.KindMaxRetriesExceeded:
		api.AbortWithError(ctx, http.StatusServiceUnavailable, api.CodeWalrusMaxRetriesExceeded,
			errors.New("the Walrus network is under heavy load and retries were exhausted, please try again later"))
	case walrus.KindNetworkUnavailable:
		api.AbortWithError(ctx, http.StatusServiceUnavailable, api.CodeWalrusNetworkUnavailable,
			errors.New("the Walrus network is unreachable, please check connectivity or use fallback storage"))
	case walrus.KindNetworkTimeout:
		api.AbortWithError(ctx, http.StatusServiceUnavailable, api.CodeWalrusNetworkTimeout,
			errors.New("the deployment timed out, the network may be busy, please try again later"))
	case walrus.KindDeploymentFailed:
		api.AbortWithError(ctx, http.StatusBadGateway, api.CodeWalrusDeploymentFailed,
			fmt.Errorf("the deployment endpoint rejected the upload with http %d", ue.HTTPStatus))
	default:
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
	}
}

// readPayload accepts both body forms the clients send: raw bytes, or a
// multipart form with a "file" field.
func readPayload(ctx *gin.Context) ([]byte, error) {
	contentType := ctx.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, err := ctx.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("multipart file field: %w", err)
		}
		fd, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open multipart file: %w", err)
		}
		defer fd.Close()
		return io.ReadAll(fd)
	}
	return io.ReadAll(ctx.Request.Body)
}

func parseEpochs(header string) int {
	n, err := strconv.Atoi(header)
	if err != nil || n < 1 {
		return defaultStorageEpochs
	}
	return n
}
