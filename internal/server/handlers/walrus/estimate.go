package walrus

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auditwarp/auditwarp/internal/server/handlers/api"
	"github.com/auditwarp/auditwarp/internal/walrus"
)

// EstimateDeployment prices a prospective deployment without touching the
// storage network. The cost function is pure; only the current epoch needs a
// ledger round trip.
func (h *Handler) EstimateDeployment(ctx *gin.Context) {
	var req EstimateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("invalid file size: %w", err))
		return
	}
	if req.FileSizeBytes <= 0 {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			errors.New("invalid file size"))
		return
	}
	if req.StorageEpochs < 1 {
		req.StorageEpochs = defaultStorageEpochs
	}

	currentEpoch, err := h.epochs.CurrentEpoch(ctx.Request.Context())
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadGateway, api.CodeSuiRPCFailed,
			fmt.Errorf("query current epoch: %w", err))
		return
	}

	total := walrus.EstimateDeploymentCost(req.FileSizeBytes, req.StorageEpochs)
	storage := walrus.StorageCost(req.FileSizeBytes, req.StorageEpochs)

	ctx.PureJSON(http.StatusOK, &EstimateResponse{
		EstimatedCost: total.InexactFloat64(),
		Breakdown: EstimateBreakdown{
			StorageCost: storage.InexactFloat64(),
			GasCost:     walrus.GasCost().InexactFloat64(),
			TotalCost:   total.InexactFloat64(),
		},
		Epochs: EstimateEpochs{
			Storage:    req.StorageEpochs,
			Current:    currentEpoch,
			Expiration: currentEpoch + uint64(req.StorageEpochs),
		},
	})
}
