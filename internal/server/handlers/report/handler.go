package report

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/auditwarp/auditwarp/internal/server/handlers/api"
	"github.com/auditwarp/auditwarp/internal/server/report"
)

// Handler serves the audit report bookkeeping endpoints.
type Handler struct {
	store *report.Store
}

func New(store *report.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) CreateAuditReport(ctx *gin.Context) {
	var req AuditReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid request body"))
		return
	}
	if req.ContractName == "" || req.ContractCode == "" || req.Blockchain == "" {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("contractName, contractCode and blockchain are required"))
		return
	}

	created, err := h.store.CreateAuditReport(req.toModel())
	if err != nil {
		slog.Error("create audit report", "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to create audit report"))
		return
	}
	ctx.PureJSON(http.StatusCreated, viewAuditReport(created))
}

func (h *Handler) GetAuditReport(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid report id"))
		return
	}

	m, err := h.store.GetAuditReport(id)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeReportNotFound, errors.New("audit report not found"))
			return
		}
		slog.Error("get audit report", "id", id, "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to load audit report"))
		return
	}
	ctx.PureJSON(http.StatusOK, viewAuditReport(m))
}

func (h *Handler) ListAuditReports(ctx *gin.Context) {
	var (
		reports []report.AuditReport
		err     error
	)
	if userID := ctx.Query("userId"); userID != "" {
		uid, perr := strconv.ParseInt(userID, 10, 64)
		if perr != nil {
			api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid userId"))
			return
		}
		reports, err = h.store.ListAuditReportsByUser(uid)
	} else {
		reports, err = h.store.ListAuditReports()
	}
	if err != nil {
		slog.Error("list audit reports", "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to list audit reports"))
		return
	}

	views := make([]*AuditReportView, 0, len(reports))
	for i := range reports {
		views = append(views, viewAuditReport(&reports[i]))
	}
	ctx.PureJSON(http.StatusOK, views)
}

func (h *Handler) UpdateAuditReport(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid report id"))
		return
	}

	var req AuditReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid request body"))
		return
	}

	updated, err := h.store.UpdateAuditReport(id, req.toModel())
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeReportNotFound, errors.New("audit report not found"))
			return
		}
		slog.Error("update audit report", "id", id, "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to update audit report"))
		return
	}
	ctx.PureJSON(http.StatusOK, viewAuditReport(updated))
}

func (h *Handler) CreateNftCertificate(ctx *gin.Context) {
	var req NftCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid request body"))
		return
	}

	created, err := h.store.CreateNftCertificate(&report.NftCertificate{
		AuditReportID: req.AuditReportID,
		MintTxHash:    nullStr(req.MintTxHash),
		NftObjectID:   nullStr(req.NftObjectID),
		OwnerAddress:  req.OwnerAddress,
	})
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeReportNotFound, errors.New("audit report not found"))
			return
		}
		slog.Error("create nft certificate", "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to create nft certificate"))
		return
	}
	ctx.PureJSON(http.StatusCreated, viewNftCertificate(created))
}

func (h *Handler) ListNftCertificates(ctx *gin.Context) {
	reportID, err := strconv.ParseInt(ctx.Query("reportId"), 10, 64)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("reportId query parameter is required"))
		return
	}

	certs, err := h.store.ListNftCertificatesByReport(reportID)
	if err != nil {
		slog.Error("list nft certificates", "reportId", reportID, "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to list nft certificates"))
		return
	}

	views := make([]*NftCertificateView, 0, len(certs))
	for i := range certs {
		views = append(views, viewNftCertificate(&certs[i]))
	}
	ctx.PureJSON(http.StatusOK, views)
}

func (h *Handler) CreateBridgeTransaction(ctx *gin.Context) {
	var req BridgeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid request body"))
		return
	}

	created, err := h.store.CreateBridgeTransaction(&report.BridgeTransaction{
		AuditReportID: req.AuditReportID,
		SourceChain:   req.SourceChain,
		DestChain:     req.DestChain,
		SourceTxHash:  nullStr(req.SourceTxHash),
		EthAmount:     nullStr(req.EthAmount),
		Status:        req.Status,
		VaaID:         nullStr(req.VaaID),
	})
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeReportNotFound, errors.New("audit report not found"))
			return
		}
		slog.Error("create bridge transaction", "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to create bridge transaction"))
		return
	}
	ctx.PureJSON(http.StatusCreated, viewBridgeTransaction(created))
}

func (h *Handler) ListBridgeTransactions(ctx *gin.Context) {
	reportID, err := strconv.ParseInt(ctx.Query("reportId"), 10, 64)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("reportId query parameter is required"))
		return
	}

	txs, err := h.store.ListBridgeTransactionsByReport(reportID)
	if err != nil {
		slog.Error("list bridge transactions", "reportId", reportID, "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to list bridge transactions"))
		return
	}

	views := make([]*BridgeTransactionView, 0, len(txs))
	for i := range txs {
		views = append(views, viewBridgeTransaction(&txs[i]))
	}
	ctx.PureJSON(http.StatusOK, views)
}

func (h *Handler) UpdateBridgeTransaction(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid transaction id"))
		return
	}

	var req BridgeTransactionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, errors.New("invalid request body"))
		return
	}

	var srcTx, vaa string
	if req.SourceTxHash != nil {
		srcTx = *req.SourceTxHash
	}
	if req.VaaID != nil {
		vaa = *req.VaaID
	}
	updated, err := h.store.UpdateBridgeTransactionStatus(id, req.Status, srcTx, vaa)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeReportNotFound, errors.New("bridge transaction not found"))
			return
		}
		slog.Error("update bridge transaction", "id", id, "error", err)
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, errors.New("failed to update bridge transaction"))
		return
	}
	ctx.PureJSON(http.StatusOK, viewBridgeTransaction(updated))
}
