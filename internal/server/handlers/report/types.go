package report

import (
	"database/sql"
	"time"

	"github.com/auditwarp/auditwarp/internal/server/report"
)

type AuditReportRequest struct {
	UserID             *int64   `json:"userId"`
	ContractName       string   `json:"contractName"`
	ContractCode       string   `json:"contractCode"`
	Blockchain         string   `json:"blockchain"`
	AuditResult        *string  `json:"auditResult"`
	VulnerabilityScore *float64 `json:"vulnerabilityScore"`
	IpfsHash           *string  `json:"ipfsHash"`
	PdfURL             *string  `json:"pdfUrl"`
	WalrusMetadata     *string  `json:"walrusMetadata"`
}

type AuditReportView struct {
	ID                 int64    `json:"id"`
	UserID             *int64   `json:"userId,omitempty"`
	ContractName       string   `json:"contractName"`
	ContractCode       string   `json:"contractCode"`
	Blockchain         string   `json:"blockchain"`
	AuditResult        *string  `json:"auditResult,omitempty"`
	VulnerabilityScore *float64 `json:"vulnerabilityScore,omitempty"`
	IpfsHash           *string  `json:"ipfsHash,omitempty"`
	PdfURL             *string  `json:"pdfUrl,omitempty"`
	WalrusMetadata     *string  `json:"walrusMetadata,omitempty"`
	CreatedAt          string   `json:"createdAt"`
}

type NftCertificateRequest struct {
	AuditReportID int64   `json:"auditReportId" binding:"required"`
	MintTxHash    *string `json:"mintTxHash"`
	NftObjectID   *string `json:"nftObjectId"`
	OwnerAddress  string  `json:"ownerAddress" binding:"required"`
}

type NftCertificateView struct {
	ID            int64   `json:"id"`
	AuditReportID int64   `json:"auditReportId"`
	MintTxHash    *string `json:"mintTxHash,omitempty"`
	NftObjectID   *string `json:"nftObjectId,omitempty"`
	OwnerAddress  string  `json:"ownerAddress"`
	CreatedAt     string  `json:"createdAt"`
}

type BridgeTransactionRequest struct {
	AuditReportID int64   `json:"auditReportId" binding:"required"`
	SourceChain   string  `json:"sourceChain" binding:"required"`
	DestChain     string  `json:"destChain" binding:"required"`
	SourceTxHash  *string `json:"sourceTxHash"`
	EthAmount     *string `json:"ethAmount"`
	Status        string  `json:"status"`
	VaaID         *string `json:"vaaId"`
}

type BridgeTransactionUpdateRequest struct {
	Status       string  `json:"status" binding:"required"`
	SourceTxHash *string `json:"sourceTxHash"`
	VaaID        *string `json:"vaaId"`
}

type BridgeTransactionView struct {
	ID            int64   `json:"id"`
	AuditReportID int64   `json:"auditReportId"`
	SourceChain   string  `json:"sourceChain"`
	DestChain     string  `json:"destChain"`
	SourceTxHash  *string `json:"sourceTxHash,omitempty"`
	EthAmount     *string `json:"ethAmount,omitempty"`
	Status        string  `json:"status"`
	VaaID         *string `json:"vaaId,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     *string `json:"updatedAt,omitempty"`
}

func nullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func strPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func timePtr(n sql.NullTime) *string {
	if !n.Valid {
		return nil
	}
	s := n.Time.UTC().Format(time.RFC3339)
	return &s
}

func (r *AuditReportRequest) toModel() *report.AuditReport {
	return &report.AuditReport{
		UserID:             nullInt(r.UserID),
		ContractName:       r.ContractName,
		ContractCode:       r.ContractCode,
		Blockchain:         r.Blockchain,
		AuditResult:        nullStr(r.AuditResult),
		VulnerabilityScore: nullFloat(r.VulnerabilityScore),
		IpfsHash:           nullStr(r.IpfsHash),
		PdfURL:             nullStr(r.PdfURL),
		WalrusMetadata:     nullStr(r.WalrusMetadata),
	}
}

func viewAuditReport(m *report.AuditReport) *AuditReportView {
	return &AuditReportView{
		ID:                 m.ID,
		UserID:             intPtr(m.UserID),
		ContractName:       m.ContractName,
		ContractCode:       m.ContractCode,
		Blockchain:         m.Blockchain,
		AuditResult:        strPtr(m.AuditResult),
		VulnerabilityScore: floatPtr(m.VulnerabilityScore),
		IpfsHash:           strPtr(m.IpfsHash),
		PdfURL:             strPtr(m.PdfURL),
		WalrusMetadata:     strPtr(m.WalrusMetadata),
		CreatedAt:          m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func viewNftCertificate(m *report.NftCertificate) *NftCertificateView {
	return &NftCertificateView{
		ID:            m.ID,
		AuditReportID: m.AuditReportID,
		MintTxHash:    strPtr(m.MintTxHash),
		NftObjectID:   strPtr(m.NftObjectID),
		OwnerAddress:  m.OwnerAddress,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func viewBridgeTransaction(m *report.BridgeTransaction) *BridgeTransactionView {
	return &BridgeTransactionView{
		ID:            m.ID,
		AuditReportID: m.AuditReportID,
		SourceChain:   m.SourceChain,
		DestChain:     m.DestChain,
		SourceTxHash:  strPtr(m.SourceTxHash),
		EthAmount:     strPtr(m.EthAmount),
		Status:        m.Status,
		VaaID:         strPtr(m.VaaID),
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     timePtr(m.UpdatedAt),
	}
}
