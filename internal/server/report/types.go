package report

import (
	"database/sql"
	"time"
)

// AuditReport is one generated audit run. AuditResult and VulnerabilityScore
// come from the client-side generation step; IpfsHash and WalrusMetadata are
// filled in as the document lands on each storage network.
type AuditReport struct {
	ID                 int64           `db:"id" json:"id"`
	UserID             sql.NullInt64   `db:"user_id" json:"userId,omitempty"`
	ContractName       string          `db:"contract_name" json:"contractName"`
	ContractCode       string          `db:"contract_code" json:"contractCode"`
	Blockchain         string          `db:"blockchain" json:"blockchain"`
	AuditResult        sql.NullString  `db:"audit_result" json:"auditResult,omitempty"`
	VulnerabilityScore sql.NullFloat64 `db:"vulnerability_score" json:"vulnerabilityScore,omitempty"`
	IpfsHash           sql.NullString  `db:"ipfs_hash" json:"ipfsHash,omitempty"`
	PdfURL             sql.NullString  `db:"pdf_url" json:"pdfUrl,omitempty"`
	WalrusMetadata     sql.NullString  `db:"walrus_metadata" json:"walrusMetadata,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
}

// NftCertificate records the on-chain certificate minted for a report.
type NftCertificate struct {
	ID            int64          `db:"id" json:"id"`
	AuditReportID int64          `db:"audit_report_id" json:"auditReportId"`
	MintTxHash    sql.NullString `db:"mint_tx_hash" json:"mintTxHash,omitempty"`
	NftObjectID   sql.NullString `db:"nft_object_id" json:"nftObjectId,omitempty"`
	OwnerAddress  string         `db:"owner_address" json:"ownerAddress"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

// BridgeTransaction records a cross-chain payment tied to a report.
type BridgeTransaction struct {
	ID            int64          `db:"id" json:"id"`
	AuditReportID int64          `db:"audit_report_id" json:"auditReportId"`
	SourceChain   string         `db:"source_chain" json:"sourceChain"`
	DestChain     string         `db:"dest_chain" json:"destChain"`
	SourceTxHash  sql.NullString `db:"source_tx_hash" json:"sourceTxHash,omitempty"`
	EthAmount     sql.NullString `db:"eth_amount" json:"ethAmount,omitempty"`
	Status        string         `db:"status" json:"status"`
	VaaID         sql.NullString `db:"vaa_id" json:"vaaId,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     sql.NullTime   `db:"updated_at" json:"updatedAt,omitempty"`
}
