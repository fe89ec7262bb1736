package report

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("report: not found")

const schema = `
CREATE TABLE IF NOT EXISTS audit_reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	contract_name TEXT NOT NULL,
	contract_code TEXT NOT NULL,
	blockchain TEXT NOT NULL,
	audit_result TEXT,
	vulnerability_score REAL,
	ipfs_hash TEXT,
	pdf_url TEXT,
	walrus_metadata TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS nft_certificates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	audit_report_id INTEGER NOT NULL REFERENCES audit_reports(id),
	mint_tx_hash TEXT,
	nft_object_id TEXT,
	owner_address TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS bridge_transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	audit_report_id INTEGER NOT NULL REFERENCES audit_reports(id),
	source_chain TEXT NOT NULL,
	dest_chain TEXT NOT NULL,
	source_tx_hash TEXT,
	eth_amount TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	vaa_id TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_nft_certificates_report ON nft_certificates(audit_report_id);
CREATE INDEX IF NOT EXISTS idx_bridge_transactions_report ON bridge_transactions(audit_report_id);
`

// Store persists audit reports and their satellites over sqlite.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create report schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) CreateAuditReport(r *AuditReport) (*AuditReport, error) {
	res, err := s.db.NamedExec(`
		INSERT INTO audit_reports
			(user_id, contract_name, contract_code, blockchain, audit_result,
			 vulnerability_score, ipfs_hash, pdf_url, walrus_metadata)
		VALUES
			(:user_id, :contract_name, :contract_code, :blockchain, :audit_result,
			 :vulnerability_score, :ipfs_hash, :pdf_url, :walrus_metadata)`, r)
	if err != nil {
		return nil, fmt.Errorf("insert audit report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetAuditReport(id)
}

func (s *Store) GetAuditReport(id int64) (*AuditReport, error) {
	var r AuditReport
	err := s.db.Get(&r, `SELECT * FROM audit_reports WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get audit report: %w", err)
	}
	return &r, nil
}

func (s *Store) ListAuditReports() ([]AuditReport, error) {
	reports := []AuditReport{}
	if err := s.db.Select(&reports, `SELECT * FROM audit_reports ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list audit reports: %w", err)
	}
	return reports, nil
}

func (s *Store) ListAuditReportsByUser(userID int64) ([]AuditReport, error) {
	reports := []AuditReport{}
	err := s.db.Select(&reports,
		`SELECT * FROM audit_reports WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list audit reports by user: %w", err)
	}
	return reports, nil
}

// UpdateAuditReport applies the set fields of upd to an existing row.
func (s *Store) UpdateAuditReport(id int64, upd *AuditReport) (*AuditReport, error) {
	cur, err := s.GetAuditReport(id)
	if err != nil {
		return nil, err
	}

	if upd.ContractName != "" {
		cur.ContractName = upd.ContractName
	}
	if upd.ContractCode != "" {
		cur.ContractCode = upd.ContractCode
	}
	if upd.Blockchain != "" {
		cur.Blockchain = upd.Blockchain
	}
	if upd.AuditResult.Valid {
		cur.AuditResult = upd.AuditResult
	}
	if upd.VulnerabilityScore.Valid {
		cur.VulnerabilityScore = upd.VulnerabilityScore
	}
	if upd.IpfsHash.Valid {
		cur.IpfsHash = upd.IpfsHash
	}
	if upd.PdfURL.Valid {
		cur.PdfURL = upd.PdfURL
	}
	if upd.WalrusMetadata.Valid {
		cur.WalrusMetadata = upd.WalrusMetadata
	}

	_, err = s.db.NamedExec(`
		UPDATE audit_reports SET
			contract_name = :contract_name,
			contract_code = :contract_code,
			blockchain = :blockchain,
			audit_result = :audit_result,
			vulnerability_score = :vulnerability_score,
			ipfs_hash = :ipfs_hash,
			pdf_url = :pdf_url,
			walrus_metadata = :walrus_metadata
		WHERE id = :id`, cur)
	if err != nil {
		return nil, fmt.Errorf("update audit report: %w", err)
	}
	return cur, nil
}

// AttachWalrusMetadata is the post-upload bookkeeping write. Callers treat a
// failure here as non-fatal: the network upload already succeeded and is
// authoritative.
func (s *Store) AttachWalrusMetadata(id int64, metadataJSON string) error {
	res, err := s.db.Exec(
		`UPDATE audit_reports SET walrus_metadata = ? WHERE id = ?`, metadataJSON, id)
	if err != nil {
		return fmt.Errorf("attach walrus metadata: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateNftCertificate(c *NftCertificate) (*NftCertificate, error) {
	if _, err := s.GetAuditReport(c.AuditReportID); err != nil {
		return nil, err
	}
	res, err := s.db.NamedExec(`
		INSERT INTO nft_certificates (audit_report_id, mint_tx_hash, nft_object_id, owner_address)
		VALUES (:audit_report_id, :mint_tx_hash, :nft_object_id, :owner_address)`, c)
	if err != nil {
		return nil, fmt.Errorf("insert nft certificate: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var out NftCertificate
	if err := s.db.Get(&out, `SELECT * FROM nft_certificates WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListNftCertificatesByReport(reportID int64) ([]NftCertificate, error) {
	certs := []NftCertificate{}
	err := s.db.Select(&certs,
		`SELECT * FROM nft_certificates WHERE audit_report_id = ? ORDER BY created_at DESC`, reportID)
	if err != nil {
		return nil, fmt.Errorf("list nft certificates: %w", err)
	}
	return certs, nil
}

func (s *Store) CreateBridgeTransaction(t *BridgeTransaction) (*BridgeTransaction, error) {
	if _, err := s.GetAuditReport(t.AuditReportID); err != nil {
		return nil, err
	}
	if t.Status == "" {
		t.Status = "pending"
	}
	res, err := s.db.NamedExec(`
		INSERT INTO bridge_transactions
			(audit_report_id, source_chain, dest_chain, source_tx_hash, eth_amount, status, vaa_id)
		VALUES
			(:audit_report_id, :source_chain, :dest_chain, :source_tx_hash, :eth_amount, :status, :vaa_id)`, t)
	if err != nil {
		return nil, fmt.Errorf("insert bridge transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var out BridgeTransaction
	if err := s.db.Get(&out, `SELECT * FROM bridge_transactions WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListBridgeTransactionsByReport(reportID int64) ([]BridgeTransaction, error) {
	txs := []BridgeTransaction{}
	err := s.db.Select(&txs,
		`SELECT * FROM bridge_transactions WHERE audit_report_id = ? ORDER BY created_at DESC`, reportID)
	if err != nil {
		return nil, fmt.Errorf("list bridge transactions: %w", err)
	}
	return txs, nil
}

// UpdateBridgeTransactionStatus moves a bridge transaction through its
// lifecycle and stamps updated_at.
func (s *Store) UpdateBridgeTransactionStatus(id int64, status, sourceTxHash, vaaID string) (*BridgeTransaction, error) {
	res, err := s.db.Exec(`
		UPDATE bridge_transactions SET
			status = ?,
			source_tx_hash = COALESCE(NULLIF(?, ''), source_tx_hash),
			vaa_id = COALESCE(NULLIF(?, ''), vaa_id),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, status, sourceTxHash, vaaID, id)
	if err != nil {
		return nil, fmt.Errorf("update bridge transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	var out BridgeTransaction
	if err := s.db.Get(&out, `SELECT * FROM bridge_transactions WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &out, nil
}
