package walrus

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BlobMetadata is the normalized record produced by every successful upload,
// regardless of which response shape the publisher returned. BlobID and Size
// are always populated. The deployment fields are populated together and only
// when the paid path was used.
type BlobMetadata struct {
	BlobID          string           `json:"blobId"`
	Size            int64            `json:"size"`
	UploadedAt      time.Time        `json:"uploadedAt"`
	ContentType     string           `json:"contentType,omitempty"`
	DeploymentCost  *decimal.Decimal `json:"deploymentCost,omitempty"`
	StorageEpochs   int              `json:"storageEpochs,omitempty"`
	TransactionHash string           `json:"transactionHash,omitempty"`
}

// MarshalString renders the record as JSON for bookkeeping columns.
func (m *BlobMetadata) MarshalString() (string, error) {
	b, err := jsonMarshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// storeResponse is the publisher success body. Exactly one of the two cases
// is set: the network returns newlyCreated for a fresh write and
// alreadyCertified when it deduplicated by content hash.
type storeResponse struct {
	NewlyCreated     *newlyCreated     `json:"newlyCreated"`
	AlreadyCertified *alreadyCertified `json:"alreadyCertified"`
}

type newlyCreated struct {
	BlobObject blobObject `json:"blobObject"`
}

type blobObject struct {
	ID          string `json:"id"`
	StoredEpoch uint64 `json:"storedEpoch"`
	BlobID      string `json:"blobId"`
	Size        int64  `json:"size"`
}

type alreadyCertified struct {
	BlobID   string `json:"blobId"`
	EventSeq int64  `json:"eventSeq"`
	TxDigest string `json:"txDigest,omitempty"`
}

// normalize maps either response case into a BlobMetadata. payloadSize is the
// byte length of what was sent: alreadyCertified carries no fresh size, so the
// original payload length is authoritative there.
func (r *storeResponse) normalize(payloadSize int64, contentType string) (*BlobMetadata, error) {
	switch {
	case r.NewlyCreated != nil:
		obj := r.NewlyCreated.BlobObject
		if obj.BlobID == "" {
			return nil, fmt.Errorf("newlyCreated response missing blobId")
		}
		return &BlobMetadata{
			BlobID:          obj.BlobID,
			Size:            obj.Size,
			UploadedAt:      time.Now().UTC(),
			ContentType:     contentType,
			TransactionHash: obj.ID,
		}, nil
	case r.AlreadyCertified != nil:
		if r.AlreadyCertified.BlobID == "" {
			return nil, fmt.Errorf("alreadyCertified response missing blobId")
		}
		return &BlobMetadata{
			BlobID:          r.AlreadyCertified.BlobID,
			Size:            payloadSize,
			UploadedAt:      time.Now().UTC(),
			ContentType:     contentType,
			TransactionHash: r.AlreadyCertified.TxDigest,
		}, nil
	default:
		return nil, fmt.Errorf("unexpected publisher response: neither newlyCreated nor alreadyCertified")
	}
}

// HeadResult is the outcome of a lightweight existence check against the
// aggregators. Size and ContentType are present only when an aggregator
// answered the probe.
type HeadResult struct {
	Exists      bool   `json:"exists"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}
