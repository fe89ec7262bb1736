package walrus

import (
	"context"

	"github.com/auditwarp/auditwarp/internal/server/report"
	"github.com/auditwarp/auditwarp/internal/walrus"
)

// Storage is the slice of the walrus client the handlers use. Narrowed to an
// interface so tests can drive the orchestration with fakes.
type Storage interface {
	Upload(ctx context.Context, payload []byte, contentType string) (*walrus.BlobMetadata, error)
	Deploy(ctx context.Context, payload []byte, storageEpochs int, walletAddress string) (*walrus.BlobMetadata, error)
	Fetch(ctx context.Context, blobID string) ([]byte, string, error)
	Head(ctx context.Context, blobID string) (*walrus.HeadResult, error)
	CheckStatus(ctx context.Context) walrus.Status
}

// EpochSource yields the ledger's current epoch. Queried at call time, never
// cached: the epoch advances independently of this system.
type EpochSource interface {
	CurrentEpoch(ctx context.Context) (uint64, error)
}

// ReportSink is the post-upload bookkeeping target. Failures here never roll
// back a completed upload.
type ReportSink interface {
	AttachWalrusMetadata(id int64, metadataJSON string) error
}

type Handler struct {
	storage Storage
	epochs  EpochSource
	reports ReportSink
}

func New(storage Storage, epochs EpochSource, reports ReportSink) *Handler {
	return &Handler{
		storage: storage,
		epochs:  epochs,
		reports: reports,
	}
}

var _ ReportSink = (*report.Store)(nil)
