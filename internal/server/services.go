package server

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/auditwarp/auditwarp/internal/ipfs"
	"github.com/auditwarp/auditwarp/internal/server/report"
	"github.com/auditwarp/auditwarp/internal/sui"
	"github.com/auditwarp/auditwarp/internal/walrus"
)

// Services are the per-process collaborators handed to the handlers. Each is
// an explicitly constructed object passed down, never a package-level
// singleton, so tests can swap fakes in.
type Services struct {
	Walrus  *walrus.Client
	Sui     *sui.Client
	IPFS    *ipfs.Client
	Reports *report.Store
}

func NewServices(config *Config, db *sqlx.DB) (*Services, error) {
	reports, err := report.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("report store: %w", err)
	}

	wcfg := config.Walrus
	if wcfg == nil {
		wcfg = walrus.DefaultConfig()
	}

	return &Services{
		Walrus:  walrus.NewClient(wcfg),
		Sui:     sui.NewClient(config.suiURL()),
		IPFS:    ipfs.NewClient(&config.IPFS),
		Reports: reports,
	}, nil
}
