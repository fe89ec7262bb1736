package server

import (
	"github.com/auditwarp/auditwarp/internal/ipfs"
	"github.com/auditwarp/auditwarp/internal/sui"
	"github.com/auditwarp/auditwarp/internal/walrus"
)

const DefaultAddr = "127.0.0.1:8080"

type Config struct {
	HTTP   HTTPConfig
	DBPath string

	// SuiRPCURL is the fullnode queried for the current network epoch.
	SuiRPCURL string

	// DeployRateLimit bounds the paid deployment endpoint, e.g. "10-M".
	DeployRateLimit string

	// Walrus overrides the client defaults when set; nil means testnet
	// endpoints with the reference timing policy.
	Walrus *walrus.Config

	IPFS ipfs.Config
}

type HTTPConfig struct {
	Addr     string
	CertFile string
	KeyFile  string
}

func (c *Config) suiURL() string {
	if c.SuiRPCURL == "" {
		return sui.DefaultTestnetURL
	}
	return c.SuiRPCURL
}
