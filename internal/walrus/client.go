package walrus

import (
	"context"
	"time"

	"github.com/imroc/req/v3"

	"github.com/auditwarp/auditwarp/internal/version"
)

const blobsPath = "/v1/blobs"

// Config carries the endpoint registry and the timing policy of one client.
// The zero values are filled in by DefaultConfig; tests shrink them.
type Config struct {
	Endpoints *Endpoints

	// UploadTimeout bounds each publisher attempt on the simple path.
	UploadTimeout time.Duration
	// DeployTimeout bounds the whole paid upload, across all retries.
	DeployTimeout time.Duration
	// FetchTimeout bounds each aggregator attempt on the read path.
	FetchTimeout time.Duration
	// ProbeTimeout bounds the availability probe and head checks.
	ProbeTimeout time.Duration

	// MaxRetries is the deployment retry budget beyond the first attempt.
	MaxRetries int
	// BackoffBase is the first retry delay; attempt k waits BackoffBase * 2^k.
	BackoffBase time.Duration

	// PropagationPasses is how many full sweeps of the aggregator list the
	// read path makes before giving up.
	PropagationPasses int
	// PropagationDelay is the wait between sweeps.
	PropagationDelay time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Endpoints:         TestnetEndpoints(),
		UploadTimeout:     30 * time.Second,
		DeployTimeout:     60 * time.Second,
		FetchTimeout:      10 * time.Second,
		ProbeTimeout:      5 * time.Second,
		MaxRetries:        3,
		BackoffBase:       2 * time.Second,
		PropagationPasses: 3,
		PropagationDelay:  5 * time.Second,
	}
}

// Client talks to the Walrus network. Construct one per scope and pass it in;
// it holds no per-operation state, so concurrent calls are independent.
type Client struct {
	http *req.Client
	cfg  *Config

	// sleep is the suspension primitive for backoff and propagation waits.
	// Tests swap it to record the schedule without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	httpc := req.C().
		SetUserAgent("AuditWarp/" + version.Version).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	return &Client{
		http:  httpc,
		cfg:   cfg,
		sleep: sleepCtx,
	}
}

// Endpoints exposes the registry this client iterates.
func (c *Client) Endpoints() *Endpoints {
	return c.cfg.Endpoints
}

// SetSleep overrides the wait primitive. Intended for tests.
func (c *Client) SetSleep(fn func(ctx context.Context, d time.Duration) error) {
	c.sleep = fn
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
