// Package ipfs pins generated documents to IPFS through Pinata, the second
// storage leg next to Walrus. Reports keep the returned CID.
package ipfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imroc/req/v3"

	"github.com/auditwarp/auditwarp/internal/version"
)

const (
	pinFileURL     = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	defaultGateway = "https://ipfs.io/ipfs/"
)

var ErrNoCredentials = errors.New("ipfs: pinata credentials missing")

// Config carries Pinata auth. JWT wins over the key/secret pair when both are
// set, matching Pinata's own precedence.
type Config struct {
	JWT       string
	APIKey    string
	APISecret string
	Gateway   string
}

func (c *Config) Configured() bool {
	return c.JWT != "" || (c.APIKey != "" && c.APISecret != "")
}

type Client struct {
	http   *req.Client
	cfg    *Config
	pinURL string
}

func NewClient(cfg *Config) *Client {
	return &Client{
		http: req.C().
			SetUserAgent("AuditWarp/" + version.Version).
			SetTimeout(60 * time.Second),
		cfg:    cfg,
		pinURL: pinFileURL,
	}
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Pin uploads payload under fileName and returns the content identifier.
func (c *Client) Pin(ctx context.Context, payload []byte, fileName string) (string, error) {
	if !c.cfg.Configured() {
		return "", ErrNoCredentials
	}

	metadata := fmt.Sprintf(`{"name":%q,"keyvalues":{"service":"AuditWarp","timestamp":"%d"}}`,
		fileName, time.Now().UnixMilli())

	r := c.http.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetFileReader("file", fileName, bytes.NewReader(payload)).
		SetFormData(map[string]string{"pinataMetadata": metadata})

	if c.cfg.JWT != "" {
		r.SetBearerAuthToken(c.cfg.JWT)
	} else {
		r.SetHeader("pinata_api_key", c.cfg.APIKey)
		r.SetHeader("pinata_secret_api_key", c.cfg.APISecret)
	}

	var out pinResponse
	resp, err := r.SetSuccessResult(&out).Post(c.pinURL)
	if err != nil {
		return "", fmt.Errorf("pinata pin: %w", err)
	}
	if !resp.IsSuccessState() {
		return "", fmt.Errorf("pinata pin: http %d", resp.StatusCode)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("pinata pin: response missing IpfsHash")
	}
	return out.IpfsHash, nil
}

// GatewayURL returns a public gateway URL for a pinned CID.
func (c *Client) GatewayURL(cid string) string {
	gw := c.cfg.Gateway
	if gw == "" {
		gw = defaultGateway
	}
	return gw + cid
}
