// Package sui holds a minimal JSON-RPC client for the Sui fullnode. The
// gateway only needs the current network epoch, which moves independently of
// this system and must therefore be queried at call time, never cached.
package sui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/imroc/req/v3"

	"github.com/auditwarp/auditwarp/internal/version"
)

const DefaultTestnetURL = "https://fullnode.testnet.sui.io:443"

type Client struct {
	http *req.Client
	url  string
}

func NewClient(fullnodeURL string) *Client {
	if fullnodeURL == "" {
		fullnodeURL = DefaultTestnetURL
	}
	return &Client{
		http: req.C().
			SetUserAgent("AuditWarp/" + version.Version).
			SetTimeout(10 * time.Second),
		url: fullnodeURL,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type systemStateResponse struct {
	Result *struct {
		Epoch string `json:"epoch"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

// CurrentEpoch queries suix_getLatestSuiSystemState and returns the epoch the
// ledger is currently in.
func (c *Client) CurrentEpoch(ctx context.Context) (uint64, error) {
	var out systemStateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&rpcRequest{
			JSONRPC: "2.0",
			ID:      1,
			Method:  "suix_getLatestSuiSystemState",
			Params:  []any{},
		}).
		SetSuccessResult(&out).
		Post(c.url)
	if err != nil {
		return 0, fmt.Errorf("sui rpc: %w", err)
	}
	if !resp.IsSuccessState() {
		return 0, fmt.Errorf("sui rpc: http %d", resp.StatusCode)
	}
	if out.Error != nil {
		return 0, fmt.Errorf("sui rpc: %d %s", out.Error.Code, out.Error.Message)
	}
	if out.Result == nil || out.Result.Epoch == "" {
		return 0, fmt.Errorf("sui rpc: system state missing epoch")
	}

	epoch, err := strconv.ParseUint(out.Result.Epoch, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sui rpc: parse epoch %q: %w", out.Result.Epoch, err)
	}
	return epoch, nil
}
