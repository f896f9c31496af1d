package gecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"coinScope/internal/model"
)

// GetCoinDetail fetches the detail record for id. 404 responses match
// ErrNotFound; other failures are *NetworkError or ErrMalformedResponse.
func (c *Client) GetCoinDetail(ctx context.Context, id model.AssetID) (*model.CoinDetail, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, fmt.Errorf("get coin detail: asset id is required")
	}

	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")

	body, err := c.get(ctx, "/coins/"+url.PathEscape(id.String()), query)
	if err != nil {
		return nil, fmt.Errorf("get coin detail %s: %w", id, err)
	}

	var detail model.CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("get coin detail %s: %w: %v", id, ErrMalformedResponse, err)
	}
	if detail.ID == "" {
		return nil, fmt.Errorf("get coin detail %s: %w: missing id", id, ErrMalformedResponse)
	}
	detail.Platforms = normalizePlatforms(detail.Platforms)

	return &detail, nil
}

// normalizePlatforms drops empty entries and checksums EVM contract addresses.
// Non-EVM addresses (e.g. Solana mints) are kept verbatim.
func normalizePlatforms(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for chain, address := range in {
		chain = strings.TrimSpace(chain)
		address = strings.TrimSpace(address)
		if chain == "" || address == "" {
			continue
		}
		if common.IsHexAddress(address) {
			address = common.HexToAddress(address).Hex()
		}
		out[chain] = address
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
