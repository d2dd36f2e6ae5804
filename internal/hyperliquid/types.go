package hyperliquid

import (
	"encoding/json"
	"fmt"
)

// infoRequest is the request envelope for the venue's unified info endpoint.
// Every query goes to POST /info with a type discriminator.
type infoRequest struct {
	Type string `json:"type"`
	User string `json:"user,omitempty"`
	Oid  string `json:"oid,omitempty"`
}

const (
	infoTypeSpotState   = "spotClearinghouseState"
	infoTypeSpotMeta    = "spotMetaAndAssetCtxs"
	infoTypeOpenOrders  = "openOrders"
	infoTypeOrderStatus = "orderStatus"
)

// SpotBalance is one row of a user's spot clearinghouse state. Quantities
// arrive as decimal strings and are parsed upstream.
type SpotBalance struct {
	Coin  string `json:"coin"`
	Total string `json:"total"`
	Hold  string `json:"hold"`
}

type spotClearinghouseState struct {
	Balances []SpotBalance `json:"balances"`
}

// SpotToken is a token listed in the venue's spot metadata universe.
type SpotToken struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// SpotMarket is a tradable spot pair. Tokens holds the token indices of the
// base and quote legs. Name is the market identifier (e.g. "@107" or "PURR/USDC").
type SpotMarket struct {
	Name   string `json:"name"`
	Tokens []int  `json:"tokens"`
}

// SpotMeta is the static half of the metadata snapshot.
type SpotMeta struct {
	Tokens   []SpotToken  `json:"tokens"`
	Universe []SpotMarket `json:"universe"`
}

// AssetCtx is the per-market dynamic half. MidPx is absent for markets with
// no current mid.
type AssetCtx struct {
	Coin  string  `json:"coin"`
	MidPx *string `json:"midPx"`
}

// SpotMetaAndAssetCtxs is the combined metadata snapshot. The venue encodes
// it as a two element JSON array, metadata first, contexts second.
type SpotMetaAndAssetCtxs struct {
	Meta SpotMeta
	Ctxs []AssetCtx
}

func (s *SpotMetaAndAssetCtxs) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("meta snapshot: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("meta snapshot: expected 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &s.Meta); err != nil {
		return fmt.Errorf("meta snapshot universe: %w", err)
	}
	if err := json.Unmarshal(parts[1], &s.Ctxs); err != nil {
		return fmt.Errorf("meta snapshot contexts: %w", err)
	}
	return nil
}

// OpenOrder is one resting order as reported by the venue.
type OpenOrder struct {
	Coin      string `json:"coin"`
	Oid       int64  `json:"oid"`
	Side      string `json:"side"`
	LimitPx   string `json:"limitPx"`
	Sz        string `json:"sz"`
	Timestamp int64  `json:"timestamp"`
	Cloid     string `json:"cloid,omitempty"`
}

// orderStatusResponse is the reply to an orderStatus query. Status is
// "order" when found and "unknownOid" otherwise.
type orderStatusResponse struct {
	Status string `json:"status"`
	Order  struct {
		Order struct {
			Oid   int64  `json:"oid"`
			Coin  string `json:"coin"`
			Side  string `json:"side"`
			Cloid string `json:"cloid"`
		} `json:"order"`
		Status string `json:"status"`
	} `json:"order"`
}

const orderStatusUnknownOid = "unknownOid"
