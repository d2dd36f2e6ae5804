package hyperliquid

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/httpclient"
)

// Venue is the tag used in logs, errors and event subjects.
const Venue = "HYPERLIQUID"

const (
	// RateKeyInfo throttles read-only info queries.
	RateKeyInfo = "info"
	// RateKeyExchange throttles signed exchange actions.
	RateKeyExchange = "exchange"
)

// InfoClient issues read-only queries against the venue's unified info
// endpoint. Every call is a single attempt; retry policy belongs to the
// caller, not the transport.
type InfoClient struct {
	exec        *httpclient.Executor
	infoURL     string
	infoTimeout time.Duration
	metaTimeout time.Duration
	logger      *zap.Logger
}

// NewInfoClient creates an info client for the given venue base URL.
// metaTimeout bounds the combined metadata snapshot, which is the largest
// payload the venue serves; infoTimeout bounds everything else.
func NewInfoClient(exec *httpclient.Executor, baseURL string, infoTimeout, metaTimeout time.Duration, logger *zap.Logger) *InfoClient {
	return &InfoClient{
		exec:        exec,
		infoURL:     baseURL + "/info",
		infoTimeout: infoTimeout,
		metaTimeout: metaTimeout,
		logger:      logger,
	}
}

// SpotBalances fetches the spot clearinghouse state for an address.
func (c *InfoClient) SpotBalances(ctx context.Context, address string) ([]SpotBalance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.infoTimeout)
	defer cancel()

	var state spotClearinghouseState
	req := infoRequest{Type: infoTypeSpotState, User: address}
	if err := c.exec.PostJSON(ctx, c.infoURL, req, RateKeyInfo, &state); err != nil {
		return nil, fmt.Errorf("spot balances for %s: %w", address, err)
	}
	return state.Balances, nil
}

// SpotMetaAndAssetCtxs fetches the combined spot metadata snapshot: the
// token and market universe plus the current per-market contexts.
func (c *InfoClient) SpotMetaAndAssetCtxs(ctx context.Context) (*SpotMetaAndAssetCtxs, error) {
	ctx, cancel := context.WithTimeout(ctx, c.metaTimeout)
	defer cancel()

	var snapshot SpotMetaAndAssetCtxs
	req := infoRequest{Type: infoTypeSpotMeta}
	if err := c.exec.PostJSON(ctx, c.infoURL, req, RateKeyInfo, &snapshot); err != nil {
		return nil, fmt.Errorf("spot meta snapshot: %w", err)
	}
	return &snapshot, nil
}

// OpenOrders fetches the resting orders for an address.
func (c *InfoClient) OpenOrders(ctx context.Context, address string) ([]OpenOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, c.infoTimeout)
	defer cancel()

	var orders []OpenOrder
	req := infoRequest{Type: infoTypeOpenOrders, User: address}
	if err := c.exec.PostJSON(ctx, c.infoURL, req, RateKeyInfo, &orders); err != nil {
		return nil, fmt.Errorf("open orders for %s: %w", address, err)
	}
	return orders, nil
}

// OrderStatusByClientID resolves the venue order id for a client order id.
// Returns (0, nil) when the venue does not know the order.
func (c *InfoClient) OrderStatusByClientID(ctx context.Context, address, clientOrderID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.infoTimeout)
	defer cancel()

	var status orderStatusResponse
	req := infoRequest{Type: infoTypeOrderStatus, User: address, Oid: clientOrderID}
	if err := c.exec.PostJSON(ctx, c.infoURL, req, RateKeyInfo, &status); err != nil {
		return 0, fmt.Errorf("order status for cloid %s: %w", clientOrderID, err)
	}
	if status.Status == orderStatusUnknownOid {
		c.logger.Debug("hyperliquid.order_status_unknown", zap.String("cloid", clientOrderID))
		return 0, nil
	}
	return status.Order.Order.Oid, nil
}
