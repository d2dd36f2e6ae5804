package hyperliquid

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	hl "github.com/sonirico/go-hyperliquid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/rate"
)

// ExchangeClient wraps the signed exchange surface of the venue. It places
// and cancels orders; read paths live on InfoClient.
type ExchangeClient struct {
	ex          *hl.Exchange
	info        *InfoClient
	rateMgr     *rate.Manager
	accountAddr string
	logger      *zap.Logger
}

// NewExchangeClient derives the account address from the private key and
// builds a signing exchange session against baseURL.
func NewExchangeClient(privateKeyHex, baseURL string, info *InfoClient, rateMgr *rate.Manager, logger *zap.Logger) (*ExchangeClient, error) {
	key := strings.TrimSpace(privateKeyHex)
	if strings.HasPrefix(key, "0x") || strings.HasPrefix(key, "0X") {
		key = key[2:]
	}

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}

	pub, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("signer key has no ECDSA public key")
	}
	accountAddr := crypto.PubkeyToAddress(*pub).Hex()

	ex := hl.NewExchange(
		context.Background(),
		privateKey,
		baseURL,
		nil,
		"",
		accountAddr,
		nil,
	)

	return &ExchangeClient{
		ex:          ex,
		info:        info,
		rateMgr:     rateMgr,
		accountAddr: accountAddr,
		logger:      logger,
	}, nil
}

// AccountAddress returns the signer's derived account address.
func (c *ExchangeClient) AccountAddress() string { return c.accountAddr }

// SubmitOrder places a GTC limit order tagged with clientOrderID and
// returns the venue order id. The id is resolved with a follow-up status
// query; when that query fails the order still stands, so the id comes back
// empty rather than failing the submission.
func (c *ExchangeClient) SubmitOrder(ctx context.Context, identifier string, isBuy bool, size, price float64, clientOrderID string) (string, error) {
	if c.rateMgr != nil {
		if err := c.rateMgr.Wait(ctx, RateKeyExchange); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req := hl.CreateOrderRequest{
		Coin:          identifier,
		IsBuy:         isBuy,
		Price:         price,
		Size:          size,
		ReduceOnly:    false,
		ClientOrderID: &clientOrderID,
		OrderType: hl.OrderType{
			Limit: &hl.LimitOrderType{Tif: hl.TifGtc},
		},
	}

	if _, err := c.ex.Order(ctx, req, nil); err != nil {
		return "", err
	}

	oid, err := c.info.OrderStatusByClientID(ctx, c.accountAddr, clientOrderID)
	if err != nil || oid == 0 {
		c.logger.Warn("hyperliquid.order_id_unresolved",
			zap.String("cloid", clientOrderID),
			zap.Error(err))
		return "", nil
	}
	return fmt.Sprintf("%d", oid), nil
}

// CancelOrder cancels a resting order by venue order id.
func (c *ExchangeClient) CancelOrder(ctx context.Context, identifier string, orderID int64) error {
	if c.rateMgr != nil {
		if err := c.rateMgr.Wait(ctx, RateKeyExchange); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	_, err := c.ex.BulkCancel(ctx, []hl.CancelOrderRequest{
		{Coin: identifier, OrderID: orderID},
	})
	return err
}
