package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/assets"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/metrics"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/utils"
)

// ErrEmptyAddress is returned when a valuation is requested without an address.
var ErrEmptyAddress = errors.New("portfolio: address is required")

// BalanceSource supplies spot balance rows for an address.
type BalanceSource interface {
	SpotBalances(ctx context.Context, address string) ([]hyperliquid.SpotBalance, error)
}

// DirectoryBuilder supplies a fresh asset directory.
type DirectoryBuilder interface {
	Build(ctx context.Context) (*assets.Directory, error)
}

// Service joins an account's balances with a same-cycle asset directory to
// produce a priced portfolio view.
type Service struct {
	balances  BalanceSource
	directory DirectoryBuilder
	quote     string
	logger    *zap.Logger
}

func NewService(balances BalanceSource, directory DirectoryBuilder, quote string, logger *zap.Logger) *Service {
	return &Service{
		balances:  balances,
		directory: directory,
		quote:     quote,
		logger:    logger,
	}
}

// Valuate fetches balances and a fresh directory, then prices every held
// asset. Upstream failures surface as errors; a fetched-but-unpriceable
// asset is still listed, valued at zero and flagged, so a degraded result
// is always distinguishable from an empty account.
func (s *Service) Valuate(ctx context.Context, address string) (*model.PortfolioValuation, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	rows, err := s.balances.SpotBalances(ctx, address)
	if err != nil {
		metrics.IncPortfolioValuation("balance_fetch_failed")
		return nil, fmt.Errorf("fetch balances: %w", err)
	}

	dir, err := s.directory.Build(ctx)
	if err != nil {
		metrics.IncPortfolioValuation("directory_failed")
		return nil, fmt.Errorf("resolve assets: %w", err)
	}

	records := hyperliquid.MapBalances(rows, s.logger)

	holdings := make([]model.ValuedHolding, 0, len(records))
	total := decimal.Zero
	unpriced := 0

	for _, rec := range records {
		if rec.Total.LessThanOrEqual(decimal.Zero) {
			continue
		}

		identifier, known := dir.Identifier(rec.Symbol)
		if !known {
			// Unknown symbols keep their own name as identifier so they
			// remain visible in the output.
			identifier = rec.Symbol
		}

		price, priced := dir.Price(identifier)
		if !priced {
			price, priced = dir.Price(rec.Symbol)
		}

		h := model.ValuedHolding{
			Symbol:     rec.Symbol,
			Identifier: identifier,
			Total:      rec.Total,
			Hold:       rec.Hold,
			HasPrice:   priced,
		}
		if priced {
			h.Price = price
			h.Value = rec.Total.Mul(price)
			total = total.Add(h.Value)
		} else {
			unpriced++
		}

		holdings = append(holdings, h)
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].Value.GreaterThan(holdings[j].Value)
	})

	s.logger.Info("portfolio.valuated",
		zap.String("address", utils.MaskAddress(address)),
		zap.Int("holdings", len(holdings)),
		zap.Int("unpriced", unpriced),
		zap.String("total", total.String()))
	metrics.IncPortfolioValuation("ok")

	return &model.PortfolioValuation{
		Address:    address,
		Quote:      s.quote,
		Holdings:   holdings,
		TotalValue: total,
		AsOf:       dir.AsOf(),
	}, nil
}
