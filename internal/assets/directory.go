package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
)

// QuotePseudoIdentifier is the synthetic identifier for the quote currency
// itself. The venue has no market for it, so the directory lists it with a
// fixed price of 1.
const QuotePseudoIdentifier = "USDC"

// MetaSource supplies one combined metadata snapshot.
type MetaSource interface {
	SpotMetaAndAssetCtxs(ctx context.Context) (*hyperliquid.SpotMetaAndAssetCtxs, error)
}

// Directory is an immutable three-way mapping built from a single metadata
// snapshot: human symbol to market identifier, identifier back to symbol,
// and identifier to mid price. Build a fresh one per request cycle; no
// state is cached between snapshots.
type Directory struct {
	identifiers map[string]string          // symbol -> market identifier
	symbols     map[string]string          // market identifier -> symbol
	prices      map[string]decimal.Decimal // market identifier -> mid price
	asOf        time.Time
}

// Identifier resolves a human symbol to its market identifier.
func (d *Directory) Identifier(symbol string) (string, bool) {
	id, ok := d.identifiers[symbol]
	return id, ok
}

// Price returns the mid price for a market identifier or raw price key.
func (d *Directory) Price(key string) (decimal.Decimal, bool) {
	p, ok := d.prices[key]
	return p, ok
}

// SymbolFor resolves a market identifier back to its human symbol.
func (d *Directory) SymbolFor(identifier string) (string, bool) {
	s, ok := d.symbols[identifier]
	return s, ok
}

// AsOf is the time the snapshot behind this directory was taken.
func (d *Directory) AsOf() time.Time { return d.asOf }

// Size returns the number of symbol mappings.
func (d *Directory) Size() int { return len(d.identifiers) }

// Builder constructs directories from metadata snapshots.
type Builder struct {
	source    MetaSource
	overrides map[string]string
	quote     string
	logger    *zap.Logger
}

// NewBuilder creates a Builder. overrides pins symbols to known-good market
// identifiers and wins over derived mappings whenever the pinned market is
// actually priced in the snapshot.
func NewBuilder(source MetaSource, overrides map[string]string, quote string, logger *zap.Logger) *Builder {
	return &Builder{
		source:    source,
		overrides: overrides,
		quote:     quote,
		logger:    logger,
	}
}

// Build fetches one snapshot and derives the directory from it. Both halves
// of the mapping come from the same snapshot, so symbol, identifier and
// price are always mutually consistent.
func (b *Builder) Build(ctx context.Context) (*Directory, error) {
	snap, err := b.source.SpotMetaAndAssetCtxs(ctx)
	if err != nil {
		return nil, fmt.Errorf("build asset directory: %w", err)
	}
	return b.fromSnapshot(snap), nil
}

func (b *Builder) fromSnapshot(snap *hyperliquid.SpotMetaAndAssetCtxs) *Directory {
	dir := &Directory{
		identifiers: make(map[string]string, len(snap.Meta.Universe)+1),
		symbols:     make(map[string]string, len(snap.Meta.Universe)+1),
		prices:      make(map[string]decimal.Decimal, len(snap.Ctxs)+1),
		asOf:        time.Now().UTC(),
	}

	// Token index table. Index 0 is the quote leg on this venue.
	tokenNames := make(map[int]string, len(snap.Meta.Tokens))
	for _, tok := range snap.Meta.Tokens {
		tokenNames[tok.Index] = tok.Name
	}

	for _, market := range snap.Meta.Universe {
		if len(market.Tokens) < 2 {
			b.logger.Warn("assets.market_missing_legs", zap.String("market", market.Name))
			continue
		}
		base := market.Tokens[0]
		if base == 0 {
			base = market.Tokens[1]
		}
		symbol, ok := tokenNames[base]
		if !ok {
			b.logger.Warn("assets.unknown_base_token",
				zap.String("market", market.Name),
				zap.Int("token_index", base))
			continue
		}
		if prev, dup := dir.identifiers[symbol]; dup && prev != market.Name {
			b.logger.Warn("assets.symbol_remapped",
				zap.String("symbol", symbol),
				zap.String("previous", prev),
				zap.String("current", market.Name))
		}
		dir.identifiers[symbol] = market.Name
	}

	for _, ctx := range snap.Ctxs {
		if ctx.MidPx == nil {
			continue
		}
		px, err := decimal.NewFromString(*ctx.MidPx)
		if err != nil {
			b.logger.Warn("assets.price_unparseable",
				zap.String("market", ctx.Coin),
				zap.String("midPx", *ctx.MidPx))
			continue
		}
		dir.prices[ctx.Coin] = px
	}

	// Pinned mappings win, but only when the pinned market has a price in
	// this snapshot. An unpriced pin would orphan the symbol.
	for symbol, id := range b.overrides {
		if _, priced := dir.prices[id]; !priced {
			b.logger.Debug("assets.override_unpriced",
				zap.String("symbol", symbol),
				zap.String("identifier", id))
			continue
		}
		dir.identifiers[symbol] = id
	}

	// The quote currency values itself at par.
	dir.identifiers[b.quote] = QuotePseudoIdentifier
	dir.prices[QuotePseudoIdentifier] = decimal.NewFromInt(1)

	for symbol, id := range dir.identifiers {
		dir.symbols[id] = symbol
	}

	b.logger.Info("assets.directory_built",
		zap.Int("symbols", len(dir.identifiers)),
		zap.Int("priced_markets", len(dir.prices)))

	return dir
}

// DefaultOverrides are the pinned symbol mappings for markets whose derived
// base token is ambiguous or renamed on the venue.
func DefaultOverrides() map[string]string {
	return map[string]string{
		"HYPE":  "@107",
		"PURR":  "@1",
		"FUSD":  "@153",
		"USDT0": "@166",
		"USDHL": "@180",
	}
}

// LoadOverrides reads a JSON object of symbol to market identifier pins
// from path. An empty path returns the defaults.
func LoadOverrides(path string) (map[string]string, error) {
	if path == "" {
		return DefaultOverrides(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides file: %w", err)
	}
	var overrides map[string]string
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse overrides file: %w", err)
	}
	return overrides, nil
}
