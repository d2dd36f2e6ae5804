package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
)

type staticMetaSource struct {
	snap *hyperliquid.SpotMetaAndAssetCtxs
	err  error
}

func (s *staticMetaSource) SpotMetaAndAssetCtxs(ctx context.Context) (*hyperliquid.SpotMetaAndAssetCtxs, error) {
	return s.snap, s.err
}

func px(s string) *string { return &s }

func sampleSnapshot() *hyperliquid.SpotMetaAndAssetCtxs {
	return &hyperliquid.SpotMetaAndAssetCtxs{
		Meta: hyperliquid.SpotMeta{
			Tokens: []hyperliquid.SpotToken{
				{Name: "USDC", Index: 0},
				{Name: "PURR", Index: 1},
				{Name: "HYPE", Index: 150},
				{Name: "SOLV", Index: 155},
			},
			Universe: []hyperliquid.SpotMarket{
				{Name: "PURR/USDC", Tokens: []int{1, 0}},
				{Name: "@107", Tokens: []int{150, 0}},
				{Name: "@120", Tokens: []int{0, 155}},
			},
		},
		Ctxs: []hyperliquid.AssetCtx{
			{Coin: "PURR/USDC", MidPx: px("0.18")},
			{Coin: "@107", MidPx: px("44.5")},
			{Coin: "@120", MidPx: nil},
			{Coin: "@1", MidPx: px("0.19")},
		},
	}
}

func buildDirectory(t *testing.T, snap *hyperliquid.SpotMetaAndAssetCtxs, overrides map[string]string) *Directory {
	t.Helper()
	b := NewBuilder(&staticMetaSource{snap: snap}, overrides, "USDC", zap.NewNop())
	dir, err := b.Build(context.Background())
	require.NoError(t, err)
	return dir
}

func TestBuildDerivesBaseToken(t *testing.T) {
	dir := buildDirectory(t, sampleSnapshot(), nil)

	id, ok := dir.Identifier("HYPE")
	require.True(t, ok)
	assert.Equal(t, "@107", id)

	// Quote leg first: base falls through to the second token.
	id, ok = dir.Identifier("SOLV")
	require.True(t, ok)
	assert.Equal(t, "@120", id)
}

func TestBuildPrices(t *testing.T) {
	dir := buildDirectory(t, sampleSnapshot(), nil)

	p, ok := dir.Price("@107")
	require.True(t, ok)
	assert.True(t, p.Equal(decimal.RequireFromString("44.5")))

	// Market with no mid must be absent, not zero.
	_, ok = dir.Price("@120")
	assert.False(t, ok)
}

func TestBuildQuotePseudoAsset(t *testing.T) {
	dir := buildDirectory(t, sampleSnapshot(), nil)

	id, ok := dir.Identifier("USDC")
	require.True(t, ok)
	assert.Equal(t, QuotePseudoIdentifier, id)

	p, ok := dir.Price(QuotePseudoIdentifier)
	require.True(t, ok)
	assert.True(t, p.Equal(decimal.NewFromInt(1)))
}

func TestBuildOverrideWinsWhenPriced(t *testing.T) {
	dir := buildDirectory(t, sampleSnapshot(), map[string]string{"PURR": "@1"})

	id, ok := dir.Identifier("PURR")
	require.True(t, ok)
	assert.Equal(t, "@1", id, "pinned mapping wins over the derived one")
}

func TestBuildOverrideSkippedWhenUnpriced(t *testing.T) {
	dir := buildDirectory(t, sampleSnapshot(), map[string]string{"HYPE": "@999"})

	id, ok := dir.Identifier("HYPE")
	require.True(t, ok)
	assert.Equal(t, "@107", id, "unpriced pin must not orphan the symbol")
}

func TestBuildLastWriteWins(t *testing.T) {
	snap := sampleSnapshot()
	snap.Meta.Universe = append(snap.Meta.Universe, hyperliquid.SpotMarket{
		Name: "@200", Tokens: []int{150, 0},
	})

	dir := buildDirectory(t, snap, nil)
	id, ok := dir.Identifier("HYPE")
	require.True(t, ok)
	assert.Equal(t, "@200", id)
}

func TestBuildSkipsMalformedMarkets(t *testing.T) {
	snap := sampleSnapshot()
	snap.Meta.Universe = append(snap.Meta.Universe,
		hyperliquid.SpotMarket{Name: "@300", Tokens: []int{42}},
		hyperliquid.SpotMarket{Name: "@301", Tokens: []int{999, 0}},
	)

	dir := buildDirectory(t, snap, nil)
	_, ok := dir.SymbolFor("@300")
	assert.False(t, ok)
	_, ok = dir.SymbolFor("@301")
	assert.False(t, ok)
}

func TestBuildUnparseablePriceSkipped(t *testing.T) {
	snap := sampleSnapshot()
	snap.Ctxs = append(snap.Ctxs, hyperliquid.AssetCtx{Coin: "@400", MidPx: px("n/a")})

	dir := buildDirectory(t, snap, nil)
	_, ok := dir.Price("@400")
	assert.False(t, ok)
}

func TestBuildSourceError(t *testing.T) {
	b := NewBuilder(&staticMetaSource{err: errors.New("upstream down")}, nil, "USDC", zap.NewNop())
	_, err := b.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build asset directory")
}

func TestBuildDeterministic(t *testing.T) {
	overrides := map[string]string{"PURR": "@1"}
	a := buildDirectory(t, sampleSnapshot(), overrides)
	b := buildDirectory(t, sampleSnapshot(), overrides)

	assert.Equal(t, a.Size(), b.Size())
	for _, sym := range []string{"HYPE", "SOLV", "PURR", "USDC"} {
		idA, okA := a.Identifier(sym)
		idB, okB := b.Identifier(sym)
		assert.Equal(t, okA, okB)
		assert.Equal(t, idA, idB)

		pxA, pricedA := a.Price(idA)
		pxB, pricedB := b.Price(idB)
		assert.Equal(t, pricedA, pricedB)
		assert.True(t, pxA.Equal(pxB))
	}
}

func TestSymbolFor(t *testing.T) {
	dir := buildDirectory(t, sampleSnapshot(), nil)

	sym, ok := dir.SymbolFor("@107")
	require.True(t, ok)
	assert.Equal(t, "HYPE", sym)

	_, ok = dir.SymbolFor("@9999")
	assert.False(t, ok)
}

func TestLoadOverrides(t *testing.T) {
	t.Run("defaults on empty path", func(t *testing.T) {
		overrides, err := LoadOverrides("")
		require.NoError(t, err)
		assert.Equal(t, "@107", overrides["HYPE"])
		assert.Equal(t, "@166", overrides["USDT0"])
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"FOO":"@9"}`), 0o600))

		overrides, err := LoadOverrides(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"FOO": "@9"}, overrides)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.json")
		require.NoError(t, os.WriteFile(path, []byte(`[`), 0o600))

		_, err := LoadOverrides(path)
		require.Error(t, err)
	})
}
