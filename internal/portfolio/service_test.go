package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/assets"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
)

const testAddr = "0x5b5d51203a0f9079f8aeb098a6523a13f298c060"

type fakeBalances struct {
	rows []hyperliquid.SpotBalance
	err  error
}

func (f *fakeBalances) SpotBalances(ctx context.Context, address string) ([]hyperliquid.SpotBalance, error) {
	return f.rows, f.err
}

type fakeMetaSource struct {
	snap *hyperliquid.SpotMetaAndAssetCtxs
	err  error
}

func (f *fakeMetaSource) SpotMetaAndAssetCtxs(ctx context.Context) (*hyperliquid.SpotMetaAndAssetCtxs, error) {
	return f.snap, f.err
}

func px(s string) *string { return &s }

func testSnapshot() *hyperliquid.SpotMetaAndAssetCtxs {
	return &hyperliquid.SpotMetaAndAssetCtxs{
		Meta: hyperliquid.SpotMeta{
			Tokens: []hyperliquid.SpotToken{
				{Name: "USDC", Index: 0},
				{Name: "HYPE", Index: 150},
				{Name: "PURR", Index: 1},
			},
			Universe: []hyperliquid.SpotMarket{
				{Name: "@107", Tokens: []int{150, 0}},
				{Name: "PURR/USDC", Tokens: []int{1, 0}},
			},
		},
		Ctxs: []hyperliquid.AssetCtx{
			{Coin: "@107", MidPx: px("40")},
			{Coin: "PURR/USDC", MidPx: px("0.2")},
		},
	}
}

func newTestService(balances *fakeBalances, meta *fakeMetaSource) *Service {
	builder := assets.NewBuilder(meta, nil, "USDC", zap.NewNop())
	return NewService(balances, builder, "USDC", zap.NewNop())
}

func TestValuateEmptyAddress(t *testing.T) {
	svc := newTestService(&fakeBalances{}, &fakeMetaSource{snap: testSnapshot()})
	_, err := svc.Valuate(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyAddress)
}

func TestValuateBalanceFetchFailure(t *testing.T) {
	svc := newTestService(&fakeBalances{err: errors.New("venue down")}, &fakeMetaSource{snap: testSnapshot()})
	_, err := svc.Valuate(context.Background(), testAddr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch balances")
}

func TestValuateDirectoryFailure(t *testing.T) {
	svc := newTestService(
		&fakeBalances{rows: []hyperliquid.SpotBalance{{Coin: "HYPE", Total: "1", Hold: "0"}}},
		&fakeMetaSource{err: errors.New("meta timeout")},
	)
	_, err := svc.Valuate(context.Background(), testAddr)
	require.Error(t, err, "partial data must fail loudly, not return an empty portfolio")
	assert.Contains(t, err.Error(), "resolve assets")
}

func TestValuatePricesAndSorts(t *testing.T) {
	svc := newTestService(&fakeBalances{rows: []hyperliquid.SpotBalance{
		{Coin: "PURR", Total: "100", Hold: "0"},  // 100 * 0.2 = 20
		{Coin: "HYPE", Total: "2", Hold: "0.5"},  // 2 * 40 = 80
		{Coin: "USDC", Total: "141.11", Hold: "0"},
	}}, &fakeMetaSource{snap: testSnapshot()})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, v.Holdings, 3)

	// Sorted by value descending.
	assert.Equal(t, "USDC", v.Holdings[0].Symbol)
	assert.Equal(t, "HYPE", v.Holdings[1].Symbol)
	assert.Equal(t, "PURR", v.Holdings[2].Symbol)

	assert.True(t, v.Holdings[1].Value.Equal(decimal.NewFromInt(80)))
	assert.True(t, v.TotalValue.Equal(decimal.RequireFromString("241.11")))
	assert.Equal(t, "USDC", v.Quote)
	assert.Equal(t, testAddr, v.Address)
	assert.False(t, v.AsOf.IsZero())
}

func TestValuateQuoteCurrencyAtPar(t *testing.T) {
	svc := newTestService(&fakeBalances{rows: []hyperliquid.SpotBalance{
		{Coin: "USDC", Total: "50", Hold: "0"},
	}}, &fakeMetaSource{snap: testSnapshot()})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, v.Holdings, 1)
	assert.True(t, v.Holdings[0].HasPrice)
	assert.True(t, v.Holdings[0].Price.Equal(decimal.NewFromInt(1)))
	assert.True(t, v.TotalValue.Equal(decimal.NewFromInt(50)))
}

func TestValuateFallsBackToSymbolKeyedPrice(t *testing.T) {
	// SOLV resolves to market @120, which carries no mid price in this
	// snapshot; the venue publishes the price under the bare symbol instead.
	snap := testSnapshot()
	snap.Meta.Tokens = append(snap.Meta.Tokens, hyperliquid.SpotToken{Name: "SOLV", Index: 200})
	snap.Meta.Universe = append(snap.Meta.Universe, hyperliquid.SpotMarket{Name: "@120", Tokens: []int{200, 0}})
	snap.Ctxs = append(snap.Ctxs, hyperliquid.AssetCtx{Coin: "SOLV", MidPx: px("3")})

	svc := newTestService(&fakeBalances{rows: []hyperliquid.SpotBalance{
		{Coin: "SOLV", Total: "5", Hold: "0"},
	}}, &fakeMetaSource{snap: snap})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, v.Holdings, 1)

	h := v.Holdings[0]
	assert.Equal(t, "@120", h.Identifier)
	assert.True(t, h.HasPrice, "symbol-keyed price must back an unpriced market")
	assert.True(t, h.Price.Equal(decimal.NewFromInt(3)))
	assert.True(t, v.TotalValue.Equal(decimal.NewFromInt(15)))
}

func TestValuateUnknownAssetFlaggedNotDropped(t *testing.T) {
	svc := newTestService(&fakeBalances{rows: []hyperliquid.SpotBalance{
		{Coin: "MYSTERY", Total: "7", Hold: "0"},
		{Coin: "HYPE", Total: "1", Hold: "0"},
	}}, &fakeMetaSource{snap: testSnapshot()})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, v.Holdings, 2)

	var mystery *struct {
		hasPrice bool
		value    decimal.Decimal
		id       string
	}
	for _, h := range v.Holdings {
		if h.Symbol == "MYSTERY" {
			mystery = &struct {
				hasPrice bool
				value    decimal.Decimal
				id       string
			}{h.HasPrice, h.Value, h.Identifier}
		}
	}
	require.NotNil(t, mystery)
	assert.False(t, mystery.hasPrice)
	assert.True(t, mystery.value.IsZero())
	assert.Equal(t, "MYSTERY", mystery.id, "unknown symbols keep an identity identifier")

	// Priced holdings still contribute to the total.
	assert.True(t, v.TotalValue.Equal(decimal.NewFromInt(40)))
}

func TestValuateSkipsZeroAndNegativeTotals(t *testing.T) {
	svc := newTestService(&fakeBalances{rows: []hyperliquid.SpotBalance{
		{Coin: "HYPE", Total: "0", Hold: "0"},
		{Coin: "PURR", Total: "-1", Hold: "0"},
		{Coin: "USDC", Total: "junk", Hold: "0"},
	}}, &fakeMetaSource{snap: testSnapshot()})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Empty(t, v.Holdings)
	assert.True(t, v.TotalValue.IsZero())
}

func TestValuateSortStability(t *testing.T) {
	// PURR at 0.2 and HYPE at 40: 200*0.2 == 1*40, so both holdings are
	// worth 40 and must keep their input order.
	svc := newTestService(&fakeBalances{rows: []hyperliquid.SpotBalance{
		{Coin: "PURR", Total: "200", Hold: "0"},
		{Coin: "HYPE", Total: "1", Hold: "0"},
	}}, &fakeMetaSource{snap: testSnapshot()})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, v.Holdings, 2)
	assert.Equal(t, "PURR", v.Holdings[0].Symbol)
	assert.Equal(t, "HYPE", v.Holdings[1].Symbol)
}

func TestValuateEmptyAccount(t *testing.T) {
	svc := newTestService(&fakeBalances{}, &fakeMetaSource{snap: testSnapshot()})

	v, err := svc.Valuate(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Empty(t, v.Holdings)
	assert.True(t, v.TotalValue.IsZero())
}
