package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgsecrets "github.com/Checker-Finance/hyperliquid-adapter/pkg/secrets"
)

type fakeProvider struct {
	secrets map[string]map[string]string
	err     error
	calls   int
}

func (f *fakeProvider) GetSecret(ctx context.Context, key string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.secrets[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func newResolver(p pkgsecrets.Provider) *Resolver {
	cache := pkgsecrets.NewCache[SignerConfig](time.Minute)
	return NewResolver(zap.NewNop(), "uat", p, cache)
}

func TestResolveFromBackend(t *testing.T) {
	p := &fakeProvider{secrets: map[string]map[string]string{
		"uat/hyperliquid/signer": {
			"private_key":     "0xdeadbeef",
			"account_address": "0xabc",
		},
	}}

	cfg, err := newResolver(p).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", cfg.PrivateKey)
	assert.Equal(t, "0xabc", cfg.AccountAddress)
}

func TestResolveUsesCache(t *testing.T) {
	p := &fakeProvider{secrets: map[string]map[string]string{
		"uat/hyperliquid/signer": {"private_key": "k"},
	}}
	r := newResolver(p)

	_, err := r.Resolve(context.Background())
	require.NoError(t, err)
	_, err = r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls, "second resolve must hit the cache")
}

func TestResolveBustForcesRefetch(t *testing.T) {
	p := &fakeProvider{secrets: map[string]map[string]string{
		"uat/hyperliquid/signer": {"private_key": "k"},
	}}
	r := newResolver(p)

	_, err := r.Resolve(context.Background())
	require.NoError(t, err)
	r.Bust()
	_, err = r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, p.calls)
}

func TestResolveMissingPrivateKey(t *testing.T) {
	p := &fakeProvider{secrets: map[string]map[string]string{
		"uat/hyperliquid/signer": {"account_address": "0xabc"},
	}}

	_, err := newResolver(p).Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private_key")
}

func TestResolveEnvFallback(t *testing.T) {
	t.Setenv("HL_PRIVATE_KEY", "envkey")
	t.Setenv("HL_ACCOUNT_ADDRESS", "0xenv")

	p := &fakeProvider{err: errors.New("aws unreachable")}
	cfg, err := newResolver(p).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "envkey", cfg.PrivateKey)
	assert.Equal(t, "0xenv", cfg.AccountAddress)
}

func TestResolveNothingAvailable(t *testing.T) {
	t.Setenv("HL_PRIVATE_KEY", "")

	p := &fakeProvider{err: errors.New("aws unreachable")}
	_, err := newResolver(p).Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no signer available")
}
