package secrets

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgsecrets "github.com/Checker-Finance/hyperliquid-adapter/pkg/secrets"
)

// SignerConfig is the signing material for the venue account.
type SignerConfig struct {
	PrivateKey     string
	AccountAddress string
}

// Resolver fetches the signer secret, caching it between rotations. When no
// secrets backend is configured it falls back to environment variables,
// which keeps local development off AWS.
type Resolver struct {
	logger   *zap.Logger
	env      string
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[SignerConfig]
}

func NewResolver(
	logger *zap.Logger,
	env string,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[SignerConfig],
) *Resolver {
	return &Resolver{
		logger:   logger,
		env:      env,
		provider: provider,
		cache:    cache,
	}
}

// secretKey follows the {env}/{venue}/{purpose} naming convention.
func (r *Resolver) secretKey() string {
	return fmt.Sprintf("%s/hyperliquid/signer", r.env)
}

// Resolve returns the signer config, preferring cache, then the secrets
// backend, then HL_PRIVATE_KEY / HL_ACCOUNT_ADDRESS from the environment.
func (r *Resolver) Resolve(ctx context.Context) (SignerConfig, error) {
	key := r.secretKey()

	if r.cache != nil {
		if cfg, ok := r.cache.Get(key); ok {
			return cfg, nil
		}
	}

	if r.provider != nil {
		raw, err := r.provider.GetSecret(ctx, key)
		if err == nil {
			cfg, perr := parseSigner(raw)
			if perr != nil {
				return SignerConfig{}, fmt.Errorf("secret [%s]: %w", key, perr)
			}
			if r.cache != nil {
				r.cache.Put(key, cfg)
			}
			r.logger.Info("secrets.signer_resolved", zap.String("source", "aws"))
			return cfg, nil
		}
		r.logger.Warn("secrets.backend_failed, falling back to environment",
			zap.String("key", key),
			zap.Error(err))
	}

	cfg := SignerConfig{
		PrivateKey:     os.Getenv("HL_PRIVATE_KEY"),
		AccountAddress: os.Getenv("HL_ACCOUNT_ADDRESS"),
	}
	if cfg.PrivateKey == "" {
		return SignerConfig{}, fmt.Errorf("no signer available: secret [%s] unreachable and HL_PRIVATE_KEY unset", key)
	}
	r.logger.Info("secrets.signer_resolved", zap.String("source", "env"))
	return cfg, nil
}

// Bust drops the cached signer, forcing a re-fetch on next use.
func (r *Resolver) Bust() {
	if r.cache != nil {
		r.cache.Bust(r.secretKey())
	}
}

func parseSigner(m map[string]string) (SignerConfig, error) {
	cfg := SignerConfig{
		PrivateKey:     m["private_key"],
		AccountAddress: m["account_address"],
	}
	if cfg.PrivateKey == "" {
		return SignerConfig{}, fmt.Errorf("missing 'private_key' in secret")
	}
	return cfg, nil
}
