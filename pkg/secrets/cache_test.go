package secrets

import (
	"sync"
	"testing"
	"time"
)

type signerMaterial struct {
	PrivateKey     string
	AccountAddress string
}

func sampleSigner() signerMaterial {
	return signerMaterial{
		PrivateKey:     "abc123",
		AccountAddress: "0xdef456",
	}
}

func TestCache_PutAndGet(t *testing.T) {
	cache := NewCache[signerMaterial](2 * time.Second)
	key := "prod/hyperliquid/signer"

	// should miss initially
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put(key, sampleSigner())

	// immediate hit
	if signer, ok := cache.Get(key); !ok {
		t.Fatal("expected cache hit")
	} else if signer.PrivateKey != "abc123" {
		t.Errorf("expected private key abc123, got %s", signer.PrivateKey)
	}
}

func TestCache_Expiration(t *testing.T) {
	cache := NewCache[signerMaterial](500 * time.Millisecond)
	key := "prod/hyperliquid/signer"
	cache.Put(key, sampleSigner())

	time.Sleep(600 * time.Millisecond)

	if _, ok := cache.Get(key); ok {
		t.Fatal("expected expired cache entry")
	}
}

func TestCache_Bust(t *testing.T) {
	cache := NewCache[signerMaterial](5 * time.Second)
	key := "prod/hyperliquid/signer"
	cache.Put(key, sampleSigner())

	cache.Bust(key)
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected cache miss after bust")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache[signerMaterial](2 * time.Second)
	key := "prod/hyperliquid/signer"

	var wg sync.WaitGroup
	wg.Add(2)

	// Writer
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Put(key, sampleSigner())
			time.Sleep(time.Millisecond * 5)
		}
	}()

	// Reader
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Get(key)
			time.Sleep(time.Millisecond * 5)
		}
	}()

	wg.Wait()
}

func TestCache_CleanupExpired(t *testing.T) {
	cache := NewCache[signerMaterial](200 * time.Millisecond)
	key1 := "prod/hyperliquid/signer"
	key2 := "staging/hyperliquid/signer"
	cache.Put(key1, sampleSigner())
	cache.Put(key2, sampleSigner())

	time.Sleep(300 * time.Millisecond)
	cache.cleanupExpired()

	if _, ok := cache.Get(key1); ok {
		t.Fatal("expected key1 expired and cleaned up")
	}
	if _, ok := cache.Get(key2); ok {
		t.Fatal("expected key2 expired and cleaned up")
	}
}
