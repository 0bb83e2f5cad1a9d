package store

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

type sealedStore struct {
	inner Store
	aead  cipher.AEAD
}

// NewSealed wraps a Store with authenticated encryption at rest. This is the
// higher-trust tier the permanent token lives in. The key must be exactly
// chacha20poly1305.KeySize (32) bytes.
func NewSealed(inner Store, key []byte) (Store, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("seal key: %w", err)
	}
	return &sealedStore{inner: inner, aead: aead}, nil
}

func (s *sealedStore) Set(ctx context.Context, key string, value []byte) error {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("seal nonce: %w", err)
	}
	// The storage key is bound as additional data so a ciphertext moved
	// between keys fails to open.
	sealed := s.aead.Seal(nonce, nonce, value, []byte(key))
	return s.inner.Set(ctx, key, sealed)
}

func (s *sealedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, false, fmt.Errorf("unseal %s: ciphertext too short", key)
	}
	nonce, ct := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	plain, err := s.aead.Open(nil, nonce, ct, []byte(key))
	if err != nil {
		return nil, false, fmt.Errorf("unseal %s: %w", key, err)
	}
	return plain, true, nil
}

func (s *sealedStore) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}
