package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrUnsealable means a stored value exists but cannot be opened with the
// current secret (written in plain text, or under another secret).
var ErrUnsealable = errors.New("session: stored token cannot be unsealed")

// SealedStore encrypts values with XChaCha20-Poly1305 before handing them to
// the inner store. The key is derived from a user secret with argon2id.
type SealedStore struct {
	inner Store
	key   []byte
}

func NewSealedStore(inner Store, secret string) (*SealedStore, error) {
	if secret == "" {
		return nil, errors.New("session: sealing secret is empty")
	}
	return &SealedStore{inner: inner, key: deriveKey(secret)}, nil
}

func deriveKey(secret string) []byte {
	salt := sha256.Sum256([]byte("gopherchat/session/" + secret))
	return argon2.IDKey([]byte(secret), salt[:], 1, 64*1024, 4, chacha20poly1305.KeySize)
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	sealed, err := base64.RawStdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsealable, err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrUnsealable)
	}
	nonce, msg := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, msg, []byte(key))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsealable, err)
	}
	return string(plain), nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}
	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, base64.RawStdEncoding.EncodeToString(sealed))
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
