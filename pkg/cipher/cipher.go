// Package cipher provides the reversible codec used for stored card numbers.
package cipher

import (
	gocipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

//go:generate mockgen -source=cipher.go -destination=mock_cipher.go -package=cipher
type Codec interface {
	Encrypt(plain []byte) (string, error)
	Decrypt(opaque string) ([]byte, error)
}

type XChaCha struct {
	aead gocipher.AEAD
}

const keyInfo = "coursemart/saved-card-pan"

// New derives the key from secret with HKDF-SHA256.
func New(secret string) (*XChaCha, error) {
	if secret == "" {
		return nil, errors.New("encryption secret is empty")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &XChaCha{aead: aead}, nil
}

func (c *XChaCha) Encrypt(plain []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plain)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *XChaCha) Decrypt(opaque string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(opaque)
	if err != nil || len(raw) < c.aead.NonceSize() {
		return nil, ErrMalformedCiphertext
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}
	return plain, nil
}
