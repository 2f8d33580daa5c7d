package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKey        = errors.New("encryption key must be 64 hex characters")
	ErrMalformedCipher   = errors.New("ciphertext is malformed")
	ErrAuthenticationBad = errors.New("ciphertext failed authentication")
)

// Cipher encrypts ROS content before it is committed and decrypts it on read.
type Cipher interface {
	// Encrypt returns base64(nonce || sealed plaintext).
	Encrypt(plaintext []byte) (string, error)
	Decrypt(encoded string) ([]byte, error)
}

// xchacha implements Cipher with XChaCha20-Poly1305. The AEAD is safe for concurrent use.
type xchacha struct {
	aead cipher.AEAD
}

// NewXChaCha builds a Cipher from a hex encoded 32 byte key.
func NewXChaCha(hexKey string) (Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}
	return &xchacha{aead: aead}, nil
}

func (x *xchacha) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, x.aead.NonceSize(), x.aead.NonceSize()+len(plaintext)+x.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := x.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (x *xchacha) Decrypt(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCipher, err)
	}
	if len(raw) < x.aead.NonceSize()+x.aead.Overhead() {
		return nil, ErrMalformedCipher
	}
	nonce, sealed := raw[:x.aead.NonceSize()], raw[x.aead.NonceSize():]
	plaintext, err := x.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationBad
	}
	return plaintext, nil
}
