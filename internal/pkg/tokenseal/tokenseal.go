package tokenseal

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrInvalidCiphertext is returned when sealed data is truncated or
	// fails authentication.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// Sealer encrypts upstream access tokens before they are written to the
// session store, using XChaCha20-Poly1305.
type Sealer struct {
	key [chacha20poly1305.KeySize]byte
}

// New derives a sealing key from the configured secret.
func New(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("tokenseal: secret is required")
	}
	s := &Sealer{key: sha256.Sum256([]byte(secret))}
	return s, nil
}

// Seal encrypts a token. Output is nonce || ciphertext.
func (s *Sealer) Seal(token string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(token)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, []byte(token), nil), nil
}

// Open decrypts sealed data produced by Seal.
func (s *Sealer) Open(sealed []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return "", fmt.Errorf("init aead: %w", err)
	}

	if len(sealed) < aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plain), nil
}
