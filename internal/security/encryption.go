package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for deriving the sealing key from a device secret
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLength    = 32
)

// DefaultSalt is mixed into the device secret when no per-install salt is available
var DefaultSalt = []byte("eva-mobile-core/token-store/v1")

// Sealer encrypts small secrets (auth tokens) with AES-256-GCM before they hit storage
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from the device secret with argon2id
func NewSealer(secret string, salt []byte) (*Sealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("device secret is required")
	}
	if len(salt) == 0 {
		salt = DefaultSalt
	}

	key := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, keyLength)
	return NewSealerWithKey(key)
}

// NewSealerWithKey creates a sealer from a raw 32-byte AES-256 key
func NewSealerWithKey(key []byte) (*Sealer, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("sealing key must be 32 bytes for AES-256, got %d bytes", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns base64(nonce || ciphertext). Empty input stays empty.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("sealed value too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}
