package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrEmptyPassphrase = errors.New("cryptox: empty passphrase")
	ErrSealedTooShort  = errors.New("cryptox: sealed data too short")
)

// Sealer encrypts small blobs with AES-256-GCM. The key is the SHA-256 of a
// passphrase, so any passphrase length works.
//
// Sealed format: [12-byte nonce][ciphertext][16-byte auth tag]. The nonce is
// random per call, so sealing the same plaintext twice gives different output.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the AES-256 key from passphrase and prepares GCM.
func NewSealer(passphrase []byte) (*Sealer, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	key := sha256.Sum256(passphrase)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: gcm}, nil
}

// LoadSealer builds a Sealer from the passphrase stored in path, falling back
// to fallback when path is empty. Trailing whitespace in the file is ignored
// so keys written with `echo` behave the same as ones written with printf.
func LoadSealer(path, fallback string) (*Sealer, error) {
	if path == "" {
		return NewSealer([]byte(fallback))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	return NewSealer([]byte(strings.TrimRight(string(data), "\r\n\t ")))
}

// Seal encrypts and authenticates plaintext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext and tag to the nonce slice.
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Any tampering or key mismatch fails authentication.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize+s.aead.Overhead() {
		return nil, ErrSealedTooShort
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// SealString is Seal followed by standard base64, for text-only storage.
func (s *Sealer) SealString(plaintext []byte) (string, error) {
	sealed, err := s.Seal(plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString decodes base64 text produced by SealString and opens it.
// Decoding is strict so that no two texts open to the same record.
func (s *Sealer) OpenString(text string) ([]byte, error) {
	sealed, err := base64.StdEncoding.Strict().DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed text: %w", err)
	}
	return s.Open(sealed)
}
