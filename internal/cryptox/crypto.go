// Package cryptox seals backup payloads with AES-256-GCM under a key
// derived from a passphrase with argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	KeySize  = 32
	SaltSize = 16
)

// ErrBadNonce is returned by Open for a nonce of the wrong length.
var ErrBadNonce = errors.New("cryptox: bad nonce length")

// DeriveKey stretches a passphrase into a 32-byte AES key.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// NewSalt returns a fresh random salt for DeriveKey.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// Seal encrypts plaintext with AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// nonce is generated for each call; ciphertext and nonce are returned
// separately and both are needed by Open.
//
// Example:
//
//	salt := cryptox.NewSalt()
//	key := cryptox.DeriveKey([]byte("passphrase"), salt)
//	ciphertext, nonce, err := cryptox.Seal(data, key)
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// Open decrypts a ciphertext produced by Seal. A wrong key, nonce or a
// tampered ciphertext fails authentication.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, ErrBadNonce
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
