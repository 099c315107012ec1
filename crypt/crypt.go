// Package crypt implements the per-share hybrid encryption layer: ECIES
// over secp256k1, with three ways to construct the keypair.
package crypt

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"
	"golang.org/x/crypto/argon2"
)

// SecretKeySizeBytes is the length of a secp256k1 secret key scalar.
const SecretKeySizeBytes = 32

// SaltSizeBytes is the length of the per-invocation salt used by the
// passphrase key-derivation function.
const SaltSizeBytes = 16

// ErrInvalidSecretKey is returned when hex-decoded secret key material is
// not exactly SecretKeySizeBytes long, or does not parse as a valid
// secp256k1 scalar.
var ErrInvalidSecretKey = errors.New("crypt: invalid secp256k1 secret key")

// argon2 parameters for passphrase-derived keys. These values are the
// standard interactive-use recommendation: one pass, 64 MiB, four lanes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Crypt is an ECIES keypair over secp256k1, used to encrypt and decrypt
// individual share y-coordinates. A Crypt is created fresh per mix/unmix
// invocation and discarded afterward; it is never itself persisted.
type Crypt struct {
	priv *ecies.PrivateKey
	// salt is non-nil only when the keypair was derived from a passphrase;
	// it is what gets stored in an encrypted share envelope so the same
	// key can be re-derived on the unmix side.
	salt []byte
}

// New constructs a Crypt from a freshly generated random secp256k1 keypair.
func New() (*Crypt, error) {
	priv, err := ecies.GenerateKey(rand.Reader, crypto.S256(), nil)
	if err != nil {
		return nil, fmt.Errorf("crypt: generating random key: %w", err)
	}
	return &Crypt{priv: priv}, nil
}

// NewFromHex constructs a Crypt from a hex-encoded 32-byte secp256k1 secret
// key scalar.
func NewFromHex(hexKey string) (*Crypt, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	return newFromScalarBytes(raw)
}

// NewFromPassphrase derives a secp256k1 secret key scalar from a passphrase
// using Argon2id with the given salt.
//
// This deviates intentionally from a single unsalted SHA-256 hash: a
// per-invocation salt is generated by the caller (via NewSalt) on mix, and
// the same salt must be supplied again on unmix, normally by reading it
// back out of the encrypted share envelope it was stored in.
func NewFromPassphrase(passphrase string, salt []byte) (*Crypt, error) {
	if len(salt) == 0 {
		return nil, errors.New("crypt: passphrase derivation requires a non-empty salt")
	}
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, SecretKeySizeBytes)
	c, err := newFromScalarBytes(key)
	if err != nil {
		return nil, err
	}
	c.salt = append([]byte(nil), salt...)
	return c, nil
}

// NewSalt generates a fresh random salt for passphrase-based key
// derivation, to be generated once per mix invocation.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSizeBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("crypt: generating salt: %w", err)
	}
	return salt, nil
}

func newFromScalarBytes(raw []byte) (*Crypt, error) {
	if len(raw) != SecretKeySizeBytes {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSecretKey, SecretKeySizeBytes, len(raw))
	}
	ecdsaKey, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	return &Crypt{priv: ecies.ImportECDSA(ecdsaKey)}, nil
}

// SecretKeyHex returns the hex encoding of the secret key scalar, for
// writing out a key file in random-key mode.
func (c *Crypt) SecretKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(c.priv.ExportECDSA()))
}

// Salt returns the salt used to derive this Crypt's key, or nil if it was
// not constructed from a passphrase.
func (c *Crypt) Salt() []byte {
	if c.salt == nil {
		return nil
	}
	return append([]byte(nil), c.salt...)
}

// Encrypt performs standard ECIES encryption of m using the Crypt's public
// key. Empty input is valid.
func (c *Crypt) Encrypt(m []byte) ([]byte, error) {
	ct, err := ecies.Encrypt(rand.Reader, &c.priv.PublicKey, m, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("crypt: encrypt: %w", err)
	}
	return ct, nil
}

// Decrypt performs ECIES decryption of ciphertext using the Crypt's secret
// key scalar.
func (c *Crypt) Decrypt(ciphertext []byte) ([]byte, error) {
	pt, err := c.priv.Decrypt(ciphertext, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("crypt: decrypt: %w", err)
	}
	return pt, nil
}
