// Package share defines the on-disk envelope types for a single
// participant's portion of a mix operation, in both plaintext and
// ECIES-encrypted form, along with the collectors and storers that read and
// write them.
package share

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/glottologist/seedmixer/crypt"
	"github.com/glottologist/seedmixer/shamir"
)

// SecretShare is one participant's plaintext share: their Shamir
// coordinate for every obfuscated seed position.
type SecretShare struct {
	Index     uint64
	Threshold uint64
	Total     uint64
	Shares    []shamir.Fn
}

// MarshalJSON encodes a SecretShare in the reference wire format:
// {"index":<bigint>,"threshold":<bigint>,"total":<bigint>,"shares":[<bigint>,...]}
func (s SecretShare) MarshalJSON() ([]byte, error) {
	index, err := shamir.EncodeUintJSON(s.Index)
	if err != nil {
		return nil, err
	}
	threshold, err := shamir.EncodeUintJSON(s.Threshold)
	if err != nil {
		return nil, err
	}
	total, err := shamir.EncodeUintJSON(s.Total)
	if err != nil {
		return nil, err
	}
	shares, err := json.Marshal(s.Shares)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]json.RawMessage{
		"index":     index,
		"threshold": threshold,
		"total":     total,
		"shares":    shares,
	})
}

// UnmarshalJSON decodes a SecretShare from the reference wire format.
func (s *SecretShare) UnmarshalJSON(data []byte) error {
	var raw struct {
		Index     json.RawMessage `json:"index"`
		Threshold json.RawMessage `json:"threshold"`
		Total     json.RawMessage `json:"total"`
		Shares    []shamir.Fn     `json:"shares"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("share: decoding secret share: %w", err)
	}

	index, err := shamir.DecodeUintJSON(raw.Index)
	if err != nil {
		return fmt.Errorf("share: decoding index: %w", err)
	}
	threshold, err := shamir.DecodeUintJSON(raw.Threshold)
	if err != nil {
		return fmt.Errorf("share: decoding threshold: %w", err)
	}
	total, err := shamir.DecodeUintJSON(raw.Total)
	if err != nil {
		return fmt.Errorf("share: decoding total: %w", err)
	}

	s.Index = index
	s.Threshold = threshold
	s.Total = total
	s.Shares = raw.Shares
	return nil
}

// EncryptedSecretShare is the ECIES-encrypted counterpart of SecretShare:
// each y-coordinate is replaced by an ECIES ciphertext byte string. Salt is
// populated only when the share was encrypted with a passphrase-derived
// key (see crypt.NewFromPassphrase); it is empty in random-key and
// hex-key mode.
type EncryptedSecretShare struct {
	Index     uint64
	Threshold uint64
	Total     uint64
	Shares    [][]byte
	Salt      []byte
}

// MarshalJSON encodes an EncryptedSecretShare in the reference wire format,
// plus the additive "salt" field (hex-encoded, omitted when empty).
func (s EncryptedSecretShare) MarshalJSON() ([]byte, error) {
	index, err := shamir.EncodeUintJSON(s.Index)
	if err != nil {
		return nil, err
	}
	threshold, err := shamir.EncodeUintJSON(s.Threshold)
	if err != nil {
		return nil, err
	}
	total, err := shamir.EncodeUintJSON(s.Total)
	if err != nil {
		return nil, err
	}
	// Each ciphertext is written as an array of byte values rather than
	// encoding/json's default base64 string for []byte.
	byteArrays := make([][]uint16, len(s.Shares))
	for i, ct := range s.Shares {
		byteArrays[i] = make([]uint16, len(ct))
		for j, b := range ct {
			byteArrays[i][j] = uint16(b)
		}
	}
	shares, err := json.Marshal(byteArrays)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{
		"index":     index,
		"threshold": threshold,
		"total":     total,
		"shares":    shares,
	}
	if len(s.Salt) > 0 {
		saltJSON, err := json.Marshal(hex.EncodeToString(s.Salt))
		if err != nil {
			return nil, err
		}
		fields["salt"] = saltJSON
	}

	return json.Marshal(fields)
}

// UnmarshalJSON decodes an EncryptedSecretShare from the reference wire
// format.
func (s *EncryptedSecretShare) UnmarshalJSON(data []byte) error {
	var raw struct {
		Index     json.RawMessage `json:"index"`
		Threshold json.RawMessage `json:"threshold"`
		Total     json.RawMessage `json:"total"`
		Shares    [][]byte        `json:"shares"`
		Salt      *string         `json:"salt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("share: decoding encrypted secret share: %w", err)
	}

	index, err := shamir.DecodeUintJSON(raw.Index)
	if err != nil {
		return fmt.Errorf("share: decoding index: %w", err)
	}
	threshold, err := shamir.DecodeUintJSON(raw.Threshold)
	if err != nil {
		return fmt.Errorf("share: decoding threshold: %w", err)
	}
	total, err := shamir.DecodeUintJSON(raw.Total)
	if err != nil {
		return fmt.Errorf("share: decoding total: %w", err)
	}

	s.Index = index
	s.Threshold = threshold
	s.Total = total
	s.Shares = raw.Shares
	s.Salt = nil
	if raw.Salt != nil {
		decoded, err := hex.DecodeString(*raw.Salt)
		if err != nil {
			return fmt.Errorf("share: decoding salt: %w", err)
		}
		s.Salt = decoded
	}
	return nil
}

// Encrypt produces the EncryptedSecretShare form of s, encrypting every
// y-coordinate's little-endian magnitude bytes with c. The little-endian
// encoding matches the reference implementation's share.to_bytes_le() and
// is required for interoperability with Rust-produced encrypted shares.
func (s SecretShare) Encrypt(c *crypt.Crypt) (EncryptedSecretShare, error) {
	ciphertexts := make([][]byte, len(s.Shares))
	for i := range s.Shares {
		ct, err := c.Encrypt(s.Shares[i].LittleEndianBytes())
		if err != nil {
			return EncryptedSecretShare{}, fmt.Errorf("share: encrypting position %d: %w", i, err)
		}
		ciphertexts[i] = ct
	}
	return EncryptedSecretShare{
		Index:     s.Index,
		Threshold: s.Threshold,
		Total:     s.Total,
		Shares:    ciphertexts,
		Salt:      c.Salt(),
	}, nil
}

// Decrypt reverses Encrypt, decrypting every ciphertext y-coordinate with c
// and parsing the plaintext bytes as an unsigned little-endian magnitude.
func (s EncryptedSecretShare) Decrypt(c *crypt.Crypt) (SecretShare, error) {
	values := make([]shamir.Fn, len(s.Shares))
	for i, ct := range s.Shares {
		pt, err := c.Decrypt(ct)
		if err != nil {
			return SecretShare{}, fmt.Errorf("share: decrypting position %d: %w", i, err)
		}
		values[i] = shamir.NewFnFromLittleEndianBytes(pt)
	}
	return SecretShare{
		Index:     s.Index,
		Threshold: s.Threshold,
		Total:     s.Total,
		Shares:    values,
	}, nil
}
