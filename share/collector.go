package share

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glottologist/seedmixer/crypt"
)

// Collector reads share envelopes from some source and returns them keyed
// by participant index. Per the design notes, the "where does a share come
// from" polymorphism is modelled as a closed set of implementations rather
// than an inheritance hierarchy: FileCollector for plaintext files and
// EncryptedFileCollector for encrypted files are the two provided here.
type Collector interface {
	Collect(paths []string) (map[uint64]SecretShare, error)
}

// FileCollector reads plaintext SecretShare envelopes from files.
type FileCollector struct{}

// Collect implements Collector. If two input files carry the same share
// index, the map ends up with fewer entries than len(paths) and the whole
// collection is rejected, matching the reference FileShareCollector's
// behavior of treating a duplicate index as a collection failure.
func (FileCollector) Collect(paths []string) (map[uint64]SecretShare, error) {
	out := make(map[uint64]SecretShare, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("share: reading %s: %w", p, err)
		}
		var s SecretShare
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("share: parsing %s: %w", p, err)
		}
		out[s.Index] = s
	}
	if len(out) != len(paths) {
		return nil, fmt.Errorf("share: expected %d distinct share indices, got %d", len(paths), len(out))
	}
	return out, nil
}

// EncryptedFileCollector reads encrypted share envelopes from files and
// decrypts every y-coordinate using a Crypt constructed from the given
// settings (hex key or passphrase).
type EncryptedFileCollector struct {
	// HexKey, if non-empty, is used to reconstruct the decryption Crypt.
	HexKey string
	// Passphrase, if non-empty, is used instead of HexKey. The salt is
	// read per-file from each envelope rather than supplied by the
	// caller, since mix generates one salt per invocation and stores it
	// in every share it writes.
	Passphrase string
}

// Collect implements Collector.
func (c EncryptedFileCollector) Collect(paths []string) (map[uint64]SecretShare, error) {
	out := make(map[uint64]SecretShare, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("share: reading %s: %w", p, err)
		}
		var enc EncryptedSecretShare
		if err := json.Unmarshal(data, &enc); err != nil {
			return nil, fmt.Errorf("share: parsing %s: %w", p, err)
		}

		cr, err := c.cryptFor(enc)
		if err != nil {
			return nil, fmt.Errorf("share: constructing decryption key for %s: %w", p, err)
		}

		s, err := enc.Decrypt(cr)
		if err != nil {
			return nil, fmt.Errorf("share: decrypting %s: %w", p, err)
		}
		out[s.Index] = s
	}
	if len(out) != len(paths) {
		return nil, fmt.Errorf("share: expected %d distinct share indices, got %d", len(paths), len(out))
	}
	return out, nil
}

func (c EncryptedFileCollector) cryptFor(enc EncryptedSecretShare) (*crypt.Crypt, error) {
	if c.Passphrase != "" {
		if len(enc.Salt) == 0 {
			return nil, fmt.Errorf("share: envelope has no salt but a passphrase was supplied")
		}
		return crypt.NewFromPassphrase(c.Passphrase, enc.Salt)
	}
	return crypt.NewFromHex(c.HexKey)
}
