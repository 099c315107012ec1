package share

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glottologist/seedmixer/crypt"
)

// DefaultPrefix is the share file name prefix used when the caller does not
// override it.
const DefaultPrefix = "secret"

// Storer writes share envelopes produced by a mix operation to some
// destination. FileStorer and EncryptedFileStorer are the two provided
// implementations, mirroring the Collector split.
type Storer interface {
	Store(dir, prefix string, shares map[uint64]SecretShare) error
}

// FileStorer writes one plaintext file per share, named
// "{prefix}_share_{index}_of_{total}.json".
type FileStorer struct{}

// Store implements Storer.
func (FileStorer) Store(dir, prefix string, shares map[uint64]SecretShare) error {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	for _, s := range shares {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("share: marshalling share %d: %w", s.Index, err)
		}
		name := fmt.Sprintf("%s_share_%d_of_%d.json", prefix, s.Index, s.Total)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			return fmt.Errorf("share: writing %s: %w", name, err)
		}
	}
	return nil
}

// EncryptedFileStorer writes one encrypted file per share, named
// "{prefix}_enc_share_{index}_of_{total}.json". A single Crypt is generated
// per Store call (not per share) so that every share in the batch is
// encrypted under the same key: HexKey and Passphrase select the key
// construction mode; if neither is set, a fresh random keypair is
// generated and, only in that mode, its secret key is additionally written
// to "{prefix}_enc_share_key.json".
type EncryptedFileStorer struct {
	HexKey     string
	Passphrase string
}

// Store implements Storer.
func (c EncryptedFileStorer) Store(dir, prefix string, shares map[uint64]SecretShare) error {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	cr, writeKeyFile, err := c.newCrypt()
	if err != nil {
		return fmt.Errorf("share: constructing encryption key: %w", err)
	}

	for _, s := range shares {
		enc, err := s.Encrypt(cr)
		if err != nil {
			return fmt.Errorf("share: encrypting share %d: %w", s.Index, err)
		}
		data, err := json.Marshal(enc)
		if err != nil {
			return fmt.Errorf("share: marshalling share %d: %w", s.Index, err)
		}
		name := fmt.Sprintf("%s_enc_share_%d_of_%d.json", prefix, s.Index, s.Total)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			return fmt.Errorf("share: writing %s: %w", name, err)
		}
	}

	if writeKeyFile {
		keyData, err := json.Marshal(cr.SecretKeyHex())
		if err != nil {
			return fmt.Errorf("share: marshalling key file: %w", err)
		}
		name := fmt.Sprintf("%s_enc_share_key.json", prefix)
		if err := os.WriteFile(filepath.Join(dir, name), keyData, 0o600); err != nil {
			return fmt.Errorf("share: writing %s: %w", name, err)
		}
	}

	return nil
}

func (c EncryptedFileStorer) newCrypt() (*crypt.Crypt, bool, error) {
	switch {
	case c.Passphrase != "":
		salt, err := crypt.NewSalt()
		if err != nil {
			return nil, false, err
		}
		cr, err := crypt.NewFromPassphrase(c.Passphrase, salt)
		return cr, false, err
	case c.HexKey != "":
		cr, err := crypt.NewFromHex(c.HexKey)
		return cr, false, err
	default:
		cr, err := crypt.New()
		return cr, true, err
	}
}
