package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glottologist/seedmixer/mixer"
	"github.com/glottologist/seedmixer/pin"
	"github.com/glottologist/seedmixer/seed"
	"github.com/glottologist/seedmixer/share"
	"github.com/glottologist/seedmixer/words"
)

// NewMixCommand returns the "mix" command: it reads a mnemonic, obfuscates
// it with a PIN, splits it into a threshold scheme, and writes one share
// file per participant.
func NewMixCommand() *cobra.Command {
	var (
		lang             string
		filePath         string
		pinFlag          string
		shares           int
		threshold        int
		encrypt          bool
		encryptionPhrase string
		overrideFileName string
	)

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Split a mnemonic into PIN-obfuscated, Shamir-shared files",
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic, err := readMnemonic(filePath)
			if err != nil {
				return fmt.Errorf("mix: reading mnemonic: %w", err)
			}

			wl := words.Load(words.ParseLanguage(lang))
			s, err := seed.FromWords(wl, mnemonic)
			if err != nil {
				return fmt.Errorf("mix: %w", err)
			}

			p, err := parsePIN(pinFlag)
			if err != nil {
				return fmt.Errorf("mix: %w", err)
			}

			shareMap, err := mixer.Mix(s, p, shares, threshold)
			if err != nil {
				return fmt.Errorf("mix: %w", err)
			}

			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			prefix := overrideFileName
			if prefix == "" {
				prefix = share.DefaultPrefix
			}

			if encrypt {
				storer := share.EncryptedFileStorer{Passphrase: encryptionPhrase}
				if err := storer.Store(dir, prefix, shareMap); err != nil {
					return fmt.Errorf("mix: %w", err)
				}
				return nil
			}
			return (share.FileStorer{}).Store(dir, prefix, shareMap)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "english", "mnemonic language")
	cmd.Flags().StringVar(&filePath, "file-path", "", "file containing the mnemonic (reads stdin if unset)")
	cmd.Flags().StringVar(&pinFlag, "pin", "", "PIN digits, e.g. 1234")
	cmd.Flags().IntVar(&shares, "shares", 5, "total number of shares to produce")
	cmd.Flags().IntVar(&threshold, "threshold", 3, "number of shares required to reconstruct")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt each share with ECIES")
	cmd.Flags().StringVar(&encryptionPhrase, "encryption-phrase", "", "passphrase used to derive the encryption key; a random key is generated if unset")
	cmd.Flags().StringVar(&overrideFileName, "override-file-name", "", "prefix for the generated share file names")
	return cmd
}

func readMnemonic(filePath string) ([]string, error) {
	var r = os.Stdin
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []string
	for scanner.Scan() {
		out = append(out, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parsePIN(s string) (pin.PIN, error) {
	digits := make([]uint8, 0, len(s))
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			return pin.PIN{}, fmt.Errorf("pin: invalid digit %q", r)
		}
		digits = append(digits, uint8(r-'0'))
	}
	return pin.New(digits)
}
