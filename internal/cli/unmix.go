package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glottologist/seedmixer/mixer"
	"github.com/glottologist/seedmixer/share"
	"github.com/glottologist/seedmixer/words"
)

// NewUnmixCommand returns the "unmix" command: it collects threshold share
// files, reconstructs the obfuscated seed, and reverses the PIN shift.
func NewUnmixCommand() *cobra.Command {
	var (
		lang             string
		filePaths        []string
		pinFlag          string
		decryptionKey    string
		decryptionPhrase string
		terminal         bool
		overrideFileName string
	)

	cmd := &cobra.Command{
		Use:   "unmix",
		Short: "Reconstruct a mnemonic from threshold share files",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePIN(pinFlag)
			if err != nil {
				return fmt.Errorf("unmix: %w", err)
			}

			collector := collectorFor(decryptionKey, decryptionPhrase)
			shareMap, err := collector.Collect(filePaths)
			if err != nil {
				return fmt.Errorf("unmix: %w", err)
			}

			s, err := mixer.Unmix(shareMap, p)
			if err != nil {
				return fmt.Errorf("unmix: %w", err)
			}

			wl := words.Load(words.ParseLanguage(lang))
			mnemonic, err := s.Words(wl)
			if err != nil {
				return fmt.Errorf("unmix: %w", err)
			}

			if terminal {
				fmt.Println(strings.Join(mnemonic, " "))
				return nil
			}

			name := overrideFileName
			if name == "" {
				name = "mnemonic.txt"
			}
			return os.WriteFile(name, []byte(strings.Join(mnemonic, " ")+"\n"), 0o600)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "english", "mnemonic language")
	cmd.Flags().StringSliceVar(&filePaths, "file-path", nil, "share files to read (repeatable)")
	cmd.Flags().StringVar(&pinFlag, "pin", "", "PIN digits, e.g. 1234")
	cmd.Flags().StringVar(&decryptionKey, "decryption-key", "", "hex-encoded secret key for encrypted shares")
	cmd.Flags().StringVar(&decryptionPhrase, "decryption-phrase", "", "passphrase for encrypted shares")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "print the reconstructed mnemonic to stdout instead of writing a file")
	cmd.Flags().StringVar(&overrideFileName, "override-file-name", "", "output file name for the reconstructed mnemonic")
	return cmd
}

func collectorFor(decryptionKey, decryptionPhrase string) share.Collector {
	if decryptionKey != "" || decryptionPhrase != "" {
		return share.EncryptedFileCollector{HexKey: decryptionKey, Passphrase: decryptionPhrase}
	}
	return share.FileCollector{}
}
