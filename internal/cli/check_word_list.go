package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glottologist/seedmixer/words"
)

// NewCheckWordListCommand returns the "check-word-list" command, which
// prints the word at a given zero-based position in a language's list.
func NewCheckWordListCommand() *cobra.Command {
	var lang string
	var position uint16

	cmd := &cobra.Command{
		Use:   "check-word-list",
		Short: "Print the word at a given position in a mnemonic word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			wl := words.Load(words.ParseLanguage(lang))
			word, err := wl.LookupWord(position)
			if err != nil {
				return err
			}
			fmt.Println(word)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "english", "mnemonic language")
	cmd.Flags().Uint16Var(&position, "position", 0, "zero-based word position")
	return cmd
}
