package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glottologist/seedmixer/words"
)

// NewCheckWordIndexCommand returns the "check-word-index" command, which
// prints the zero-based position of a word in a language's list.
func NewCheckWordIndexCommand() *cobra.Command {
	var lang string
	var word string

	cmd := &cobra.Command{
		Use:   "check-word-index",
		Short: "Print the position of a word in a mnemonic word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			wl := words.Load(words.ParseLanguage(lang))
			index, err := wl.LookupIndex(word)
			if err != nil {
				return err
			}
			fmt.Println(index)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "english", "mnemonic language")
	cmd.Flags().StringVar(&word, "word", "", "word to look up")
	return cmd
}
