package cli

import (
	"github.com/spf13/cobra"

	"github.com/glottologist/seedmixer/shred"
)

// NewShredCommand returns the "shred" command, which overwrites and
// deletes the given files.
func NewShredCommand() *cobra.Command {
	var filePaths []string

	cmd := &cobra.Command{
		Use:   "shred",
		Short: "Securely overwrite and delete files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return shred.Files(filePaths)
		},
	}

	cmd.Flags().StringSliceVar(&filePaths, "file-path", nil, "files to shred (repeatable)")
	return cmd
}
