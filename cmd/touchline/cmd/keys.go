package cmd

import (
	"github.com/spf13/cobra"
)

// keysCmd は鍵候補の一覧を表示します
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "鍵候補と平文マジックの一覧を表示する",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, nil)
		if err != nil {
			return err
		}
		return a.Keys()
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
