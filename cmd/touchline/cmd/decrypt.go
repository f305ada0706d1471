package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-touchline/internal/touchline/config"
)

var decryptOutput string

// decryptCmd はファイルを復号して保存します
var decryptCmd = &cobra.Command{
	Use:   "decrypt <file>",
	Short: "エディットデータを復号する",
	Long: `既知の鍵候補と XOR 難読化を優先順に試し、平文と判定できた結果を保存します。
圧縮されていた場合は展開した内容を保存します。

例:
  touchline decrypt EDIT00000000 -o EDIT00000000.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, func(cfg *config.Config) {
			cfg.InputPath = args[0]
			cfg.OutputPath = decryptOutput
		})
		if err != nil {
			return err
		}
		return a.Decrypt(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "出力ファイル")
}
