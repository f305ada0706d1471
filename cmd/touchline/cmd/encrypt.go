package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-touchline/internal/touchline/config"
)

var (
	encryptLabel  string
	encryptOrder  string
	encryptOutput string
)

// encryptCmd は平文を指定バージョンの鍵で暗号化します
var encryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "平文のデータを暗号化する",
	Long: `平文のデータを --label で指定したバージョンの鍵で暗号化します。
8 バイトに満たない末尾はそのまま残ります。

例:
  touchline encrypt EDIT00000000.bin --label PES2021 --order be`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, func(cfg *config.Config) {
			cfg.InputPath = args[0]
			cfg.OutputPath = encryptOutput
			cfg.Label = encryptLabel
			cfg.Order = encryptOrder
		})
		if err != nil {
			return err
		}
		return a.Encrypt(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVar(&encryptLabel, "label", "", "バージョンのラベル (touchline keys で確認)")
	encryptCmd.Flags().StringVar(&encryptOrder, "order", "be", "ワード順序 (be / le / mixed)")
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "出力ファイル")
	_ = encryptCmd.MarkFlagRequired("label")
}
