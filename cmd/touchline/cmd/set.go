package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-touchline/internal/touchline/config"
)

var (
	setID     uint32
	setField  string
	setValue  int
	setShape  string
	setOutput string
)

// setCmd は選手のフィールドを書き換えます
var setCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "選手のフィールドを書き換える",
	Long: `ファイルを復号し、指定した選手のフィールドを書き換えてから
元と同じバージョン・ワード順序・圧縮形式で書き出します。

例:
  touchline set EDIT00000000 --id 10 --field defense --value 80`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, func(cfg *config.Config) {
			cfg.InputPath = args[0]
			cfg.OutputPath = setOutput
			cfg.PlayerID = setID
			cfg.Field = setField
			cfg.Value = setValue
			cfg.ShapeHint = setShape
		})
		if err != nil {
			return err
		}
		return a.Set(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().Uint32Var(&setID, "id", 0, "選手 ID")
	setCmd.Flags().StringVar(&setField, "field", "", "フィールド名 (age, height, attack など)")
	setCmd.Flags().IntVar(&setValue, "value", 0, "書き込む値")
	setCmd.Flags().StringVar(&setShape, "shape", "", "コンテナ形式 (edit / option)")
	setCmd.Flags().StringVarP(&setOutput, "output", "o", "", "出力ファイル")
	_ = setCmd.MarkFlagRequired("id")
	_ = setCmd.MarkFlagRequired("field")
	_ = setCmd.MarkFlagRequired("value")
}
