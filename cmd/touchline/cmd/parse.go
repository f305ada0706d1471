package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-touchline/internal/touchline/config"
)

var (
	parseJSON   bool
	parseTSV    bool
	parseShape  string
	parseOutput string
)

// parseCmd は選手一覧を表示します
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "選手データを一覧表示する",
	Long: `ファイルを復号してコンテナ形式を判定し、選手データを表示します。

例:
  touchline parse EDIT00000000
  touchline parse option.bin --shape option --json
  touchline parse EDIT00000000 --tsv -o players.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, func(cfg *config.Config) {
			cfg.InputPath = args[0]
			cfg.OutputPath = parseOutput
			cfg.JSON = parseJSON
			cfg.TSV = parseTSV
			cfg.ShapeHint = parseShape
		})
		if err != nil {
			return err
		}
		return a.Parse(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "JSON で出力")
	parseCmd.Flags().BoolVar(&parseTSV, "tsv", false, "UTF-8 BOM 付き TSV ファイルに出力")
	parseCmd.Flags().StringVar(&parseShape, "shape", "", "コンテナ形式 (edit / option)")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "TSV の出力ファイル")
	parseCmd.MarkFlagsMutuallyExclusive("json", "tsv")
}
