package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-touchline/internal/touchline/config"
)

var (
	calibrateSamples int
	calibrateSize    int
	calibrateSeed    uint32
	calibrateWorkers int
)

// calibrateCmd は平文判定の誤判定率を測定します
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "乱数データに対する平文判定の誤判定率を測定する",
	Long: `MT19937 で生成した一様乱数のバッファを各プロファイルで判定し、
平文と誤判定される割合を表示します。

例:
  touchline calibrate --samples 1000 --size 8192 --seed 2021`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, func(cfg *config.Config) {
			cfg.Samples = calibrateSamples
			cfg.SampleSize = calibrateSize
			cfg.Seed = calibrateSeed
			cfg.Workers = calibrateWorkers
		})
		if err != nil {
			return err
		}
		return a.Calibrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	d := config.Default()
	calibrateCmd.Flags().IntVar(&calibrateSamples, "samples", d.Samples, "サンプル数")
	calibrateCmd.Flags().IntVar(&calibrateSize, "size", d.SampleSize, "1 サンプルのバイト数")
	calibrateCmd.Flags().Uint32Var(&calibrateSeed, "seed", d.Seed, "最初のサンプルのシード")
	calibrateCmd.Flags().IntVarP(&calibrateWorkers, "workers", "w", d.Workers, "ワーカー数")
}
