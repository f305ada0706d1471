// Package cmd は touchline のサブコマンドを定義します
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-touchline/internal/touchline/app"
	"github.com/shiroemons/go-touchline/internal/touchline/config"
)

// rootCmd はサブコマンドなしで呼ばれた場合のコマンド
var rootCmd = &cobra.Command{
	Use:   "touchline",
	Short: "エディットデータの復号・解析ツール",
	Long: `touchline はサッカーゲームのエディットデータ・オプションファイルを
既知の鍵候補で復号し、選手データの一覧表示や書き換えを行います。`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute はルートコマンドを実行します。main.main から一度だけ呼ばれます。
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "設定ファイル (YAML)")
	flags.BoolP("debug", "d", false, "デバッグ情報を表示")
	flags.Bool("strict", false, "印字可能率のしきい値を厳しくする")
	flags.String("output-dir", "", "出力先ディレクトリ (既定は入力ファイルと同じ場所)")
}

// loadConfig は設定ファイルを読み込み、指定されたグローバルフラグで上書きします
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("debug") {
		cfg.DebugMode, _ = cmd.Flags().GetBool("debug")
	}
	cfg.Strict, _ = cmd.Flags().GetBool("strict")
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	return cfg, nil
}

// newApp は設定を読み込み、apply で個別の値を設定してから App を生成します
func newApp(cmd *cobra.Command, apply func(cfg *config.Config)) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if apply != nil {
		apply(cfg)
	}
	return app.NewWithOptions(cfg, app.Options{Output: cmd.OutOrStdout()})
}
