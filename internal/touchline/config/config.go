// Package config は touchline コマンドの設定管理を行います
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/layout"
	"github.com/shiroemons/go-touchline/pkg/validate"
)

const Version = "0.1.0"

// ErrInvalidConfig は設定値が不正な場合のエラー
var ErrInvalidConfig = errors.New("設定が不正です")

// Config はアプリケーションの設定を保持します
type Config struct {
	DebugMode bool            `yaml:"debug"`
	OutputDir string          `yaml:"output_dir"` // 空の場合は入力ファイルと同じディレクトリ
	Validator ValidatorConfig `yaml:"validator"`
	ExtraKeys []KeyConfig     `yaml:"extra_keys"`

	// 以下はコマンドライン引数からのみ設定されます
	InputPath  string `yaml:"-"`
	OutputPath string `yaml:"-"`
	Strict     bool   `yaml:"-"`
	JSON       bool   `yaml:"-"`
	TSV        bool   `yaml:"-"`
	ShapeHint  string `yaml:"-"`
	Label      string `yaml:"-"`
	Order      string `yaml:"-"`
	PlayerID   uint32 `yaml:"-"`
	Field      string `yaml:"-"`
	Value      int    `yaml:"-"`
	Samples    int    `yaml:"-"`
	SampleSize int    `yaml:"-"`
	Seed       uint32 `yaml:"-"`
	Workers    int    `yaml:"-"`
}

// ValidatorConfig は平文判定の設定
type ValidatorConfig struct {
	Profile        string   `yaml:"profile"`
	PrintableRatio *float64 `yaml:"printable_ratio"`
	ScanLimit      int      `yaml:"scan_limit"`
}

// KeyConfig は追加の鍵候補
type KeyConfig struct {
	Label    string `yaml:"label"`
	KeyHex   string `yaml:"key_hex"`
	Schedule string `yaml:"schedule"`
	Shape    string `yaml:"shape"`
}

// Default はデフォルトの設定を返します
func Default() *Config {
	return &Config{
		Validator:  ValidatorConfig{Profile: validate.ProfileDefault},
		Order:      crypto.OrderBigEndian.String(),
		Samples:    200,
		SampleSize: 4096,
		Seed:       5489,
		Workers:    4,
	}
}

// Load は YAML の設定ファイルを読み込み、デフォルト値に重ねて返します
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルを読み込めません: %w", err)
	}
	return Parse(data)
}

// Parse は YAML の内容をデフォルト値に重ねて返します
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Thresholds は判定しきい値を返します。--strict はプロファイルより優先されます。
func (c *Config) Thresholds() (validate.Thresholds, error) {
	profile := c.Validator.Profile
	if c.Strict {
		profile = validate.ProfileStrict
	}
	th, err := validate.Profile(profile)
	if err != nil {
		return validate.Thresholds{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Validator.PrintableRatio != nil && !c.Strict {
		th.PrintableRatio = *c.Validator.PrintableRatio
	}
	if c.Validator.ScanLimit > 0 {
		th.ScanLimit = c.Validator.ScanLimit
	}
	if err := th.Validate(); err != nil {
		return validate.Thresholds{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return th, nil
}

// Registry は既定の鍵候補に extra_keys を追加したレジストリを返します
func (c *Config) Registry() (*keyring.Registry, error) {
	if len(c.ExtraKeys) == 0 {
		return keyring.Default(), nil
	}
	extra := make([]keyring.Candidate, 0, len(c.ExtraKeys))
	for i, k := range c.ExtraKeys {
		cand, err := k.Candidate()
		if err != nil {
			return nil, fmt.Errorf("%w: extra_keys[%d]: %w", ErrInvalidConfig, i, err)
		}
		extra = append(extra, cand)
	}
	return keyring.Default().With(extra...)
}

// Candidate は KeyConfig を鍵候補に変換します
func (k KeyConfig) Candidate() (keyring.Candidate, error) {
	key, err := keyring.ParseKeyHex(k.KeyHex)
	if err != nil {
		return keyring.Candidate{}, err
	}
	schedule, err := keyring.ParseSchedule(k.Schedule)
	if err != nil {
		return keyring.Candidate{}, err
	}
	shape := layout.ShapeEdit
	if k.Shape != "" {
		id, ok := layout.ParseShapeID(k.Shape)
		if !ok {
			return keyring.Candidate{}, fmt.Errorf("%w: %q", keyring.ErrUnknownShape, k.Shape)
		}
		shape = id
	}
	return keyring.Candidate{Label: k.Label, Key: key, Schedule: schedule, Shape: shape}, nil
}

// ByteOrder は --order の値を返します
func (c *Config) ByteOrder() (crypto.ByteOrder, error) {
	o, err := crypto.ParseByteOrder(c.Order)
	if err != nil {
		return crypto.OrderBigEndian, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return o, nil
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	out     io.Writer
}

// NewDebugLogger は標準エラー出力に書き込む DebugLogger を作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerTo(enabled, os.Stderr)
}

// NewDebugLoggerTo は出力先を指定して DebugLogger を作成します
func NewDebugLoggerTo(enabled bool, out io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: out}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(d.out, format, a...)
		if n := len(format); n == 0 || format[n-1] != '\n' {
			fmt.Fprintln(d.out)
		}
	}
}
