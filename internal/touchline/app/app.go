// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/shiroemons/go-touchline/internal/touchline/config"
	"github.com/shiroemons/go-touchline/internal/touchline/fileutil"
	"github.com/shiroemons/go-touchline/internal/touchline/interfaces"
	"github.com/shiroemons/go-touchline/pkg/layout"
	"github.com/shiroemons/go-touchline/pkg/record"
	"github.com/shiroemons/go-touchline/pkg/savedata"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config    *config.Config
	logger    interfaces.Logger
	fs        interfaces.FileSystem
	decrypter interfaces.Decrypter
	out       io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Decrypter  interfaces.Decrypter
	Logger     interfaces.Logger
	Output     io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) (*App, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewDebugLogger(cfg.DebugMode)
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	// デフォルトの Session を設定ファイルのしきい値と鍵候補で生成
	decrypter := opts.Decrypter
	if decrypter == nil {
		th, err := cfg.Thresholds()
		if err != nil {
			return nil, err
		}
		reg, err := cfg.Registry()
		if err != nil {
			return nil, err
		}
		s, err := savedata.NewSession(
			savedata.WithRegistry(reg),
			savedata.WithThresholds(th),
			savedata.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		decrypter = s
	}

	return &App{
		config:    cfg,
		logger:    logger,
		fs:        fs,
		decrypter: decrypter,
		out:       out,
	}, nil
}

// checkContext はコンテキストがキャンセルされていればエラーを返します
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// readInput は入力ファイルを読み込みます
func (a *App) readInput(ctx context.Context) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if a.config.InputPath == "" {
		return nil, ErrNoInput
	}
	a.logger.Printf("%s を読み込みます...", a.config.InputPath)
	return fileutil.ReadInput(a.fs, a.config.InputPath)
}

// decrypt は入力を復号し、判別できなかった場合は ErrDecryptFailed を返します
func (a *App) decrypt(ctx context.Context, data []byte) (savedata.Result, error) {
	if err := checkContext(ctx); err != nil {
		return savedata.Result{}, err
	}
	res, err := a.decrypter.Decrypt(data)
	if err != nil {
		return savedata.Result{}, err
	}
	if !res.Success {
		return res, fmt.Errorf("%w: %s (%d バイト)", ErrDecryptFailed, a.config.InputPath, len(data))
	}
	return res, nil
}

// parse は復号結果をコンテナとして解析します。--shape の指定が復号結果の形式より優先されます。
func (a *App) parse(ctx context.Context, res savedata.Result) (*record.Container, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	hint := res.Shape
	if a.config.ShapeHint != "" {
		id, ok := layout.ParseShapeID(a.config.ShapeHint)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownShapeHint, a.config.ShapeHint)
		}
		hint = id
	}

	c, err := record.ParseDetected(res.Payload, hint, a.decrypter.Registry())
	if err != nil {
		return nil, err
	}
	if len(c.Players()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPlayers, a.config.InputPath)
	}
	a.logger.Printf("%s 形式として %d 件の選手を読み込みました", c.Shape().ID, len(c.Players()))
	return c, nil
}

// outputPath は --output か、入力ファイル名から生成した出力先を返します
func (a *App) outputPath(suffix, ext string) string {
	if a.config.OutputPath != "" {
		return a.config.OutputPath
	}
	return fileutil.GenerateOutputFilename(a.config.InputPath, a.config.OutputDir, suffix, ext)
}

// save は data をファイルに保存します
func (a *App) save(path string, data []byte) error {
	if err := fileutil.WriteOutput(a.fs, path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}
	a.logger.Printf("データを %s に保存しました", path)
	return nil
}

// Decrypt は入力ファイルを復号して保存します
func (a *App) Decrypt(ctx context.Context) error {
	data, err := a.readInput(ctx)
	if err != nil {
		return err
	}
	res, err := a.decrypt(ctx, data)
	if err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	path := a.outputPath("decrypted", ".bin")
	if err := a.save(path, res.Payload); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n", describe(res))
	fmt.Fprintf(a.out, "出力: %s (%d バイト)\n", path, len(res.Payload))
	return nil
}

// ParseReport は parse コマンドの出力内容
type ParseReport struct {
	Version     string          `json:"version"`
	Strategy    string          `json:"strategy"`
	Order       string          `json:"order"`
	Compression string          `json:"compression,omitempty"`
	Header      record.Header   `json:"header"`
	Truncated   bool            `json:"truncated"`
	Players     []record.Player `json:"players"`
	Teams       []record.Team   `json:"teams,omitempty"`
}

// Parse は入力ファイルを復号・解析し、選手一覧を出力します
func (a *App) Parse(ctx context.Context) error {
	data, err := a.readInput(ctx)
	if err != nil {
		return err
	}
	res, err := a.decrypt(ctx, data)
	if err != nil {
		return err
	}
	c, err := a.parse(ctx, res)
	if err != nil {
		return err
	}

	report := newParseReport(res, c)
	switch {
	case a.config.JSON:
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(b))
	case a.config.TSV:
		path := a.outputPath("players", ".tsv")
		if err := fileutil.WriteOutputWithBOM(a.fs, path, generateTSV(report.Players)); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFile, err)
		}
		fmt.Fprintf(a.out, "出力: %s (%d 件)\n", path, len(report.Players))
	default:
		a.writeText(report)
	}
	return nil
}

func newParseReport(res savedata.Result, c *record.Container) ParseReport {
	r := ParseReport{
		Version:   res.VersionLabel,
		Strategy:  res.Strategy,
		Order:     res.Order.String(),
		Header:    c.Header(),
		Truncated: c.Truncated(),
		Players:   c.Players(),
		Teams:     c.Teams(),
	}
	if res.WasCompressed {
		r.Compression = string(res.Compression)
	}
	return r
}

// describe は復号結果を 1 行で表します
func describe(res savedata.Result) string {
	s := fmt.Sprintf("バージョン: %s (%s, %s)", res.VersionLabel, res.Strategy, res.Order)
	if res.WasCompressed {
		s += fmt.Sprintf(" 圧縮: %s", res.Compression)
	}
	return s
}

// writeText は一覧を表形式で出力します
func (a *App) writeText(r ParseReport) {
	fmt.Fprintf(a.out, "バージョン: %s (%s, %s)\n", r.Version, r.Strategy, r.Order)
	fmt.Fprintf(a.out, "形式: %s  選手: %d  チーム: %d\n", r.Header.Shape, len(r.Players), len(r.Teams))
	if r.Truncated {
		fmt.Fprintln(a.out, "警告: 上限またはデータ長により読み出しを打ち切りました")
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t名前\tPOS\t年齢\t身長\t体重\t総合")
	for _, p := range r.Players {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n", p.ID, p.Name, p.PositionName(), p.Age, p.Height, p.Weight, p.Overall)
	}
	w.Flush()
}

// generateTSV は選手一覧を TSV にします。能力値は layout.RatingNames の順に並べます。
func generateTSV(players []record.Player) string {
	var b strings.Builder
	b.WriteString("id\tname\tposition\tage\theight\tweight\toverall")
	for _, name := range layout.RatingNames {
		b.WriteString("\t" + name)
	}
	b.WriteString("\n")

	for _, p := range players {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%d\t%d\t%d\t%d", p.ID, p.Name, p.PositionName(), p.Age, p.Height, p.Weight, p.Overall)
		for _, name := range layout.RatingNames {
			v, _ := p.Rating(name)
			fmt.Fprintf(&b, "\t%d", v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Encrypt は平文ファイルを指定されたバージョンの鍵で暗号化して保存します
func (a *App) Encrypt(ctx context.Context) error {
	if a.config.Label == "" {
		return ErrNoLabel
	}
	order, err := a.config.ByteOrder()
	if err != nil {
		return err
	}
	data, err := a.readInput(ctx)
	if err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	enc, err := a.decrypter.Encrypt(data, a.config.Label, order)
	if err != nil {
		return err
	}
	path := a.outputPath("encrypted", ".bin")
	if err := a.save(path, enc); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s) で暗号化しました\n", a.config.Label, order)
	fmt.Fprintf(a.out, "出力: %s (%d バイト)\n", path, len(enc))
	return nil
}

// Set は選手のフィールドを書き換え、元と同じバージョン・圧縮形式で書き出します
func (a *App) Set(ctx context.Context) error {
	data, err := a.readInput(ctx)
	if err != nil {
		return err
	}
	res, err := a.decrypt(ctx, data)
	if err != nil {
		return err
	}
	c, err := a.parse(ctx, res)
	if err != nil {
		return err
	}

	before, ok := c.Player(a.config.PlayerID)
	if !ok {
		return fmt.Errorf("%w: id=%d", record.ErrPlayerNotFound, a.config.PlayerID)
	}
	updated, err := c.UpdatePlayer(a.config.PlayerID, a.config.Field, a.config.Value)
	if err != nil {
		return err
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	res.Payload = updated.Payload()
	out, err := a.decrypter.Export(res)
	if err != nil {
		return err
	}
	path := a.outputPath("edited", ".bin")
	if err := a.save(path, out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id=%d) の %s を %d に変更しました\n", before.Name, before.ID, a.config.Field, a.config.Value)
	fmt.Fprintf(a.out, "出力: %s (%d バイト)\n", path, len(out))
	return nil
}

// Keys は鍵候補の一覧を出力します
func (a *App) Keys() error {
	reg := a.decrypter.Registry()

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tラベル\tスケジュール\t形式\t鍵")
	for i, c := range reg.Candidates() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%x\n", i+1, c.Label, c.Schedule, c.Shape, c.CipherKey())
	}
	w.Flush()

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "平文マジック:")
	for _, s := range reg.Signatures() {
		fmt.Fprintf(a.out, "  %s\t%q (%s)\n", s.Name, s.Magic, s.Shape)
	}
	fmt.Fprintln(a.out, "XOR ストリーム定数:")
	for i, k := range reg.StreamConstants() {
		fmt.Fprintf(a.out, "  %d\t0x%08X\n", i+1, k)
	}
	return nil
}
