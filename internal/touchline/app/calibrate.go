package app

import (
	"context"
	"fmt"
	"sync"
	"text/tabwriter"

	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/validate"
)

// calibrationProfiles は較正で比較するプロファイル
var calibrationProfiles = []string{validate.ProfileDefault, validate.ProfileStrict}

// ProfileStats は 1 つのプロファイルでの判定結果の集計
type ProfileStats struct {
	Profile        string  `json:"profile"`
	PrintableRatio float64 `json:"printable_ratio"`
	Plausible      int     `json:"plausible"`
	Rate           float64 `json:"false_positive_rate"`
}

// CalibrationReport は乱数バッファに対する判定の集計
type CalibrationReport struct {
	Samples   int            `json:"samples"`
	Size      int            `json:"size"`
	Seed      uint32         `json:"seed"`
	MeanRatio float64        `json:"mean_printable_ratio"`
	MinRatio  float64        `json:"min_printable_ratio"`
	MaxRatio  float64        `json:"max_printable_ratio"`
	Profiles  []ProfileStats `json:"profiles"`
}

// 較正ジョブ
type calibrationJob struct {
	index int
	seed  uint32
}

// 較正結果
type calibrationResult struct {
	index     int
	ratio     float64
	plausible []bool // calibrationProfiles と同じ順序
}

// 並列較正に使用するコンテキスト
type calibrationContext struct {
	size       int
	heuristics []*validate.Heuristic
	jobs       chan calibrationJob
	results    chan calibrationResult
	wg         sync.WaitGroup
}

// Calibrate は一様乱数のバッファを各プロファイルで判定し、誤判定率を出力します
func (a *App) Calibrate(ctx context.Context) error {
	r, err := a.calibrate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "サンプル: %d 件 × %d バイト (seed=%d)\n", r.Samples, r.Size, r.Seed)
	fmt.Fprintf(a.out, "印字可能率: 平均 %.4f 最小 %.4f 最大 %.4f\n", r.MeanRatio, r.MinRatio, r.MaxRatio)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "プロファイル\tしきい値\t誤判定\t誤判定率")
	for _, p := range r.Profiles {
		fmt.Fprintf(w, "%s\t%.2f\t%d/%d\t%.4f\n", p.Profile, p.PrintableRatio, p.Plausible, r.Samples, p.Rate)
	}
	return w.Flush()
}

// calibrate は Samples 個の乱数バッファを Workers 個のワーカーで判定して集計します。
// i 番目のバッファは seed+i で初期化した MT19937 の出力です。
func (a *App) calibrate(ctx context.Context) (CalibrationReport, error) {
	samples, size, numWorkers := a.config.Samples, a.config.SampleSize, a.config.Workers
	if samples <= 0 || size <= 0 {
		return CalibrationReport{}, fmt.Errorf("%w: samples=%d size=%d", ErrInvalidCalibration, samples, size)
	}
	if numWorkers <= 0 {
		numWorkers = 4 // デフォルトのワーカー数
	}

	report := CalibrationReport{Samples: samples, Size: size, Seed: a.config.Seed, MinRatio: 1}
	reg := a.decrypter.Registry()
	cc := &calibrationContext{
		size:    size,
		jobs:    make(chan calibrationJob, numWorkers*2),
		results: make(chan calibrationResult, numWorkers*2),
	}
	for _, name := range calibrationProfiles {
		th, err := validate.Profile(name)
		if err != nil {
			return CalibrationReport{}, err
		}
		// スキャン上限はバッファ全体を覆うように広げる
		if th.ScanLimit < size {
			th.ScanLimit = size
		}
		cc.heuristics = append(cc.heuristics, validate.New(reg, th))
		report.Profiles = append(report.Profiles, ProfileStats{Profile: name, PrintableRatio: th.PrintableRatio})
	}

	// ワーカーを起動
	for i := 0; i < numWorkers; i++ {
		cc.wg.Add(1)
		go calibrationWorker(ctx, cc)
	}

	// 結果処理用のgoroutineを起動
	var sum float64
	var done int
	resultDone := make(chan struct{})
	go func() {
		for res := range cc.results {
			done++
			sum += res.ratio
			report.MinRatio = min(report.MinRatio, res.ratio)
			report.MaxRatio = max(report.MaxRatio, res.ratio)
			for i, ok := range res.plausible {
				if ok {
					report.Profiles[i].Plausible++
				}
			}
		}
		close(resultDone)
	}()

	// ジョブを投入
produce:
	for i := 0; i < samples; i++ {
		select {
		case <-ctx.Done():
			break produce
		case cc.jobs <- calibrationJob{index: i, seed: a.config.Seed + uint32(i)}:
		}
	}
	close(cc.jobs)
	cc.wg.Wait()
	close(cc.results)
	<-resultDone

	if err := ctx.Err(); err != nil {
		return CalibrationReport{}, err
	}
	a.logger.Printf("%d 件のサンプルを %d ワーカーで判定しました", done, numWorkers)

	report.MeanRatio = sum / float64(samples)
	for i := range report.Profiles {
		report.Profiles[i].Rate = float64(report.Profiles[i].Plausible) / float64(samples)
	}
	return report, nil
}

// 較正ワーカー
func calibrationWorker(ctx context.Context, cc *calibrationContext) {
	defer cc.wg.Done()

	buf := make([]byte, cc.size)
	for job := range cc.jobs {
		if ctx.Err() != nil {
			continue
		}
		crypto.NewRNGMT(job.seed).Fill(buf)

		res := calibrationResult{index: job.index, plausible: make([]bool, len(cc.heuristics))}
		for i, h := range cc.heuristics {
			rep := h.Classify(buf)
			res.ratio = rep.Ratio
			res.plausible[i] = rep.Plausible
		}
		cc.results <- res
	}
}
