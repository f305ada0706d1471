// Package validate は復号結果がもっともらしい平文かどうかを判定します。
//
// 判定は次のいずれかを満たせば成立します。
//   - 既知の平文マジックで始まる
//   - UTF-16LE の英字の連なり (ワイド文字ラン) が一定数以上ある
//   - 印字可能な ASCII の割合がしきい値を超える
package validate

import (
	"fmt"

	"github.com/shiroemons/go-touchline/pkg/keyring"
)

// Validator は平文判定のインターフェース
type Validator interface {
	IsKnownSignature(buf []byte) bool
	IsPlausible(buf []byte) bool
}

// Thresholds は判定のしきい値
type Thresholds struct {
	ScanLimit      int     // 走査する先頭バイト数
	MinWideRuns    int     // 成立に必要なワイド文字ランの数
	MinRunLength   int     // 1 つのランとみなす最小文字数
	PrintableRatio float64 // 印字可能バイトの割合がこれを超えれば成立
}

// プロファイル名
const (
	ProfileDefault = "default"
	ProfileStrict  = "strict"
)

// DefaultThresholds は既定のしきい値を返します
func DefaultThresholds() Thresholds {
	return Thresholds{
		ScanLimit:      50000,
		MinWideRuns:    3,
		MinRunLength:   3,
		PrintableRatio: 0.30,
	}
}

// StrictThresholds は印字可能率を厳しくしたしきい値を返します。
// 一様乱数の印字可能率は約 0.371 のため、既定値では誤判定が起こります。
func StrictThresholds() Thresholds {
	th := DefaultThresholds()
	th.PrintableRatio = 0.75
	return th
}

// Profile はプロファイル名からしきい値を返します
func Profile(name string) (Thresholds, error) {
	switch name {
	case "", ProfileDefault:
		return DefaultThresholds(), nil
	case ProfileStrict:
		return StrictThresholds(), nil
	}
	return Thresholds{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Validate はしきい値の値域を検証します
func (th Thresholds) Validate() error {
	switch {
	case th.ScanLimit <= 0:
		return fmt.Errorf("%w: scan_limit=%d", ErrInvalidThresholds, th.ScanLimit)
	case th.MinWideRuns <= 0:
		return fmt.Errorf("%w: min_wide_runs=%d", ErrInvalidThresholds, th.MinWideRuns)
	case th.MinRunLength <= 0:
		return fmt.Errorf("%w: min_run_length=%d", ErrInvalidThresholds, th.MinRunLength)
	case th.PrintableRatio < 0 || th.PrintableRatio >= 1:
		return fmt.Errorf("%w: printable_ratio=%g", ErrInvalidThresholds, th.PrintableRatio)
	}
	return nil
}

// Report は判定に使った集計値
type Report struct {
	Signature bool
	Scanned   int
	WideRuns  int
	Printable int
	Ratio     float64
	Plausible bool
}

// Heuristic はワイド文字ランと印字可能率による Validator 実装です
type Heuristic struct {
	reg *keyring.Registry
	th  Thresholds
}

var _ Validator = (*Heuristic)(nil)

// New は Heuristic を生成します。reg が nil の場合は既定のレジストリを使います。
func New(reg *keyring.Registry, th Thresholds) *Heuristic {
	if reg == nil {
		reg = keyring.Default()
	}
	return &Heuristic{reg: reg, th: th}
}

// Default は既定のレジストリとしきい値の Heuristic を返します
func Default() *Heuristic {
	return New(nil, DefaultThresholds())
}

// Thresholds は使用中のしきい値を返します
func (h *Heuristic) Thresholds() Thresholds {
	return h.th
}

// IsKnownSignature は buf が既知の平文マジックで始まるかを返します
func (h *Heuristic) IsKnownSignature(buf []byte) bool {
	return h.reg.IsKnownSignature(buf)
}

// IsPlausible は buf がもっともらしい平文かを返します
func (h *Heuristic) IsPlausible(buf []byte) bool {
	if h.IsKnownSignature(buf) {
		return true
	}
	n := h.scanLength(buf)
	if n == 0 {
		return false
	}
	if h.countWideRuns(buf[:n], h.th.MinWideRuns) >= h.th.MinWideRuns {
		return true
	}
	return ratio(countPrintable(buf[:n]), n) > h.th.PrintableRatio
}

// Classify は判定に使う集計値をすべて計算して返します。
// Plausible の値は IsPlausible と一致します。
func (h *Heuristic) Classify(buf []byte) Report {
	n := h.scanLength(buf)
	r := Report{
		Signature: h.IsKnownSignature(buf),
		Scanned:   n,
		WideRuns:  h.countWideRuns(buf[:n], 0),
		Printable: countPrintable(buf[:n]),
	}
	r.Ratio = ratio(r.Printable, n)
	r.Plausible = r.Signature || (n > 0 && (r.WideRuns >= h.th.MinWideRuns || r.Ratio > h.th.PrintableRatio))
	return r
}

func (h *Heuristic) scanLength(buf []byte) int {
	if len(buf) < h.th.ScanLimit {
		return len(buf)
	}
	return h.th.ScanLimit
}

// countWideRuns はワイド文字ランを数えます。limit > 0 ならその数で打ち切ります。
func (h *Heuristic) countWideRuns(b []byte, limit int) int {
	runs := 0
	n := len(b)
	for i := 0; i+1 < n; {
		if isUpper(b[i]) && b[i+1] == 0 {
			k := 0
			for i+2*k+1 < n && b[i+2*k+1] == 0 && isLetter(b[i+2*k]) {
				k++
			}
			if k >= h.th.MinRunLength {
				runs++
				if limit > 0 && runs >= limit {
					return runs
				}
				i += 2 * k
				continue
			}
		}
		i++
	}
	return runs
}

func countPrintable(b []byte) int {
	c := 0
	for _, v := range b {
		if v >= 0x20 && v <= 0x7E {
			c++
		}
	}
	return c
}

func ratio(count, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(count) / float64(n)
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c byte) bool {
	return isUpper(c) || (c >= 'a' && c <= 'z') || c == ' '
}
