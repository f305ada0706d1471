// Package layout はエディットデータのヘッダとレコードのレイアウト表を提供します。
//
// 各フィールドは (バイトオフセット, ビットオフセット, ビット幅) で記述され、
// (ByteOffset, ByteOffset+1) の 2 バイトをリトルエンディアンの 16 ビット窓として読み書きします。
package layout

import "fmt"

// windowBits は読み書きに使う窓のビット数
const windowBits = 16

// FieldKind はフィールドの種類
type FieldKind int

const (
	KindAttribute FieldKind = iota // 年齢・ポジションなどの属性
	KindRating                     // 能力値
)

// Field はレコード内のビットパックされた数値フィールドを表します
type Field struct {
	Name       string
	Kind       FieldKind
	ByteOffset int
	BitOffset  uint
	Width      uint
	Min        int // 書き込み時に受け付ける最小値
	Max        int // 書き込み時に受け付ける最大値
}

// Mask はフィールド幅のビットマスクを返します
func (f Field) Mask() int {
	return 1<<f.Width - 1
}

// fits はレコード長 n に対して窓が収まるかを返します
func (f Field) fits(n int) bool {
	return f.ByteOffset >= 0 && f.ByteOffset+1 < n && f.BitOffset+f.Width <= windowBits
}

// ReadBits は (b0, b1) を 16 ビット窓として bitOffset から width ビットを取り出します
func ReadBits(b0, b1 byte, bitOffset, width uint) int {
	w := uint16(b0) | uint16(b1)<<8
	return int(w>>bitOffset) & (1<<width - 1)
}

// WriteBits は ReadBits の逆操作です。窓の他のビットは保持されます。
func WriteBits(b0, b1 byte, bitOffset, width uint, v int) (byte, byte) {
	mask := uint16(1<<width-1) << bitOffset
	w := uint16(b0) | uint16(b1)<<8
	w = w&^mask | uint16(v)<<bitOffset&mask
	return byte(w), byte(w >> 8)
}

// Read はレコード rec からフィールド値を読み込みます。
// 窓がレコードに収まらない場合は false を返します。
func (f Field) Read(rec []byte) (int, bool) {
	if !f.fits(len(rec)) {
		return 0, false
	}
	return ReadBits(rec[f.ByteOffset], rec[f.ByteOffset+1], f.BitOffset, f.Width), true
}

// Write はレコード rec にフィールド値 v を書き込みます。rec はその場で変更されます。
func (f Field) Write(rec []byte, v int) error {
	if v < f.Min || v > f.Max || v > f.Mask() || v < 0 {
		return fmt.Errorf("%w: %s=%d (範囲 %d..%d)", ErrValueOutOfRange, f.Name, v, f.Min, f.Max)
	}
	if !f.fits(len(rec)) {
		return fmt.Errorf("%w: %s @0x%X", ErrFieldOutOfBounds, f.Name, f.ByteOffset)
	}
	rec[f.ByteOffset], rec[f.ByteOffset+1] = WriteBits(rec[f.ByteOffset], rec[f.ByteOffset+1], f.BitOffset, f.Width, v)
	return nil
}

// packed は base から連続して width ビットずつ詰められた能力値フィールドを生成します
func packed(names []string, base int, width uint) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		bit := uint(i) * width
		fields[i] = Field{
			Name:       name,
			Kind:       KindRating,
			ByteOffset: base + int(bit/8),
			BitOffset:  bit % 8,
			Width:      width,
			Min:        0,
			Max:        1<<width - 1,
		}
	}
	return fields
}

// bytewise は base から 1 バイトに 1 つずつ並んだ能力値フィールドを生成します
func bytewise(names []string, base int, width uint) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{
			Name:       name,
			Kind:       KindRating,
			ByteOffset: base + i,
			Width:      width,
			Max:        1<<width - 1,
		}
	}
	return fields
}
