// Package keyring は復号に使う鍵候補、平文マジック、圧縮マーカーの読み取り専用テーブルを提供します。
package keyring

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blowfish"

	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/layout"
)

// KeySize は登録される鍵のバイト数
const KeySize = 32

// CipherKeySize は暗号で実際に使う鍵の先頭バイト数
const CipherKeySize = 16

// 予約済みのバージョンラベル
const (
	LabelDecrypted       = "decrypted"   // 入力がすでに平文だった
	LabelUnknown         = "unknown"     // どの方式でも判別できなかった
	LabelXORSeed         = "xor-seed"    // シード XOR による難読化
	LabelXORStreamPrefix = "xor-stream-" // LCG キーストリームによる難読化 (xor-stream-1..)
)

// Schedule は鍵スケジュールの種類
type Schedule int

const (
	ScheduleDirect   Schedule = iota // P 配列と鍵の XOR のみ
	ScheduleExpanded                 // 標準 Blowfish の鍵拡張
)

func (s Schedule) String() string {
	switch s {
	case ScheduleDirect:
		return "direct"
	case ScheduleExpanded:
		return "expanded"
	}
	return fmt.Sprintf("schedule(%d)", int(s))
}

// ParseSchedule は "direct" / "expanded" を Schedule に変換します。空文字は direct です。
func ParseSchedule(s string) (Schedule, error) {
	switch strings.ToLower(s) {
	case "", "direct":
		return ScheduleDirect, nil
	case "expanded", "standard":
		return ScheduleExpanded, nil
	}
	return ScheduleDirect, fmt.Errorf("%w: %q", ErrUnknownSchedule, s)
}

// Candidate は 1 つのゲームバージョンの鍵候補
type Candidate struct {
	Label    string
	Key      [KeySize]byte
	Schedule Schedule
	Shape    layout.ShapeID
}

// CipherKey は暗号に渡す鍵 (先頭 16 バイト) のコピーを返します
func (c Candidate) CipherKey() []byte {
	k := make([]byte, CipherKeySize)
	copy(k, c.Key[:CipherKeySize])
	return k
}

// NewCipher は候補のスケジュールに従ってブロック暗号を生成します
func (c Candidate) NewCipher() (crypto.BlockCipher, error) {
	switch c.Schedule {
	case ScheduleDirect:
		return crypto.NewBlowfish(c.CipherKey())
	case ScheduleExpanded:
		return blowfish.NewCipher(c.CipherKey())
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownSchedule, c.Schedule)
}

// Signature は平文コンテナの先頭マジック
type Signature struct {
	Name  string
	Magic []byte
	Shape layout.ShapeID
}

// Compression は圧縮形式
type Compression string

const (
	CompressionZlib  Compression = "zlib"
	CompressionGzip  Compression = "gzip"
	CompressionZstd  Compression = "zstd"
	CompressionWESYS Compression = "wesys" // WESYS ヘッダ付きの zlib
)

// WESYS ラッパーのレイアウト
const (
	WESYSMagicOffset  = 3
	WESYSCompSize     = 8
	WESYSUncompSize   = 12
	WESYSHeaderLength = 16
)

var (
	wesysMagic = []byte("WESYS")
	gzipMagic  = []byte{0x1F, 0x8B}
	zstdMagic  = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// Registry は鍵候補・マジック・圧縮マーカーの読み取り専用テーブルです。
// 生成後は変更されないため、ロックなしで共有できます。
type Registry struct {
	candidates      []Candidate
	signatures      []Signature
	streamConstants []uint32
}

var defaultRegistry = mustNew(defaultCandidates...)

// Default は既定のレジストリを返します
func Default() *Registry {
	return defaultRegistry
}

func mustNew(cands ...Candidate) *Registry {
	r, err := New(cands...)
	if err != nil {
		panic(err)
	}
	return r
}

// New は与えられた候補と既定のマジック・ストリーム定数からレジストリを生成します
func New(cands ...Candidate) (*Registry, error) {
	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		if err := validateCandidate(c); err != nil {
			return nil, err
		}
		if seen[c.Label] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, c.Label)
		}
		seen[c.Label] = true
	}

	return &Registry{
		candidates:      append([]Candidate(nil), cands...),
		signatures:      defaultSignatures,
		streamConstants: defaultStreamConstants,
	}, nil
}

func validateCandidate(c Candidate) error {
	if c.Label == "" {
		return ErrEmptyLabel
	}
	if IsReserved(c.Label) {
		return fmt.Errorf("%w: %s", ErrReservedLabel, c.Label)
	}
	if c.Schedule != ScheduleDirect && c.Schedule != ScheduleExpanded {
		return fmt.Errorf("%w: %v", ErrUnknownSchedule, c.Schedule)
	}
	if _, ok := layout.Lookup(c.Shape); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShape, c.Shape)
	}
	return nil
}

// IsReserved は復号結果のために予約されたラベルかどうかを返します
func IsReserved(label string) bool {
	switch label {
	case LabelDecrypted, LabelUnknown, LabelXORSeed:
		return true
	}
	return strings.HasPrefix(label, LabelXORStreamPrefix)
}

// With は末尾に候補を追加した新しいレジストリを返します。r は変更されません。
func (r *Registry) With(extra ...Candidate) (*Registry, error) {
	cands := make([]Candidate, 0, len(r.candidates)+len(extra))
	cands = append(cands, r.candidates...)
	cands = append(cands, extra...)
	return New(cands...)
}

// Candidates は候補を優先順で返します (コピー)
func (r *Registry) Candidates() []Candidate {
	return append([]Candidate(nil), r.candidates...)
}

// Len は候補の数を返します
func (r *Registry) Len() int {
	return len(r.candidates)
}

// Lookup はラベルから候補を検索します
func (r *Registry) Lookup(label string) (Candidate, bool) {
	for _, c := range r.candidates {
		if c.Label == label {
			return c, true
		}
	}
	return Candidate{}, false
}

// StreamConstants は LCG キーストリームの定数を返します (コピー)
func (r *Registry) StreamConstants() []uint32 {
	return append([]uint32(nil), r.streamConstants...)
}

// Signatures は平文マジックの一覧を返します (コピー)
func (r *Registry) Signatures() []Signature {
	return append([]Signature(nil), r.signatures...)
}

// Signature は buf の先頭に一致する平文マジックを返します
func (r *Registry) Signature(buf []byte) (Signature, bool) {
	for _, s := range r.signatures {
		if bytes.HasPrefix(buf, s.Magic) {
			return s, true
		}
	}
	return Signature{}, false
}

// IsKnownSignature は buf が既知の平文マジックで始まるかを返します
func (r *Registry) IsKnownSignature(buf []byte) bool {
	_, ok := r.Signature(buf)
	return ok
}

// Compression は buf の先頭の圧縮マーカーを判定します
func (r *Registry) Compression(buf []byte) (Compression, bool) {
	switch {
	case len(buf) >= WESYSHeaderLength && bytes.Equal(buf[WESYSMagicOffset:WESYSMagicOffset+len(wesysMagic)], wesysMagic):
		return CompressionWESYS, true
	case len(buf) >= 2 && buf[0] == 0x78 && isZlibLevel(buf[1]):
		return CompressionZlib, true
	case bytes.HasPrefix(buf, gzipMagic):
		return CompressionGzip, true
	case bytes.HasPrefix(buf, zstdMagic):
		return CompressionZstd, true
	}
	return "", false
}

func isZlibLevel(b byte) bool {
	switch b {
	case 0x01, 0x5E, 0x9C, 0xDA:
		return true
	}
	return false
}

// IsCompressed は buf が圧縮マーカーで始まるかを返します
func (r *Registry) IsCompressed(buf []byte) bool {
	_, ok := r.Compression(buf)
	return ok
}

// ParseKeyHex は 16 進文字列の鍵を解析します。
// 空白とコロンは無視し、16 バイトの鍵は残りを 0 で埋めます。
func ParseKeyHex(s string) ([KeySize]byte, error) {
	var key [KeySize]byte
	clean := strings.NewReplacer(" ", "", ":", "", "\t", "").Replace(s)
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return key, fmt.Errorf("%w: %v", ErrKeyHex, err)
	}
	if len(raw) != CipherKeySize && len(raw) != KeySize {
		return key, fmt.Errorf("%w: %d バイト (16 または 32 バイトが必要)", ErrKeyHex, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}
