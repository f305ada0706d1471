// Package savedata は暗号化されたエディットデータの復号と再暗号化を行います。
//
// Session は鍵候補ごとの暗号を初期化時に一度だけ生成し、以後は読み取り専用です。
// 復号は Strategy を優先順に試し、最初に平文と判定された結果を返します。
package savedata

import (
	"sync"

	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/layout"
	"github.com/shiroemons/go-touchline/pkg/validate"
)

// Logger はデバッグ出力のインターフェース
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Result は 1 回の復号の結果
type Result struct {
	Success       bool
	Payload       []byte
	VersionLabel  string
	WasCompressed bool
	Compression   keyring.Compression
	Strategy      string
	Order         crypto.ByteOrder
	Shape         layout.ShapeID // 形式が分かっている場合のみ
}

// Option は Session の設定
type Option func(*Session)

// WithRegistry は鍵候補のレジストリを指定します
func WithRegistry(reg *keyring.Registry) Option {
	return func(s *Session) {
		s.reg = reg
	}
}

// WithValidator は平文判定を指定します
func WithValidator(v validate.Validator) Option {
	return func(s *Session) {
		s.validator = v
	}
}

// WithThresholds は既定の判定器のしきい値を指定します。WithValidator が優先されます。
func WithThresholds(th validate.Thresholds) Option {
	return func(s *Session) {
		s.thresholds = &th
	}
}

// WithLogger はデバッグ出力先を指定します
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session は初期化済みの復号器です。生成後は並行に使用できます。
type Session struct {
	reg        *keyring.Registry
	validator  validate.Validator
	thresholds *validate.Thresholds
	logger     Logger

	ciphers    map[string]cipherEntry
	strategies []Strategy
	ready      bool
}

type cipherEntry struct {
	cand   keyring.Candidate
	cipher crypto.BlockCipher
}

// NewSession は鍵候補ごとの暗号を生成して Session を返します
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{logger: nopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = keyring.Default()
	}
	if s.validator == nil {
		th := validate.DefaultThresholds()
		if s.thresholds != nil {
			th = *s.thresholds
		}
		if err := th.Validate(); err != nil {
			return nil, err
		}
		s.validator = validate.New(s.reg, th)
	}

	acc := &acceptor{reg: s.reg, validator: s.validator}
	s.ciphers = make(map[string]cipherEntry, s.reg.Len())
	s.strategies = []Strategy{&signatureStrategy{acc: acc}}

	for _, cand := range s.reg.Candidates() {
		c, err := cand.NewCipher()
		if err != nil {
			return nil, &InitError{Label: cand.Label, Err: err}
		}
		s.ciphers[cand.Label] = cipherEntry{cand: cand, cipher: c}
		s.strategies = append(s.strategies, &cipherStrategy{acc: acc, cand: cand, cipher: c})
	}

	s.strategies = append(s.strategies, &seedXORStrategy{acc: acc})
	for i, k := range s.reg.StreamConstants() {
		s.strategies = append(s.strategies, &streamXORStrategy{acc: acc, index: i + 1, constant: k})
	}

	s.ready = true
	s.logger.Printf("Session を初期化しました (鍵候補 %d 件, 方式 %d 件)", len(s.ciphers), len(s.strategies))
	return s, nil
}

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// DefaultSession は既定設定の Session を返します。初回呼び出し時に一度だけ初期化されます。
// 初期化に失敗した場合は未初期化の Session を返し、各メソッドは ErrNotInitialized を返します。
func DefaultSession() *Session {
	defaultOnce.Do(func() {
		s, err := NewSession()
		if err != nil {
			defaultSession = &Session{}
			return
		}
		defaultSession = s
	})
	return defaultSession
}

func (s *Session) initialized() bool {
	return s != nil && s.ready
}

// Registry は Session が使うレジストリを返します
func (s *Session) Registry() *keyring.Registry {
	if !s.initialized() {
		return nil
	}
	return s.reg
}

// Strategies は試行順の Strategy 一覧を返します (コピー)
func (s *Session) Strategies() []Strategy {
	if !s.initialized() {
		return nil
	}
	return append([]Strategy(nil), s.strategies...)
}

// Decrypt は data を復号します。data は変更されません。
// どの方式でも判別できない場合は Success=false で入力のコピーを返します。
// エラーは Session が未初期化の場合のみです。
func (s *Session) Decrypt(data []byte) (Result, error) {
	if !s.initialized() {
		return Result{}, ErrNotInitialized
	}

	for _, st := range s.strategies {
		r, ok := st.Attempt(data)
		if !ok {
			continue
		}
		s.logger.Printf("%s で復号しました (version=%s order=%s compressed=%v)", st.Name(), r.VersionLabel, r.Order, r.WasCompressed)
		return r, nil
	}

	s.logger.Printf("復号できませんでした (%d バイト)", len(data))
	return Result{
		Success:      false,
		Payload:      clone(data),
		VersionLabel: keyring.LabelUnknown,
	}, nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
