package savedata

import (
	"fmt"

	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/validate"
)

// Strategy は 1 つの復号方式です
type Strategy interface {
	Name() string
	Attempt(buf []byte) (Result, bool)
}

// 方式名
const (
	StrategySignature = "signature"
	StrategyCipher    = "cipher"
)

// acceptor は復号候補の採否判定と展開を行います
type acceptor struct {
	reg       *keyring.Registry
	validator validate.Validator
}

// accept は plain が平文または展開できる圧縮データと判定できれば結果を返します。
// 展開に失敗した場合は、平文として妥当なときだけ生データを WasCompressed=false で返します。
func (a *acceptor) accept(plain []byte, r Result) (Result, bool) {
	if kind, compressed := a.reg.Compression(plain); compressed {
		if out, err := inflate(kind, plain); err == nil {
			r.Success = true
			r.Payload = out
			r.WasCompressed = true
			r.Compression = kind
			return r, true
		}
	}
	if !a.validator.IsPlausible(plain) {
		return Result{}, false
	}

	r.Success = true
	r.Payload = plain
	return r, true
}

// signatureStrategy は入力がすでに平文かどうかを判定します
type signatureStrategy struct {
	acc *acceptor
}

func (s *signatureStrategy) Name() string { return StrategySignature }

func (s *signatureStrategy) Attempt(buf []byte) (Result, bool) {
	sig, ok := s.acc.reg.Signature(buf)
	if !ok {
		return Result{}, false
	}
	return Result{
		Success:      true,
		Payload:      clone(buf),
		VersionLabel: keyring.LabelDecrypted,
		Strategy:     StrategySignature,
		Shape:        sig.Shape,
	}, true
}

// cipherStrategy は 1 つの鍵候補で 3 種類のワード順序を試します
type cipherStrategy struct {
	acc    *acceptor
	cand   keyring.Candidate
	cipher crypto.BlockCipher
}

func (s *cipherStrategy) Name() string { return StrategyCipher + ":" + s.cand.Label }

func (s *cipherStrategy) Attempt(buf []byte) (Result, bool) {
	for _, order := range crypto.Orders {
		plain := crypto.DecryptECB(s.cipher, order, buf)
		r, ok := s.acc.accept(plain, Result{
			VersionLabel: s.cand.Label,
			Strategy:     s.Name(),
			Order:        order,
			Shape:        s.cand.Shape,
		})
		if ok {
			return r, true
		}
	}
	return Result{}, false
}

// seedXORStrategy は先頭ワードをシードとした XOR 難読化を解除します
type seedXORStrategy struct {
	acc *acceptor
}

func (s *seedXORStrategy) Name() string { return keyring.LabelXORSeed }

func (s *seedXORStrategy) Attempt(buf []byte) (Result, bool) {
	plain := clone(buf)
	crypto.XORWords(plain, crypto.Seed(buf))
	return s.acc.accept(plain, Result{
		VersionLabel: keyring.LabelXORSeed,
		Strategy:     s.Name(),
	})
}

// streamXORStrategy は LCG キーストリームによる XOR 難読化を解除します
type streamXORStrategy struct {
	acc      *acceptor
	index    int
	constant uint32
}

func (s *streamXORStrategy) Name() string {
	return fmt.Sprintf("%s%d", keyring.LabelXORStreamPrefix, s.index)
}

func (s *streamXORStrategy) Attempt(buf []byte) (Result, bool) {
	plain := clone(buf)
	crypto.XORStream(plain, crypto.Seed(buf)^s.constant)
	return s.acc.accept(plain, Result{
		VersionLabel: s.Name(),
		Strategy:     s.Name(),
	})
}
