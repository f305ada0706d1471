// Package crypto はエディットデータの暗号化・難読化に使われるアルゴリズムを提供します。
//
// 主な機能:
//   - Blowfish: リバースエンジニアリングされた Blowfish 互換ブロック暗号
//   - DecryptECB / EncryptECB: ワード順序を指定した ECB フレーミング
//   - XORWords / XORStream: シード XOR と LCG キーストリームによる難読化の解除
//   - RNGMT: メルセンヌ・ツイスタ疑似乱数生成器
package crypto

import (
	"encoding/binary"
	"errors"
)

// BlockSize は Blowfish のブロックサイズ (バイト)
const BlockSize = 8

// ErrKeySize は鍵長が不正な場合のエラー
var ErrKeySize = errors.New("crypto: 鍵の長さが不正です")

// BlockCipher は 8 バイト単位でブロックを暗号化・復号するインターフェース。
// golang.org/x/crypto/blowfish.Cipher も同じメソッドセットを持ちます。
type BlockCipher interface {
	BlockSize() int
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
}

// Blowfish はエディットデータで使われる Blowfish 互換のブロック暗号です。
// 鍵スケジュールは P 配列と鍵の XOR のみで、標準 Blowfish の鍵拡張パスは行いません。
type Blowfish struct {
	p              [18]uint32
	s0, s1, s2, s3 [256]uint32
}

// NewBlowfish は任意長の鍵から Blowfish を初期化して返します。
// 鍵が P 配列より短い場合は先頭に戻って繰り返し使用します。
func NewBlowfish(key []byte) (*Blowfish, error) {
	if len(key) == 0 {
		return nil, ErrKeySize
	}

	c := &Blowfish{p: piP}
	c.s0, c.s1, c.s2, c.s3 = piS[0], piS[1], piS[2], piS[3]

	j := 0
	for i := range c.p {
		var d uint32
		for k := 0; k < 4; k++ {
			d = d<<8 | uint32(key[j])
			j++
			if j >= len(key) {
				j = 0
			}
		}
		c.p[i] ^= d
	}
	return c, nil
}

// BlockSize はブロックサイズを返します
func (c *Blowfish) BlockSize() int { return BlockSize }

// f はラウンド関数
func (c *Blowfish) f(x uint32) uint32 {
	return ((c.s0[byte(x>>24)] + c.s1[byte(x>>16)]) ^ c.s2[byte(x>>8)]) + c.s3[byte(x)]
}

// EncryptBlock は 64 ビットブロック (l, r) を暗号化します。
// サブキーは昇順 (0..15) に適用し、最後に P[16], P[17] を XOR します。
func (c *Blowfish) EncryptBlock(l, r uint32) (uint32, uint32) {
	for i := 0; i < 16; i++ {
		l ^= c.p[i]
		r ^= c.f(l)
		l, r = r, l
	}
	l, r = r, l
	r ^= c.p[16]
	l ^= c.p[17]
	return l, r
}

// DecryptBlock は 64 ビットブロック (l, r) を復号します。
// サブキーは降順 (17..2) に適用し、最後に P[1], P[0] を XOR します。
func (c *Blowfish) DecryptBlock(l, r uint32) (uint32, uint32) {
	for i := 17; i > 1; i-- {
		l ^= c.p[i]
		r ^= c.f(l)
		l, r = r, l
	}
	l, r = r, l
	r ^= c.p[1]
	l ^= c.p[0]
	return l, r
}

// Encrypt は src の先頭 8 バイトを暗号化して dst に書き込みます。
// ワードはビッグエンディアンとして解釈します。
func (c *Blowfish) Encrypt(dst, src []byte) {
	l := binary.BigEndian.Uint32(src[0:4])
	r := binary.BigEndian.Uint32(src[4:8])
	l, r = c.EncryptBlock(l, r)
	binary.BigEndian.PutUint32(dst[0:4], l)
	binary.BigEndian.PutUint32(dst[4:8], r)
}

// Decrypt は src の先頭 8 バイトを復号して dst に書き込みます
func (c *Blowfish) Decrypt(dst, src []byte) {
	l := binary.BigEndian.Uint32(src[0:4])
	r := binary.BigEndian.Uint32(src[4:8])
	l, r = c.DecryptBlock(l, r)
	binary.BigEndian.PutUint32(dst[0:4], l)
	binary.BigEndian.PutUint32(dst[4:8], r)
}
