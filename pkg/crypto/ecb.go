package crypto

import "fmt"

// ByteOrder は 32 ビットワードをバイト列からどう組み立てるかを表します
type ByteOrder int

const (
	OrderBigEndian    ByteOrder = iota // 0A 0B 0C 0D
	OrderLittleEndian                  // 0D 0C 0B 0A
	OrderMixedEndian                   // 0B 0A 0D 0C (16 ビット単位でバイトを入れ替え)
)

// Orders は復号時に試すワード解釈の順序
var Orders = []ByteOrder{OrderBigEndian, OrderLittleEndian, OrderMixedEndian}

// String はワード解釈の短い名前を返します
func (o ByteOrder) String() string {
	switch o {
	case OrderBigEndian:
		return "be"
	case OrderLittleEndian:
		return "le"
	case OrderMixedEndian:
		return "mixed"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// ParseByteOrder は "be" / "le" / "mixed" を ByteOrder に変換します
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "be", "big":
		return OrderBigEndian, nil
	case "le", "little":
		return OrderLittleEndian, nil
	case "mixed", "pdp":
		return OrderMixedEndian, nil
	}
	return OrderBigEndian, fmt.Errorf("crypto: 不明なワード順序です: %q", s)
}

// permute は 8 バイトブロックを指定された順序とビッグエンディアンの間で並べ替えます。
// どの並べ替えも自己逆写像なので、往復とも同じ関数で済みます。
func permute(block []byte, order ByteOrder) {
	switch order {
	case OrderLittleEndian:
		block[0], block[1], block[2], block[3] = block[3], block[2], block[1], block[0]
		block[4], block[5], block[6], block[7] = block[7], block[6], block[5], block[4]
	case OrderMixedEndian:
		for i := 0; i < BlockSize; i += 2 {
			block[i], block[i+1] = block[i+1], block[i]
		}
	}
}

// DecryptECB は buf 全体を ECB モードで復号した新しいスライスを返します。
// 末尾の 8 バイトに満たない部分はそのままコピーされます。buf は変更しません。
func DecryptECB(c BlockCipher, order ByteOrder, buf []byte) []byte {
	return processECB(c.Decrypt, order, buf)
}

// EncryptECB は buf 全体を ECB モードで暗号化した新しいスライスを返します
func EncryptECB(c BlockCipher, order ByteOrder, buf []byte) []byte {
	return processECB(c.Encrypt, order, buf)
}

func processECB(fn func(dst, src []byte), order ByteOrder, buf []byte) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)

	full := len(out) - len(out)%BlockSize
	for off := 0; off < full; off += BlockSize {
		block := out[off : off+BlockSize]
		permute(block, order)
		fn(block, block)
		permute(block, order)
	}
	return out
}
