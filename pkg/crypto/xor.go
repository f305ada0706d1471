package crypto

import "encoding/binary"

// LCG の係数 (key = key*StreamMultiplier + StreamIncrement)
const (
	StreamMultiplier = 0x41C64E6D
	StreamIncrement  = 0x3039
)

// Seed は先頭 4 バイトをリトルエンディアンの 32 ビット値として返します。
// 4 バイトに満たない場合は 0 です。
func Seed(data []byte) uint32 {
	if len(data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(data)
}

// XORWords は data の各 4 バイトワードをリトルエンディアンとして key と XOR します。
// 末尾の端数バイトは変更しません。
func XORWords(data []byte, key uint32) {
	for off := 0; off+4 <= len(data); off += 4 {
		w := binary.LittleEndian.Uint32(data[off:])
		binary.LittleEndian.PutUint32(data[off:], w^key)
	}
}

// XORStream は data の各ワードをワードごとに更新されるキーストリームと XOR し、
// 更新後のキーを返します。暗号化と復号は同じ操作です。
func XORStream(data []byte, key uint32) uint32 {
	for off := 0; off+4 <= len(data); off += 4 {
		w := binary.LittleEndian.Uint32(data[off:])
		binary.LittleEndian.PutUint32(data[off:], w^key)
		key = key*StreamMultiplier + StreamIncrement
	}
	return key
}
