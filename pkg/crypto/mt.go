package crypto

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// RNGMT はメルセンヌ・ツイスタ (MT19937) 疑似乱数生成器です。
// 復号処理そのものでは使わず、判定しきい値の較正やテストデータの生成に使います。
type RNGMT struct {
	mt  [n]uint32
	mti int
}

// NewRNGMT は指定されたシードで RNGMT を初期化して返します。
func NewRNGMT(seed uint32) *RNGMT {
	r := &RNGMT{}
	r.init(seed)
	return r
}

func (r *RNGMT) init(seed uint32) {
	r.mt[0] = seed
	for r.mti = 1; r.mti < n; r.mti++ {
		r.mt[r.mti] = 1812433253*(r.mt[r.mti-1]^(r.mt[r.mti-1]>>30)) + uint32(r.mti)
	}
}

// twist は内部状態 624 ワードをまとめて更新します
func (r *RNGMT) twist() {
	mag01 := [2]uint32{0x0, matrixA}
	var y uint32
	kk := 0
	for ; kk < n-m; kk++ {
		y = (r.mt[kk] & upperMask) | (r.mt[kk+1] & lowerMask)
		r.mt[kk] = r.mt[kk+m] ^ (y >> 1) ^ mag01[y&0x1]
	}
	for ; kk < n-1; kk++ {
		y = (r.mt[kk] & upperMask) | (r.mt[kk+1] & lowerMask)
		r.mt[kk] = r.mt[kk+(m-n)] ^ (y >> 1) ^ mag01[y&0x1]
	}
	y = (r.mt[n-1] & upperMask) | (r.mt[0] & lowerMask)
	r.mt[n-1] = r.mt[m-1] ^ (y >> 1) ^ mag01[y&0x1]
	r.mti = 0
}

// NextInt32 は次の32ビット符号なし乱数を生成して返します。
func (r *RNGMT) NextInt32() uint32 {
	if r.mti >= n {
		r.twist()
	}

	y := r.mt[r.mti]
	r.mti++

	// Tempering
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}

// Fill は p を乱数ストリームで埋めます (1 ワードにつき 4 バイト、リトルエンディアン)
func (r *RNGMT) Fill(p []byte) {
	for i := 0; i < len(p); i += 4 {
		v := r.NextInt32()
		for k := 0; k < 4 && i+k < len(p); k++ {
			p[i+k] = byte(v >> (8 * k))
		}
	}
}
