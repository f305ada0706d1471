package keyring

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shiroemons/go-touchline/pkg/layout"
)

func TestDefault_Order(t *testing.T) {
	want := []string{"PES2021", "PES2020", "PES2019", "PES2018", "eFootball2022", "PES2017", "PES2016"}
	got := Default().Candidates()
	if len(got) != len(want) {
		t.Fatalf("len(Candidates()) = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Label != want[i] {
			t.Errorf("Candidates()[%d].Label = %q, want %q", i, c.Label, want[i])
		}
	}
}

func TestDefault_CandidatesAreCopies(t *testing.T) {
	cands := Default().Candidates()
	cands[0].Label = "changed"
	cands[0].Key[0] ^= 0xFF

	c, ok := Default().Lookup("PES2021")
	if !ok {
		t.Fatal("Lookup(PES2021) が見つかりません")
	}
	if c.Key[0] != 0x58 {
		t.Errorf("既定のレジストリが変更されました: Key[0] = 0x%02x", c.Key[0])
	}
}

func TestCandidate_CipherKey(t *testing.T) {
	c, _ := Default().Lookup("PES2020")
	k := c.CipherKey()
	if len(k) != CipherKeySize {
		t.Fatalf("len(CipherKey()) = %d, want %d", len(k), CipherKeySize)
	}
	if !bytes.Equal(k, c.Key[:16]) {
		t.Errorf("CipherKey() = %x, want %x", k, c.Key[:16])
	}
	k[0] ^= 0xFF
	if c.Key[0] == k[0] {
		t.Error("CipherKey() はコピーを返すべきです")
	}
}

func TestCandidate_NewCipher(t *testing.T) {
	for _, c := range Default().Candidates() {
		t.Run(c.Label, func(t *testing.T) {
			bc, err := c.NewCipher()
			if err != nil {
				t.Fatalf("NewCipher() error = %v", err)
			}
			src := []byte("0123456789abcdef")
			enc := make([]byte, 8)
			dec := make([]byte, 8)
			bc.Encrypt(enc, src)
			bc.Decrypt(dec, enc)
			if !bytes.Equal(dec, src[:8]) {
				t.Errorf("Decrypt(Encrypt(x)) = %x, want %x", dec, src[:8])
			}
		})
	}
}

func TestRegistry_Signature(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		want   bool
		sigRef string
	}{
		{"WEEDIT", append([]byte("WEEDIT\x00\x01"), 0xDE, 0xAD), true, "weedit"},
		{"PESEDIT", []byte("PESEDIT\x00"), true, "pesedit"},
		{"バージョン違い", []byte("WEEDIT\x00\x02"), false, ""},
		{"短すぎる", []byte("WEED"), false, ""},
		{"空", nil, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := Default().Signature(tt.buf)
			if ok != tt.want {
				t.Fatalf("Signature() ok = %v, want %v", ok, tt.want)
			}
			if ok && (sig.Name != tt.sigRef || sig.Shape != layout.ShapeEdit) {
				t.Errorf("Signature() = %+v", sig)
			}
			if Default().IsKnownSignature(tt.buf) != tt.want {
				t.Errorf("IsKnownSignature() = %v, want %v", !tt.want, tt.want)
			}
		})
	}
}

func TestRegistry_Compression(t *testing.T) {
	wesys := make([]byte, 20)
	copy(wesys[3:], "WESYS")

	tests := []struct {
		name   string
		buf    []byte
		want   Compression
		wantOK bool
	}{
		{"zlib 標準", []byte{0x78, 0x9C, 0x00}, CompressionZlib, true},
		{"zlib 最速", []byte{0x78, 0x01}, CompressionZlib, true},
		{"zlib 最高", []byte{0x78, 0xDA}, CompressionZlib, true},
		{"zlib 中間", []byte{0x78, 0x5E}, CompressionZlib, true},
		{"zlib の不正なレベル", []byte{0x78, 0x00}, "", false},
		{"gzip", []byte{0x1F, 0x8B, 0x08}, CompressionGzip, true},
		{"zstd", []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}, CompressionZstd, true},
		{"WESYS", wesys, CompressionWESYS, true},
		{"WESYS ヘッダ不足", wesys[:10], "", false},
		{"1バイト", []byte{0x78}, "", false},
		{"ゼロ", make([]byte, 64), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default().Compression(tt.buf)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Compression() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
			if Default().IsCompressed(tt.buf) != tt.wantOK {
				t.Errorf("IsCompressed() = %v, want %v", !tt.wantOK, tt.wantOK)
			}
		})
	}
}

func TestRegistry_With(t *testing.T) {
	extra := Candidate{Label: "custom", Shape: layout.ShapeEdit}

	tests := []struct {
		name    string
		cand    Candidate
		wantErr error
	}{
		{"追加できる", extra, nil},
		{"空のラベル", Candidate{Shape: layout.ShapeEdit}, ErrEmptyLabel},
		{"予約済み decrypted", Candidate{Label: "decrypted", Shape: layout.ShapeEdit}, ErrReservedLabel},
		{"予約済み xor-stream", Candidate{Label: "xor-stream-9", Shape: layout.ShapeEdit}, ErrReservedLabel},
		{"重複", Candidate{Label: "PES2019", Shape: layout.ShapeEdit}, ErrDuplicateLabel},
		{"不明な形式", Candidate{Label: "x", Shape: "archive"}, ErrUnknownShape},
		{"不明なスケジュール", Candidate{Label: "x", Shape: layout.ShapeEdit, Schedule: 7}, ErrUnknownSchedule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Default().With(tt.cand)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("With() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if r.Len() != Default().Len()+1 {
				t.Errorf("Len() = %d, want %d", r.Len(), Default().Len()+1)
			}
			if last := r.Candidates()[r.Len()-1]; last.Label != tt.cand.Label {
				t.Errorf("末尾の候補 = %q, want %q", last.Label, tt.cand.Label)
			}
			if _, ok := Default().Lookup(tt.cand.Label); ok {
				t.Error("既定のレジストリが変更されました")
			}
		})
	}
}

func TestParseKeyHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want0   byte
		want16  byte
		wantErr bool
	}{
		{"32バイト", "00112233445566778899aabbccddeeff" + "ff00000000000000000000000000000a", 0x00, 0xff, false},
		{"16バイトは0埋め", "a1:b2:c3:d4 e5f60718293a4b5c6d7e8f90", 0xa1, 0x00, false},
		{"長さ不正", "0011", 0, 0, true},
		{"16進以外", "zz112233445566778899aabbccddeeff", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeyHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrKeyHex) {
					t.Errorf("error = %v, want ErrKeyHex", err)
				}
				return
			}
			if got[0] != tt.want0 || got[16] != tt.want16 {
				t.Errorf("ParseKeyHex() = %x", got)
			}
		})
	}
}

func TestParseSchedule(t *testing.T) {
	if s, err := ParseSchedule(""); err != nil || s != ScheduleDirect {
		t.Errorf("ParseSchedule(\"\") = (%v, %v)", s, err)
	}
	if s, err := ParseSchedule("Expanded"); err != nil || s != ScheduleExpanded {
		t.Errorf("ParseSchedule(Expanded) = (%v, %v)", s, err)
	}
	if _, err := ParseSchedule("cbc"); !errors.Is(err, ErrUnknownSchedule) {
		t.Errorf("ParseSchedule(cbc) error = %v", err)
	}
}

func TestRegistry_StreamConstants(t *testing.T) {
	got := Default().StreamConstants()
	want := []uint32{0xA7590926, 0xABB7B7A6, 0x78A1DD08}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StreamConstants()[%d] = 0x%08X, want 0x%08X", i, got[i], want[i])
		}
	}
}
