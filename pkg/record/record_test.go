package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/layout"
)

// editPlayer は Shape A の選手レコードの材料
type editPlayer struct {
	id      uint32
	name    string
	ratings []int
	age     int
	height  int
}

func editHeader(players, teams uint32) []byte {
	h := make([]byte, 0x40)
	copy(h, "WEEDIT\x00\x01")
	binary.LittleEndian.PutUint32(h[8:], 1)
	binary.LittleEndian.PutUint32(h[12:], players)
	binary.LittleEndian.PutUint32(h[16:], teams)
	return h
}

func editRecord(t *testing.T, p editPlayer) []byte {
	t.Helper()
	s := layout.ShapeA()
	rec := make([]byte, s.RecordStride)
	binary.LittleEndian.PutUint32(rec, p.id)
	name, err := EncodeUTF16(p.name)
	if err != nil {
		t.Fatalf("EncodeUTF16() error = %v", err)
	}
	copy(rec[s.Name.Offset:s.Name.Offset+s.Name.Size], name)
	for i, v := range p.ratings {
		if err := s.Ratings()[i].Write(rec, v); err != nil {
			t.Fatalf("rating %d: %v", i, err)
		}
	}
	if p.age != 0 {
		f, _ := s.Field(layout.FieldAge)
		if err := f.Write(rec, p.age); err != nil {
			t.Fatal(err)
		}
	}
	if p.height != 0 {
		f, _ := s.Field(layout.FieldHeight)
		if err := f.Write(rec, p.height); err != nil {
			t.Fatal(err)
		}
	}
	return rec
}

func optionHeader(version, headerSize, players uint32) []byte {
	h := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(h[0:], version)
	binary.LittleEndian.PutUint32(h[4:], headerSize)
	binary.LittleEndian.PutUint32(h[12:], players)
	return h
}

func optionRecord(name string, id uint32, ratings ...int) []byte {
	rec := make([]byte, layout.ShapeB().RecordStride)
	copy(rec, name)
	binary.LittleEndian.PutUint32(rec[0x30:], id)
	rec[0x34] = 33
	rec[0x35] = 11
	rec[0x36] = 170
	for i, v := range ratings {
		rec[0x40+i] = byte(v)
	}
	return rec
}

func TestParse_OptionScenario(t *testing.T) {
	messi := optionRecord("L. MESSI", 10, 88, 91, 85)
	ronaldo := optionRecord("C RONALDO", 0, 90, 84)

	payload := bytes.Join([][]byte{optionHeader(1, 80, 2), messi, ronaldo}, nil)
	c, err := Parse(payload, layout.ShapeB())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	players := c.Players()
	if len(players) != 2 {
		t.Fatalf("len(Players()) = %d, want 2", len(players))
	}
	if players[0].Name != "L. MESSI" || players[1].Name != "C RONALDO" {
		t.Errorf("Players() names = %q, %q", players[0].Name, players[1].Name)
	}
	if players[0].ID != 10 || players[1].ID != 2 {
		t.Errorf("IDs = %d, %d, want 10, 2 (ID 0 は序数)", players[0].ID, players[1].ID)
	}
	if players[0].Overall != 88 {
		t.Errorf("Overall = %d, want 88", players[0].Overall)
	}
	if players[0].Age != 33 || players[0].PositionName() != "CF" || players[0].Height != 170 {
		t.Errorf("属性 = %+v", players[0])
	}

	// 同じ名前の 3 件目は追加されない
	dup := bytes.Join([][]byte{optionHeader(1, 80, 3), messi, ronaldo, optionRecord("L. MESSI", 30, 70)}, nil)
	c, err = Parse(dup, layout.ShapeB())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if n := len(c.Players()); n != 2 {
		t.Errorf("重複あり: len(Players()) = %d, want 2", n)
	}
}

func TestParse_OptionIDFallback(t *testing.T) {
	tests := []struct {
		name    string
		records [][]byte
		wantIDs []uint32
	}{
		{
			name:    "同じ ID の別名は両方残る",
			records: [][]byte{optionRecord("L. MESSI", 7, 88), optionRecord("C RONALDO", 7, 90)},
			wantIDs: []uint32{7, 2},
		},
		{
			name:    "ID 0 の序数が既存の ID と衝突する",
			records: [][]byte{optionRecord("L. MESSI", 2, 88), optionRecord("C RONALDO", 0, 90)},
			wantIDs: []uint32{2, 3},
		},
		{
			name:    "ID が FFFFFFFF でも名前が正しければ残る",
			records: [][]byte{optionRecord("L. MESSI", 0xFFFFFFFF, 88)},
			wantIDs: []uint32{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := append([][]byte{optionHeader(1, 80, uint32(len(tt.records)))}, tt.records...)
			c, err := Parse(bytes.Join(parts, nil), layout.ShapeB())
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			players := c.Players()
			if len(players) != len(tt.wantIDs) {
				t.Fatalf("len(Players()) = %d, want %d", len(players), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if players[i].ID != want {
					t.Errorf("Players()[%d].ID = %d, want %d", i, players[i].ID, want)
				}
				if _, ok := c.Player(want); !ok {
					t.Errorf("Player(%d) が見つかりません", want)
				}
			}
		})
	}
}

func TestParsePlayer_OptionNames(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{"通常", "ZINEDINE ZIDANE", true},
		{"アポストロフィ", "S. O'BRIEN", true},
		{"ハイフン", "JEAN-PIERRE", true},
		{"ピリオドで終わる", "RONALDO JR.", true},
		{"短すぎる", "AB", false},
		{"数字始まり", "9LIVES", false},
		{"数字を含む", "MESSI10", false},
		{"空", "", false},
		{"空白で終わる名前は切り詰める", "PIRLO   ", true},
		{"ハイフンで終わる", "DEL-", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := append(optionHeader(1, 16, 1), optionRecord(tt.raw, 5)...)
			_, ok := ParsePlayer(payload, layout.ShapeB(), 16, 0)
			if ok != tt.wantOK {
				t.Errorf("ParsePlayer(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
		})
	}
}

func TestParse_EditSentinels(t *testing.T) {
	payload := bytes.Join([][]byte{
		editHeader(4, 0),
		editRecord(t, editPlayer{id: 1, name: "Lionel Messi"}),
		editRecord(t, editPlayer{id: 0, name: "Empty"}),
		editRecord(t, editPlayer{id: 0xFFFFFFFF, name: "Free"}),
		editRecord(t, editPlayer{id: 4, name: "中村俊輔"}),
	}, nil)

	c, err := Parse(payload, layout.ShapeA())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	players := c.Players()
	if len(players) != 2 {
		t.Fatalf("len(Players()) = %d, want 2", len(players))
	}
	if players[0].ID != 1 || players[1].ID != 4 {
		t.Errorf("IDs = %d, %d, want 1, 4", players[0].ID, players[1].ID)
	}
	if players[1].Name != "中村俊輔" || players[1].Ordinal != 3 {
		t.Errorf("Players()[1] = {%q ordinal %d}", players[1].Name, players[1].Ordinal)
	}
	if c.Truncated() {
		t.Error("Truncated() = true, want false")
	}
}

func TestParse_EditBitPackedRatings(t *testing.T) {
	rec := editRecord(t, editPlayer{id: 7, name: "Pirlo"})
	rec[0x48] = 0b10110011
	rec[0x49] = 0b00000001
	payload := append(editHeader(1, 0), rec...)

	p, ok := ParsePlayer(payload, layout.ShapeA(), 0x40, 0)
	if !ok {
		t.Fatal("ParsePlayer() = false")
	}
	if p.Ratings[0].Value != 0b0110011 {
		t.Errorf("ratings[0] = %d, want %d", p.Ratings[0].Value, 0b0110011)
	}
	if p.Ratings[1].Value != 3 {
		t.Errorf("ratings[1] = %d, want 3", p.Ratings[1].Value)
	}
}

func TestParse_Bounds(t *testing.T) {
	t.Run("宣言件数がデータより多い", func(t *testing.T) {
		payload := bytes.Join([][]byte{
			editHeader(100, 0),
			editRecord(t, editPlayer{id: 1, name: "A"}),
			editRecord(t, editPlayer{id: 2, name: "B"}),
			make([]byte, 100), // 半端なレコード
		}, nil)
		c, err := Parse(payload, layout.ShapeA())
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(c.Players()) != 2 || !c.Truncated() {
			t.Errorf("Players = %d, Truncated = %v, want 2, true", len(c.Players()), c.Truncated())
		}
	})

	t.Run("件数がデータより少ない", func(t *testing.T) {
		payload := bytes.Join([][]byte{
			editHeader(1, 0),
			editRecord(t, editPlayer{id: 1, name: "A"}),
			editRecord(t, editPlayer{id: 2, name: "B"}),
		}, nil)
		c, err := Parse(payload, layout.ShapeA())
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(c.Players()) != 1 {
			t.Errorf("len(Players()) = %d, want 1", len(c.Players()))
		}
	})

	t.Run("上限を超える件数", func(t *testing.T) {
		payload := editHeader(layout.MaxHeaderCount+1, 0)
		_, err := Parse(payload, layout.ShapeA())
		if !errors.Is(err, ErrHeaderBounds) {
			t.Fatalf("Parse() error = %v, want ErrHeaderBounds", err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Shape != layout.ShapeEdit {
			t.Errorf("error = %#v, want *ParseError", err)
		}
	})
}

func TestParseHeader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		shape   *layout.Shape
		wantErr error
	}{
		{"Aのヘッダ不足", make([]byte, 0x20), layout.ShapeA(), ErrTruncated},
		{"Bのヘッダ不足", make([]byte, 8), layout.ShapeB(), ErrTruncated},
		{"Bのバージョン超過", optionHeader(101, 16, 0), layout.ShapeB(), ErrHeaderBounds},
		{"Bのヘッダ長0", make([]byte, 16), layout.ShapeB(), ErrHeaderBounds},
		{"Bのヘッダ長超過", func() []byte {
			h := optionHeader(1, 16, 0)
			binary.LittleEndian.PutUint32(h[4:], 501)
			return h
		}(), layout.ShapeB(), ErrHeaderBounds},
		{"Bの件数超過", optionHeader(1, 16, layout.MaxHeaderCount+1), layout.ShapeB(), ErrHeaderBounds},
		{"形式なし", make([]byte, 64), nil, ErrUnknownShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHeader(tt.payload, tt.shape); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseHeader() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_OptionHeaderSizeBeyondPayload(t *testing.T) {
	// ヘッダ長がデータ長を超えていてもパニックしない
	payload := optionHeader(1, 16, 5)
	binary.LittleEndian.PutUint32(payload[4:], 400)
	c, err := Parse(payload, layout.ShapeB())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(c.Players()) != 0 || !c.Truncated() {
		t.Errorf("Players = %d, Truncated = %v", len(c.Players()), c.Truncated())
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{"範囲内の平均", []int{88, 91, 85}, 88},
		{"四捨五入", []int{40, 99}, 70},
		{"範囲外は除外", []int{80, 10, 120, 90}, 85},
		{"すべて範囲外", []int{10, 39, 100, 127}, 75},
		{"空", nil, 75},
		{"境界値", []int{40}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.values); got != tt.want {
				t.Errorf("Overall(%v) = %d, want %d", tt.values, got, tt.want)
			}
		})
	}
}

func TestParse_Teams(t *testing.T) {
	team := func(id uint32, name, short string) []byte {
		rec := make([]byte, layout.ShapeA().TeamStride)
		binary.LittleEndian.PutUint32(rec, id)
		n, _ := EncodeUTF16(name)
		copy(rec[4:], n)
		copy(rec[0x44:], short)
		return rec
	}

	payload := bytes.Join([][]byte{
		editHeader(1, 3),
		editRecord(t, editPlayer{id: 1, name: "Messi"}),
		team(100, "FC Barcelona", "BAR"),
		team(0, "", ""),
		team(101, "Real Madrid", "RMA"),
	}, nil)

	c, err := Parse(payload, layout.ShapeA())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	teams := c.Teams()
	if len(teams) != 2 {
		t.Fatalf("len(Teams()) = %d, want 2", len(teams))
	}
	if teams[0].Name != "FC Barcelona" || teams[0].ShortName != "BAR" || teams[1].ID != 101 {
		t.Errorf("Teams() = %+v", teams)
	}
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		hint    layout.ShapeID
		reg     *keyring.Registry
		want    layout.ShapeID
		wantErr bool
	}{
		{"マジック", editHeader(0, 0), "", nil, layout.ShapeEdit, false},
		{"既定の鍵一覧のマジック", editHeader(0, 0), "", keyring.Default(), layout.ShapeEdit, false},
		{"マジックを持たない鍵一覧", editHeader(0, 0), "", &keyring.Registry{}, "", true},
		{"オプションヘッダ", optionHeader(3, 80, 0), "", nil, layout.ShapeOption, false},
		{"ヒント優先", optionHeader(3, 80, 0), layout.ShapeEdit, nil, layout.ShapeEdit, false},
		{"ゼロ", make([]byte, 64), "", nil, "", true},
		{"不明なヒント", make([]byte, 64), "archive", nil, "", true},
		{"短すぎる", []byte{1, 2}, "", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DetectShape(tt.payload, tt.hint, tt.reg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectShape() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrUnknownShape) {
					t.Errorf("error = %v, want ErrUnknownShape", err)
				}
				return
			}
			if s.ID != tt.want {
				t.Errorf("DetectShape() = %q, want %q", s.ID, tt.want)
			}
		})
	}
}

func TestContainer_UpdatePlayer(t *testing.T) {
	payload := bytes.Join([][]byte{
		editHeader(2, 0),
		editRecord(t, editPlayer{id: 1, name: "Messi", ratings: []int{90, 91, 92}, age: 33, height: 170}),
		editRecord(t, editPlayer{id: 2, name: "Xavi", ratings: []int{80}, age: 40}),
	}, nil)

	orig, err := Parse(payload, layout.ShapeA())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	updated, err := orig.UpdatePlayer(1, "defense", 55)
	if err != nil {
		t.Fatalf("UpdatePlayer() error = %v", err)
	}

	p, _ := updated.Player(1)
	if v, _ := p.Rating("defense"); v != 55 {
		t.Errorf("更新後の defense = %d, want 55", v)
	}
	if v, _ := p.Rating("attack"); v != 90 {
		t.Errorf("隣接する attack = %d, want 90", v)
	}
	if v, _ := p.Rating("balance"); v != 92 {
		t.Errorf("隣接する balance = %d, want 92", v)
	}
	if p.Age != 33 || p.Height != 170 || p.Name != "Messi" {
		t.Errorf("他のフィールドが変化しました: %+v", p)
	}

	// 元の Container とペイロードは変化しない
	op, _ := orig.Player(1)
	if v, _ := op.Rating("defense"); v != 91 {
		t.Errorf("元の defense = %d, want 91", v)
	}
	if !bytes.Equal(orig.Payload(), payload) {
		t.Error("元のペイロードが変化しました")
	}
	if x, _ := updated.Player(2); x.Age != 40 {
		t.Errorf("他の選手が変化しました: age = %d", x.Age)
	}

	// 変更はレコード内の該当バイトのみ
	diff := 0
	up := updated.Payload()
	for i := range payload {
		if payload[i] != up[i] {
			diff++
			if i < 0x40+0x48 || i > 0x40+0x49 {
				t.Errorf("想定外のオフセット 0x%X が変化しました", i)
			}
		}
	}
	if diff == 0 {
		t.Error("ペイロードが変化していません")
	}
}

func TestContainer_UpdatePlayerErrors(t *testing.T) {
	payload := append(editHeader(1, 0), editRecord(t, editPlayer{id: 1, name: "Messi"})...)
	c, err := Parse(payload, layout.ShapeA())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name    string
		id      uint32
		field   string
		value   int
		wantErr error
	}{
		{"存在しない選手", 99, "attack", 50, ErrPlayerNotFound},
		{"存在しないフィールド", 1, "nickname", 1, ErrUnknownField},
		{"能力値の範囲外", 1, "attack", 128, ErrValueOutOfRange},
		{"年齢の範囲外", 1, layout.FieldAge, 60, ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.UpdatePlayer(tt.id, tt.field, tt.value); !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdatePlayer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestContainer_CopiesAreIndependent(t *testing.T) {
	payload := append(editHeader(1, 0), editRecord(t, editPlayer{id: 1, name: "Messi", ratings: []int{90}})...)
	c, err := Parse(payload, layout.ShapeA())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	payload[0x40+4] = 'X'
	ps := c.Players()
	ps[0].Ratings[0].Value = 1
	pl := c.Payload()
	pl[0] = 0

	p, _ := c.Player(1)
	if p.Name != "Messi" || p.Ratings[0].Value != 90 {
		t.Errorf("Container が外部から変更されました: %+v", p)
	}
	if c.Payload()[0] != 'W' {
		t.Error("Payload() がコピーではありません")
	}
}
