package layout

// ShapeID はコンテナ形式の識別子
type ShapeID string

const (
	ShapeEdit   ShapeID = "edit"   // 主セーブコンテナ (Shape A)
	ShapeOption ShapeID = "option" // オプションファイル (Shape B)
)

// 防御的な上限値
const (
	MaxRecords     = 10000 // 1 コンテナから読み出すレコード数の上限
	MaxHeaderCount = 15000 // ヘッダのエントリ数として受け付ける上限
)

// TextEncoding は名前フィールドの文字コード
type TextEncoding int

const (
	TextASCII TextEncoding = iota
	TextUTF16LE
)

// TextField は固定長の文字列フィールド
type TextField struct {
	Offset   int
	Size     int // バイト数
	Encoding TextEncoding
}

// Shape は 1 つのコンテナ形式のヘッダとレコードのレイアウトです。
// パッケージが返す Shape は読み取り専用として扱ってください。
type Shape struct {
	ID          ShapeID
	Description string

	// ヘッダ
	HeaderSize    int // 固定ヘッダ長 (Option ではヘッダ内の headerSize が優先)
	MaxHeaderSize int // Option の headerSize の上限

	// 選手レコード
	RecordStride int
	IDOffset     int
	Name         TextField
	ShirtName    *TextField
	TeamIDOffset int // 0 未満なら無し
	Fields       []Field

	// チームレコード (0 なら無し)
	TeamStride    int
	TeamName      TextField
	TeamShortName TextField
}

// Field は名前でフィールドを検索します
func (s *Shape) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Ratings は能力値フィールドを並び順で返します
func (s *Shape) Ratings() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Kind == KindRating {
			out = append(out, f)
		}
	}
	return out
}

// HasTeams はチームレコードを持つ形式かどうかを返します
func (s *Shape) HasTeams() bool {
	return s.TeamStride > 0
}

// 属性フィールド名
const (
	FieldAge      = "age"
	FieldPosition = "position"
	FieldFoot     = "foot"
	FieldHeight   = "height"
	FieldWeight   = "weight"
)

// RatingNames は 25 個の能力値の名前 (レコード内の並び順)
var RatingNames = []string{
	"attack", "defense", "balance", "stamina", "top_speed",
	"acceleration", "response", "agility", "dribble_accuracy", "dribble_speed",
	"short_pass_accuracy", "short_pass_speed", "long_pass_accuracy", "long_pass_speed", "shot_accuracy",
	"shot_power", "shot_technique", "free_kick_accuracy", "curling", "header",
	"jump", "technique", "aggression", "mentality", "goal_keeping",
}

// Positions はポジション番号と略称の対応
var Positions = []string{"GK", "CWP", "CB", "SB", "DMF", "WB", "CMF", "SMF", "AMF", "WF", "SS", "CF"}

// PositionName はポジション番号の略称を返します
func PositionName(v int) string {
	if v < 0 || v >= len(Positions) {
		return "?"
	}
	return Positions[v]
}

var shapeA = &Shape{
	ID:          ShapeEdit,
	Description: "主セーブコンテナ",
	HeaderSize:  0x40,

	RecordStride: 240,
	IDOffset:     0x00,
	Name:         TextField{Offset: 0x04, Size: 46, Encoding: TextUTF16LE},
	ShirtName:    &TextField{Offset: 0x32, Size: 16, Encoding: TextASCII},
	TeamIDOffset: 0x44,
	Fields: append(packed(RatingNames, 0x48, 7),
		Field{Name: FieldAge, ByteOffset: 0x60, BitOffset: 0, Width: 6, Min: 15, Max: 50},
		Field{Name: FieldPosition, ByteOffset: 0x60, BitOffset: 6, Width: 4, Min: 0, Max: len(Positions) - 1},
		Field{Name: FieldFoot, ByteOffset: 0x61, BitOffset: 2, Width: 1, Min: 0, Max: 1},
		Field{Name: FieldHeight, ByteOffset: 0x62, BitOffset: 0, Width: 8, Min: 148, Max: 211},
		Field{Name: FieldWeight, ByteOffset: 0x63, BitOffset: 0, Width: 7, Min: 35, Max: 125},
	),

	TeamStride:    88,
	TeamName:      TextField{Offset: 0x04, Size: 64, Encoding: TextUTF16LE},
	TeamShortName: TextField{Offset: 0x44, Size: 4, Encoding: TextASCII},
}

var shapeB = &Shape{
	ID:            ShapeOption,
	Description:   "オプションファイル",
	HeaderSize:    16,
	MaxHeaderSize: 500,

	RecordStride: 312,
	IDOffset:     0x30,
	Name:         TextField{Offset: 0x00, Size: 46, Encoding: TextASCII},
	TeamIDOffset: -1,
	Fields: append(bytewise(RatingNames, 0x40, 7),
		Field{Name: FieldAge, ByteOffset: 0x34, Width: 7, Min: 15, Max: 50},
		Field{Name: FieldPosition, ByteOffset: 0x35, Width: 4, Min: 0, Max: len(Positions) - 1},
		Field{Name: FieldHeight, ByteOffset: 0x36, Width: 8, Min: 148, Max: 211},
		Field{Name: FieldWeight, ByteOffset: 0x37, Width: 7, Min: 35, Max: 125},
	),
}

// ShapeA は主セーブコンテナのレイアウトを返します
func ShapeA() *Shape { return shapeA }

// ShapeB はオプションファイルのレイアウトを返します
func ShapeB() *Shape { return shapeB }

// Lookup は識別子から形式を返します
func Lookup(id ShapeID) (*Shape, bool) {
	switch id {
	case ShapeEdit:
		return shapeA, true
	case ShapeOption:
		return shapeB, true
	}
	return nil, false
}

// ParseShapeID は文字列を ShapeID に変換します。"a" / "b" も受け付けます。
func ParseShapeID(s string) (ShapeID, bool) {
	switch s {
	case "edit", "a", "A":
		return ShapeEdit, true
	case "option", "b", "B":
		return ShapeOption, true
	}
	return "", false
}
