package record

import (
	"encoding/binary"
	"math"
	"regexp"

	"github.com/shiroemons/go-touchline/pkg/layout"
)

// 総合値の算出に使う能力値の範囲と、該当なしの場合の既定値
const (
	overallMin     = 40
	overallMax     = 99
	defaultOverall = 75
)

const (
	sentinelEmpty = 0x00000000
	sentinelFree  = 0xFFFFFFFF
)

// オプションファイルの名前として受け付ける最短の長さ
const minOptionNameLength = 3

var optionNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'\-]*[A-Za-z.]$`)

// Rating は名前付きの能力値
type Rating struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Player は選手レコード
type Player struct {
	ID        uint32   `json:"id"`
	Ordinal   int      `json:"ordinal"`
	Offset    int      `json:"offset"`
	Name      string   `json:"name"`
	ShirtName string   `json:"shirt_name,omitempty"`
	TeamID    uint32   `json:"team_id,omitempty"`
	Age       int      `json:"age"`
	Position  int      `json:"position"`
	Foot      int      `json:"foot"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Ratings   []Rating `json:"ratings"`
	Overall   int      `json:"overall"`
}

// PositionName はポジションの略称を返します
func (p *Player) PositionName() string {
	return layout.PositionName(p.Position)
}

// Rating は名前で能力値を返します
func (p *Player) Rating(name string) (int, bool) {
	for _, r := range p.Ratings {
		if r.Name == name {
			return r.Value, true
		}
	}
	return 0, false
}

func (p Player) clone() Player {
	p.Ratings = append([]Rating(nil), p.Ratings...)
	return p
}

// Team はチームレコード
type Team struct {
	ID        uint32 `json:"id"`
	Offset    int    `json:"offset"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Overall は能力値から総合値を計算します。
// [40, 99] に収まる値の平均を四捨五入し、該当が無ければ 75 を返します。
func Overall(values []int) int {
	sum, n := 0, 0
	for _, v := range values {
		if v >= overallMin && v <= overallMax {
			sum += v
			n++
		}
	}
	if n == 0 {
		return defaultOverall
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// ParsePlayer は offset から 1 件の選手レコードを解析します。
// edit では番兵値の ID、option では不正な名前のレコードに false を返します。
func ParsePlayer(payload []byte, shape *layout.Shape, offset, ordinal int) (*Player, bool) {
	if shape == nil || offset < 0 || offset+shape.RecordStride > len(payload) {
		return nil, false
	}
	rec := payload[offset : offset+shape.RecordStride]

	p := &Player{Ordinal: ordinal, Offset: offset}
	id := binary.LittleEndian.Uint32(rec[shape.IDOffset:])

	switch shape.ID {
	case layout.ShapeOption:
		p.Name = optionName(rec, shape.Name)
		if len(p.Name) < minOptionNameLength || !optionNamePattern.MatchString(p.Name) {
			return nil, false
		}
		// option ファイルの ID は名前だけで判定し、番兵値は序数で置き換える
		if id == sentinelEmpty || id == sentinelFree {
			id = uint32(ordinal + 1)
		}
	default:
		if id == sentinelEmpty || id == sentinelFree {
			return nil, false
		}
		p.Name = readText(rec, shape.Name)
	}
	p.ID = id

	if shape.ShirtName != nil {
		p.ShirtName = readText(rec, *shape.ShirtName)
	}
	if shape.TeamIDOffset >= 0 {
		p.TeamID = binary.LittleEndian.Uint32(rec[shape.TeamIDOffset:])
	}

	values := make([]int, 0, len(layout.RatingNames))
	for _, f := range shape.Fields {
		v, ok := f.Read(rec)
		if !ok {
			continue
		}
		if f.Kind == layout.KindRating {
			p.Ratings = append(p.Ratings, Rating{Name: f.Name, Value: v})
			values = append(values, v)
			continue
		}
		switch f.Name {
		case layout.FieldAge:
			p.Age = v
		case layout.FieldPosition:
			p.Position = v
		case layout.FieldFoot:
			p.Foot = v
		case layout.FieldHeight:
			p.Height = v
		case layout.FieldWeight:
			p.Weight = v
		}
	}
	p.Overall = Overall(values)
	return p, true
}

// parseTeam は offset から 1 件のチームレコードを解析します
func parseTeam(payload []byte, shape *layout.Shape, offset int) (Team, bool) {
	if offset < 0 || offset+shape.TeamStride > len(payload) {
		return Team{}, false
	}
	rec := payload[offset : offset+shape.TeamStride]
	id := binary.LittleEndian.Uint32(rec)
	if id == sentinelEmpty || id == sentinelFree {
		return Team{}, false
	}
	return Team{
		ID:        id,
		Offset:    offset,
		Name:      readText(rec, shape.TeamName),
		ShortName: readText(rec, shape.TeamShortName),
	}, true
}
