// Package record は復号済みペイロードからヘッダ、選手、チームを取り出します。
//
// Container は解析結果を保持する不変の値です。フィールドの更新は
// ペイロードを複製して行い、新しい Container を返します。
package record

import (
	"fmt"

	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/layout"
)

// Container は 1 つのペイロードの解析結果
type Container struct {
	shape     *layout.Shape
	header    Header
	payload   []byte
	players   []Player
	teams     []Team
	index     map[uint32]int
	truncated bool
}

// Parse は payload を shape として解析します。payload は複製して保持されます。
// 宣言された件数が上限やデータ長を超える場合は読める範囲で打ち切ります。
func Parse(payload []byte, shape *layout.Shape) (*Container, error) {
	h, err := ParseHeader(payload, shape)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)
	c := &Container{
		shape:   shape,
		header:  h,
		payload: buf,
		index:   make(map[uint32]int),
	}
	c.parsePlayers()
	if shape.HasTeams() {
		c.parseTeams()
	}
	return c, nil
}

// ParseDetected は形式を判定してから解析します
func ParseDetected(payload []byte, hint layout.ShapeID, reg *keyring.Registry) (*Container, error) {
	shape, err := DetectShape(payload, hint, reg)
	if err != nil {
		return nil, err
	}
	return Parse(payload, shape)
}

func (c *Container) parsePlayers() {
	count := int(c.header.PlayerCount)
	if count > layout.MaxRecords {
		count = layout.MaxRecords
		c.truncated = true
	}

	start := c.header.recordStart(c.shape)
	names := make(map[string]bool)
	for i := 0; i < count; i++ {
		off := start + i*c.shape.RecordStride
		if off+c.shape.RecordStride > len(c.payload) {
			c.truncated = true
			break
		}
		p, ok := ParsePlayer(c.payload, c.shape, off, i)
		if !ok {
			continue
		}
		if c.shape.ID == layout.ShapeOption {
			if names[p.Name] {
				continue
			}
			names[p.Name] = true
			p.ID = c.freeID(p.ID, i)
		} else if _, dup := c.index[p.ID]; dup {
			continue
		}
		c.index[p.ID] = len(c.players)
		c.players = append(c.players, *p)
	}
}

// freeID は option レコードの ID が既存と衝突する場合に未使用の ID を返します
func (c *Container) freeID(id uint32, ordinal int) uint32 {
	if _, dup := c.index[id]; !dup {
		return id
	}
	id = uint32(ordinal + 1)
	for {
		if _, dup := c.index[id]; !dup && id != sentinelEmpty && id != sentinelFree {
			return id
		}
		id++
	}
}

func (c *Container) parseTeams() {
	count := int(c.header.TeamCount)
	if count > layout.MaxRecords {
		count = layout.MaxRecords
		c.truncated = true
	}

	start := c.header.recordStart(c.shape) + int(c.header.PlayerCount)*c.shape.RecordStride
	for i := 0; i < count; i++ {
		off := start + i*c.shape.TeamStride
		if off+c.shape.TeamStride > len(c.payload) {
			c.truncated = true
			break
		}
		if t, ok := parseTeam(c.payload, c.shape, off); ok {
			c.teams = append(c.teams, t)
		}
	}
}

// Shape はコンテナ形式を返します
func (c *Container) Shape() *layout.Shape {
	return c.shape
}

// Header はヘッダを返します
func (c *Container) Header() Header {
	return c.header
}

// Players は選手をファイル内の順序で返します (コピー)
func (c *Container) Players() []Player {
	out := make([]Player, len(c.players))
	for i, p := range c.players {
		out[i] = p.clone()
	}
	return out
}

// Teams はチームを返します (コピー)
func (c *Container) Teams() []Team {
	return append([]Team(nil), c.teams...)
}

// Player は ID で選手を検索します
func (c *Container) Player(id uint32) (Player, bool) {
	i, ok := c.index[id]
	if !ok {
		return Player{}, false
	}
	return c.players[i].clone(), true
}

// Payload はペイロードのコピーを返します
func (c *Container) Payload() []byte {
	out := make([]byte, len(c.payload))
	copy(out, c.payload)
	return out
}

// Truncated は上限やデータ長により読み出しを打ち切ったかどうかを返します
func (c *Container) Truncated() bool {
	return c.truncated
}

// UpdatePlayer は選手のフィールドを書き換えた新しい Container を返します。c は変更されません。
func (c *Container) UpdatePlayer(id uint32, field string, value int) (*Container, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrPlayerNotFound, id)
	}
	f, ok := c.shape.Field(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	buf := c.Payload()
	off := c.players[i].Offset
	if err := f.Write(buf[off:off+c.shape.RecordStride], value); err != nil {
		return nil, err
	}
	return Parse(buf, c.shape)
}
