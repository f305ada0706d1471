package record

import (
	"encoding/binary"
	"fmt"

	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/layout"
)

// オプションファイルのヘッダとして受け付けるバージョンの上限
const maxOptionVersion = 100

// Header はコンテナのヘッダ
type Header struct {
	Shape        layout.ShapeID `json:"shape"`
	Magic        string         `json:"magic,omitempty"`
	Version      uint32         `json:"version"`
	HeaderSize   uint32         `json:"header_size"`
	DataSize     uint32         `json:"data_size,omitempty"`
	PlayerCount  uint32         `json:"player_count"`
	TeamCount    uint32         `json:"team_count,omitempty"`
	LeagueCount  uint32         `json:"league_count,omitempty"`
	ManagerCount uint32         `json:"manager_count,omitempty"`
}

// recordStart は選手レコードの開始位置を返します
func (h Header) recordStart(shape *layout.Shape) int {
	if shape.ID == layout.ShapeOption {
		return int(h.HeaderSize)
	}
	return shape.HeaderSize
}

// ParseHeader は payload の先頭をヘッダとして解析します
func ParseHeader(payload []byte, shape *layout.Shape) (Header, error) {
	if shape == nil {
		return Header{}, newParseError("ParseHeader", nil, ErrUnknownShape)
	}
	if len(payload) < shape.HeaderSize {
		return Header{}, newParseError("ParseHeader", shape,
			fmt.Errorf("%w: %d バイト (ヘッダ %d バイト)", ErrTruncated, len(payload), shape.HeaderSize))
	}

	le := binary.LittleEndian
	var h Header
	switch shape.ID {
	case layout.ShapeEdit:
		h = Header{
			Shape:        shape.ID,
			Magic:        decodeASCII(payload[0:8]),
			Version:      le.Uint32(payload[8:]),
			HeaderSize:   uint32(shape.HeaderSize),
			PlayerCount:  le.Uint32(payload[12:]),
			TeamCount:    le.Uint32(payload[16:]),
			LeagueCount:  le.Uint32(payload[20:]),
			ManagerCount: le.Uint32(payload[24:]),
		}
		counts := []struct {
			name string
			v    uint32
		}{
			{"playerCount", h.PlayerCount},
			{"teamCount", h.TeamCount},
			{"leagueCount", h.LeagueCount},
			{"managerCount", h.ManagerCount},
		}
		for _, c := range counts {
			if c.v > layout.MaxHeaderCount {
				return Header{}, newParseError("ParseHeader", shape,
					fmt.Errorf("%w: %s=%d", ErrHeaderBounds, c.name, c.v))
			}
		}

	case layout.ShapeOption:
		h = Header{
			Shape:       shape.ID,
			Version:     le.Uint32(payload[0:]),
			HeaderSize:  le.Uint32(payload[4:]),
			DataSize:    le.Uint32(payload[8:]),
			PlayerCount: le.Uint32(payload[12:]),
		}
		switch {
		case h.Version > maxOptionVersion:
			return Header{}, newParseError("ParseHeader", shape, fmt.Errorf("%w: version=%d", ErrHeaderBounds, h.Version))
		case h.HeaderSize == 0 || h.HeaderSize > uint32(shape.MaxHeaderSize):
			return Header{}, newParseError("ParseHeader", shape, fmt.Errorf("%w: headerSize=%d", ErrHeaderBounds, h.HeaderSize))
		case h.PlayerCount > layout.MaxHeaderCount:
			return Header{}, newParseError("ParseHeader", shape, fmt.Errorf("%w: playerCount=%d", ErrHeaderBounds, h.PlayerCount))
		}

	default:
		return Header{}, newParseError("ParseHeader", shape, ErrUnknownShape)
	}
	return h, nil
}

// DetectShape は payload のコンテナ形式を判定します。
// hint が指定されていればそれを優先し、次に reg の平文マジック、最後にオプションファイルのヘッダを調べます。
// reg が nil なら keyring.Default() を使います。
func DetectShape(payload []byte, hint layout.ShapeID, reg *keyring.Registry) (*layout.Shape, error) {
	if hint != "" {
		s, ok := layout.Lookup(hint)
		if !ok {
			return nil, newParseError("DetectShape", nil, fmt.Errorf("%w: %q", ErrUnknownShape, hint))
		}
		return s, nil
	}

	if reg == nil {
		reg = keyring.Default()
	}
	if sig, ok := reg.Signature(payload); ok {
		if s, ok := layout.Lookup(sig.Shape); ok {
			return s, nil
		}
	}

	option := layout.ShapeB()
	if _, err := ParseHeader(payload, option); err == nil {
		return option, nil
	}
	return nil, newParseError("DetectShape", nil, ErrUnknownShape)
}
