package savedata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/shiroemons/go-touchline/pkg/keyring"
)

// MaxInflateSize は展開後のサイズの上限
const MaxInflateSize = 256 << 20

// inflate は圧縮形式に応じて buf を展開します
func inflate(kind keyring.Compression, buf []byte) ([]byte, error) {
	switch kind {
	case keyring.CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		defer zr.Close()
		return readLimited(zr)

	case keyring.CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		defer gr.Close()
		return readLimited(gr)

	case keyring.CompressionZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(MaxInflateSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(buf, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		return out, nil

	case keyring.CompressionWESYS:
		return inflateWESYS(buf)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, kind)
}

// inflateWESYS は WESYS ヘッダ付きの zlib ストリームを展開します
func inflateWESYS(buf []byte) ([]byte, error) {
	if len(buf) < keyring.WESYSHeaderLength {
		return nil, fmt.Errorf("%w: WESYS ヘッダが不足しています", ErrInflate)
	}
	compSize := int(binary.LittleEndian.Uint32(buf[keyring.WESYSCompSize:]))
	uncompSize := int(binary.LittleEndian.Uint32(buf[keyring.WESYSUncompSize:]))
	body := buf[keyring.WESYSHeaderLength:]
	if compSize > len(body) {
		return nil, fmt.Errorf("%w: 圧縮サイズ %d がデータ長 %d を超えています", ErrInflate, compSize, len(body))
	}

	out, err := inflate(keyring.CompressionZlib, body[:compSize])
	if err != nil {
		return nil, err
	}
	if len(out) != uncompSize {
		return nil, fmt.Errorf("%w: 展開サイズ %d, ヘッダ %d", ErrInflate, len(out), uncompSize)
	}
	return out, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxInflateSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInflate, err)
	}
	if len(out) > MaxInflateSize {
		return nil, fmt.Errorf("%w: 展開サイズが上限を超えています", ErrInflate)
	}
	return out, nil
}

// deflate は payload を指定された形式で圧縮します
func deflate(kind keyring.Compression, payload []byte) ([]byte, error) {
	var b bytes.Buffer
	switch kind {
	case keyring.CompressionZlib:
		zw := zlib.NewWriter(&b)
		if _, err := zw.Write(payload); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil

	case keyring.CompressionGzip:
		gw := gzip.NewWriter(&b)
		if _, err := gw.Write(payload); err != nil {
			return nil, err
		}
		if err := gw.Close(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil

	case keyring.CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil

	case keyring.CompressionWESYS:
		body, err := deflate(keyring.CompressionZlib, payload)
		if err != nil {
			return nil, err
		}
		out := make([]byte, keyring.WESYSHeaderLength, keyring.WESYSHeaderLength+len(body))
		copy(out[keyring.WESYSMagicOffset:], "WESYS")
		binary.LittleEndian.PutUint32(out[keyring.WESYSCompSize:], uint32(len(body)))
		binary.LittleEndian.PutUint32(out[keyring.WESYSUncompSize:], uint32(len(payload)))
		return append(out, body...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, kind)
}
