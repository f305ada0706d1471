package record

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/shiroemons/go-touchline/pkg/layout"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// readText は固定長の文字列フィールドを読み込みます
func readText(rec []byte, f layout.TextField) string {
	if f.Offset < 0 || f.Offset+f.Size > len(rec) {
		return ""
	}
	b := rec[f.Offset : f.Offset+f.Size]
	if f.Encoding == layout.TextUTF16LE {
		return decodeUTF16(b)
	}
	return decodeASCII(b)
}

// decodeUTF16 は終端の NUL 文字までを UTF-16LE として変換します
func decodeUTF16(b []byte) string {
	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			n = i
			break
		}
	}
	s, err := utf16le.NewDecoder().Bytes(b[:n])
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(s))
}

// decodeASCII は NUL までを文字列にし、印字可能文字以外を除去します
func decodeASCII(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c >= 0x20 && c <= 0x7E {
			out = append(out, c)
		}
	}
	return strings.TrimSpace(string(out))
}

// optionName はオプションファイルの名前欄を読み込みます。
// 印字可能な ASCII が続く範囲だけを取り出します。
func optionName(rec []byte, f layout.TextField) string {
	end := f.Offset + f.Size
	if end > len(rec) {
		end = len(rec)
	}
	var sb strings.Builder
	for _, c := range rec[f.Offset:end] {
		if c < 0x20 || c > 0x7E {
			break
		}
		sb.WriteByte(c)
	}
	return strings.TrimSpace(sb.String())
}

// EncodeUTF16 は s を UTF-16LE に変換します
func EncodeUTF16(s string) ([]byte, error) {
	return utf16le.NewEncoder().Bytes([]byte(s))
}
