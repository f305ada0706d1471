// Package interfaces は touchline コマンドで使用するインターフェースを定義します
package interfaces

import (
	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/savedata"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
	Size() int64
}

// Decrypter はエディットデータを復号・再暗号化するインターフェース。
// *savedata.Session が実装します。
type Decrypter interface {
	Decrypt(data []byte) (savedata.Result, error)
	Encrypt(payload []byte, versionLabel string, order crypto.ByteOrder) ([]byte, error)
	Export(r savedata.Result) ([]byte, error)
	Registry() *keyring.Registry
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}

var _ Decrypter = (*savedata.Session)(nil)
