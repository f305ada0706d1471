package fileutil

import (
	"os"

	"github.com/shiroemons/go-touchline/internal/touchline/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

var _ interfaces.FileSystem = (*OSFileSystem)(nil)

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// MkdirAll はディレクトリを作成します
func (fs *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// Stat はファイル情報を取得します
func (fs *OSFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	return os.Stat(name)
}
