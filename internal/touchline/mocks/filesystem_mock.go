// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"path/filepath"

	"github.com/shiroemons/go-touchline/internal/touchline/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files      map[string][]byte
	Dirs       map[string]bool
	Error      error // すべての操作で返すエラー
	WriteError error // WriteFile のみで返すエラー
}

var _ interfaces.FileSystem = (*MockFileSystem)(nil)

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return append([]byte(nil), data...), nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Files[filename] = append([]byte(nil), data...)
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	if data, exists := fs.Files[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if _, exists := fs.Dirs[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, errors.New("file not found")
}

// MockFileInfo はテスト用のFileInfo実装
type MockFileInfo struct {
	name  string
	isDir bool
	size  int64
}

// Name はファイル名を返します
func (fi *MockFileInfo) Name() string {
	return fi.name
}

// IsDir はディレクトリかどうかを返します
func (fi *MockFileInfo) IsDir() bool {
	return fi.isDir
}

// Size はファイルサイズを返します
func (fi *MockFileInfo) Size() int64 {
	return fi.size
}
