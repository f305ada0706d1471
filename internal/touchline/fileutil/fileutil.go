// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-touchline/internal/touchline/interfaces"
)

// MaxInputSize は読み込む入力ファイルの上限 (64 MiB)
const MaxInputSize = 64 << 20

// utf8BOM は表計算ソフト向けの TSV 出力に付ける BOM
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadInput は上限を確認してから入力ファイルを読み込みます
func ReadInput(fs interfaces.FileSystem, path string) ([]byte, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputIsDirectory, path)
	}
	if info.Size() > MaxInputSize {
		return nil, fmt.Errorf("%w: %s (%d バイト)", ErrInputTooLarge, path, info.Size())
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	return data, nil
}

// WriteOutput は出力先ディレクトリを作成してからファイルを書き込みます
func WriteOutput(fs interfaces.FileSystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
		}
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}

// WriteOutputWithBOM は UTF-8 BOM を付けてテキストを書き込みます
func WriteOutputWithBOM(fs interfaces.FileSystem, path string, content string) error {
	data := make([]byte, 0, len(utf8BOM)+len(content))
	data = append(data, utf8BOM...)
	data = append(data, content...)
	return WriteOutput(fs, path, data)
}

// GenerateOutputFilename は入力ファイル名と接尾辞から出力ファイルのパスを生成します。
// dir が空の場合は入力ファイルと同じディレクトリに出力します。
//
//	GenerateOutputFilename("data/EDIT00000000", "", "decrypted", ".bin") // data/EDIT00000000.decrypted.bin
func GenerateOutputFilename(inputPath, dir, suffix, ext string) string {
	baseName := filepath.Base(inputPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s%s", baseName, suffix, ext))
}
