package fileutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "EDIT00000000")
	want := []byte{0x01, 0x02, 0x03}
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatal(err)
	}
	fs := NewOSFileSystem()

	got, err := ReadInput(fs, path)
	if err != nil {
		t.Fatalf("ReadInput() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadInput() = %x, want %x", got, want)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"存在しないファイル", filepath.Join(dir, "missing"), ErrReadInput},
		{"ディレクトリ", dir, ErrInputIsDirectory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadInput(fs, tt.path); !errors.Is(err, tt.want) {
				t.Errorf("ReadInput() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadInput_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	// 疎ファイルとして上限を 1 バイト超える
	if err := f.Truncate(MaxInputSize + 1); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	if _, err := ReadInput(NewOSFileSystem(), path); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("ReadInput() error = %v, want ErrInputTooLarge", err)
	}
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "EDIT.bin")
	fs := NewOSFileSystem()

	if err := WriteOutput(fs, path, []byte("payload")); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Errorf("content = %q, want %q", got, "payload")
	}
	info, err := fs.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.IsDir() || info.Size() != int64(len("payload")) {
		t.Errorf("Stat() = {IsDir: %v, Size: %d}", info.IsDir(), info.Size())
	}
}

func TestWriteOutputWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.tsv")
	if err := WriteOutputWithBOM(NewOSFileSystem(), path, "id\tname\n"); err != nil {
		t.Fatalf("WriteOutputWithBOM() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xEF, 0xBB, 0xBF}, "id\tname\n"...)
	if !bytes.Equal(got, want) {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		dir    string
		suffix string
		ext    string
		want   string
	}{
		{"拡張子なし", "data/EDIT00000000", "", "decrypted", ".bin", filepath.Join("data", "EDIT00000000.decrypted.bin")},
		{"拡張子あり", "save/option.bin", "", "encrypted", ".bin", filepath.Join("save", "option.encrypted.bin")},
		{"出力ディレクトリ指定", "save/option.bin", "/tmp/out", "players", ".tsv", filepath.Join("/tmp/out", "option.players.tsv")},
		{"カレントディレクトリ", "EDIT", "", "edited", ".bin", "EDIT.edited.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateOutputFilename(tt.input, tt.dir, tt.suffix, tt.ext); got != tt.want {
				t.Errorf("GenerateOutputFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
