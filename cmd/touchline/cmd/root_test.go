package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroemons/go-touchline/pkg/layout"
	"github.com/shiroemons/go-touchline/pkg/record"
)

// resetFlags は前のテストで設定されたフラグを既定値に戻します
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run は引数でルートコマンドを実行し、標準出力の内容を返します
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return out.String(), err
}

// writeEditFile は選手 1 人の平文エディットデータを書き込みます
func writeEditFile(t *testing.T, dir string) string {
	t.Helper()
	s := layout.ShapeA()
	buf := make([]byte, s.HeaderSize+s.RecordStride)
	copy(buf, "WEEDIT\x00\x01")
	binary.LittleEndian.PutUint32(buf[8:], 1)
	binary.LittleEndian.PutUint32(buf[12:], 1)

	rec := buf[s.HeaderSize:]
	binary.LittleEndian.PutUint32(rec, 22)
	name, err := record.EncodeUTF16("KAKA")
	require.NoError(t, err)
	copy(rec[s.Name.Offset:], name)
	for _, f := range s.Ratings() {
		require.NoError(t, f.Write(rec, 85))
	}

	path := filepath.Join(dir, "EDIT00000000")
	require.NoError(t, os.WriteFile(path, buf, 0644))
	return path
}

func TestKeysCommand(t *testing.T) {
	out, err := run(t, "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "PES2021")
	assert.Contains(t, out, "PES2016")
	assert.Contains(t, out, "expanded")
}

func TestDecryptEncryptParse(t *testing.T) {
	dir := t.TempDir()
	plainPath := writeEditFile(t, dir)
	encPath := filepath.Join(dir, "EDIT.enc")
	decPath := filepath.Join(dir, "EDIT.dec")

	t.Run("暗号化", func(t *testing.T) {
		out, err := run(t, "encrypt", plainPath, "--label", "PES2021", "-o", encPath)
		require.NoError(t, err)
		assert.Contains(t, out, "PES2021")
		assert.FileExists(t, encPath)
	})

	t.Run("復号", func(t *testing.T) {
		out, err := run(t, "decrypt", encPath, "-o", decPath)
		require.NoError(t, err)
		assert.Contains(t, out, "cipher:PES2021")

		want, err := os.ReadFile(plainPath)
		require.NoError(t, err)
		got, err := os.ReadFile(decPath)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("一覧表示", func(t *testing.T) {
		out, err := run(t, "parse", encPath, "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"name": "KAKA"`)
		assert.Contains(t, out, `"overall": 85`)
	})

	t.Run("書き換え", func(t *testing.T) {
		editedPath := filepath.Join(dir, "EDIT.edited")
		_, err := run(t, "set", encPath, "--id", "22", "--field", "attack", "--value", "99", "-o", editedPath)
		require.NoError(t, err)

		out, err := run(t, "parse", editedPath, "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"version": "PES2021"`)
		assert.Contains(t, out, `"value": 99`)
	})
}

func TestOutputDirFlag(t *testing.T) {
	dir := t.TempDir()
	plainPath := writeEditFile(t, dir)
	outDir := filepath.Join(dir, "out")

	_, err := run(t, "--output-dir", outDir, "decrypt", plainPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "EDIT00000000.decrypted.bin"))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "touchline.yaml")
	yaml := "extra_keys:\n  - label: my-key\n    key_hex: " +
		"00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0644))

	out, err := run(t, "--config", cfgPath, "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "my-key")

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "keys")
	assert.Error(t, err)
}

func TestCalibrateCommand(t *testing.T) {
	out, err := run(t, "calibrate", "--samples", "8", "--size", "1024", "--seed", "7", "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "8/8")
	assert.Contains(t, out, "0/8")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"引数なしの decrypt", []string{"decrypt"}},
		{"ラベルなしの encrypt", []string{"encrypt", "EDIT"}},
		{"存在しないファイル", []string{"parse", filepath.Join(t.TempDir(), "missing")}},
		{"json と tsv の併用", []string{"parse", "EDIT", "--json", "--tsv"}},
		{"不明なワード順序", []string{"encrypt", "EDIT", "--label", "PES2021", "--order", "middle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
