package mocks

import (
	"github.com/shiroemons/go-touchline/internal/touchline/interfaces"
	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/keyring"
	"github.com/shiroemons/go-touchline/pkg/savedata"
)

// MockDecrypter はテスト用の Decrypter モック
type MockDecrypter struct {
	DecryptFunc func(data []byte) (savedata.Result, error)
	EncryptFunc func(payload []byte, versionLabel string, order crypto.ByteOrder) ([]byte, error)
	ExportFunc  func(r savedata.Result) ([]byte, error)
	Reg         *keyring.Registry

	DecryptCalls int
	ExportCalls  int
}

var _ interfaces.Decrypter = (*MockDecrypter)(nil)

// Decrypt はモックの Decrypt を呼び出します
func (m *MockDecrypter) Decrypt(data []byte) (savedata.Result, error) {
	m.DecryptCalls++
	if m.DecryptFunc != nil {
		return m.DecryptFunc(data)
	}
	return savedata.Result{Payload: data, VersionLabel: keyring.LabelUnknown}, nil
}

// Encrypt はモックの Encrypt を呼び出します
func (m *MockDecrypter) Encrypt(payload []byte, versionLabel string, order crypto.ByteOrder) ([]byte, error) {
	if m.EncryptFunc != nil {
		return m.EncryptFunc(payload, versionLabel, order)
	}
	return append([]byte(nil), payload...), nil
}

// Export はモックの Export を呼び出します
func (m *MockDecrypter) Export(r savedata.Result) ([]byte, error) {
	m.ExportCalls++
	if m.ExportFunc != nil {
		return m.ExportFunc(r)
	}
	return append([]byte(nil), r.Payload...), nil
}

// Registry はレジストリを返します。未設定なら既定のレジストリです。
func (m *MockDecrypter) Registry() *keyring.Registry {
	if m.Reg != nil {
		return m.Reg
	}
	return keyring.Default()
}
