package savedata

import (
	"fmt"
	"strings"

	"github.com/shiroemons/go-touchline/pkg/crypto"
	"github.com/shiroemons/go-touchline/pkg/keyring"
)

// Encrypt は payload を versionLabel の鍵で暗号化します。出力の長さは入力と同じです。
// "decrypted" はそのままコピーを返します。XOR 難読化のラベルは再暗号化できません。
func (s *Session) Encrypt(payload []byte, versionLabel string, order crypto.ByteOrder) ([]byte, error) {
	if !s.initialized() {
		return nil, ErrNotInitialized
	}
	if versionLabel == keyring.LabelDecrypted {
		return clone(payload), nil
	}
	if versionLabel == keyring.LabelXORSeed || strings.HasPrefix(versionLabel, keyring.LabelXORStreamPrefix) {
		return nil, fmt.Errorf("%w: %s", ErrExportUnsupported, versionLabel)
	}
	if !validOrder(order) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownOrder, order)
	}

	e, ok := s.ciphers[versionLabel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, versionLabel)
	}
	return crypto.EncryptECB(e.cipher, order, payload), nil
}

// Export は Decrypt の結果を元の形式に戻します。
// 展開されていた場合は同じ形式で再圧縮し、記録されたワード順序で暗号化します。
func (s *Session) Export(r Result) ([]byte, error) {
	if !s.initialized() {
		return nil, ErrNotInitialized
	}
	if !r.Success {
		return nil, fmt.Errorf("%w: 復号に成功していない結果です", ErrExportUnsupported)
	}

	payload := r.Payload
	if r.WasCompressed {
		kind := r.Compression
		if kind == "" {
			kind = keyring.CompressionZlib
		}
		packed, err := deflate(kind, payload)
		if err != nil {
			return nil, fmt.Errorf("再圧縮に失敗しました: %w", err)
		}
		payload = packed
	}
	return s.Encrypt(payload, r.VersionLabel, r.Order)
}

func validOrder(order crypto.ByteOrder) bool {
	for _, o := range crypto.Orders {
		if o == order {
			return true
		}
	}
	return false
}
