package savedata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized は Session が初期化されていない場合のエラー
	ErrNotInitialized = errors.New("savedata: Session が初期化されていません")

	// ErrUnknownVersion は鍵候補に無いバージョンラベルのエラー
	ErrUnknownVersion = errors.New("savedata: 不明なバージョンです")

	// ErrExportUnsupported は再暗号化できない結果のエラー
	ErrExportUnsupported = errors.New("savedata: この形式は再暗号化できません")

	// ErrUnknownOrder は不明なワード順序のエラー
	ErrUnknownOrder = errors.New("savedata: 不明なワード順序です")

	// ErrInflate は展開に失敗した場合のエラー
	ErrInflate = errors.New("savedata: 展開に失敗しました")

	// ErrUnknownCompression は不明な圧縮形式のエラー
	ErrUnknownCompression = errors.New("savedata: 不明な圧縮形式です")
)

// InitError は鍵候補の暗号生成に失敗した場合のエラー
type InitError struct {
	Label string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("savedata: 鍵候補 %s の初期化に失敗しました: %v", e.Label, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
