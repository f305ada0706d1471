package record

import (
	"errors"
	"fmt"

	"github.com/shiroemons/go-touchline/pkg/layout"
)

var (
	// ErrHeaderBounds はヘッダの値が妥当な範囲外の場合のエラー
	ErrHeaderBounds = errors.New("ヘッダの値が範囲外です")

	// ErrTruncated はデータがヘッダより短い場合のエラー
	ErrTruncated = errors.New("データが途中で切れています")

	// ErrUnknownShape はコンテナ形式を判定できない場合のエラー
	ErrUnknownShape = errors.New("コンテナ形式を判定できません")

	// ErrPlayerNotFound は指定された ID の選手がいない場合のエラー
	ErrPlayerNotFound = errors.New("選手が見つかりません")

	// ErrUnknownField は存在しないフィールド名のエラー
	ErrUnknownField = layout.ErrUnknownField

	// ErrValueOutOfRange は書き込む値が範囲外の場合のエラー
	ErrValueOutOfRange = layout.ErrValueOutOfRange
)

// ParseError は解析関連のエラー
type ParseError struct {
	Op    string         // 実行していた操作
	Shape layout.ShapeID // コンテナ形式
	Err   error          // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ParseError) Error() string {
	if e.Shape != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Shape, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(op string, shape *layout.Shape, err error) *ParseError {
	pe := &ParseError{Op: op, Err: err}
	if shape != nil {
		pe.Shape = shape.ID
	}
	return pe
}
