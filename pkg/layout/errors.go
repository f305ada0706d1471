package layout

import "errors"

var (
	// ErrValueOutOfRange は書き込む値がフィールドの範囲外の場合のエラー
	ErrValueOutOfRange = errors.New("値がフィールドの範囲外です")

	// ErrFieldOutOfBounds はフィールドの窓がレコードに収まらない場合のエラー
	ErrFieldOutOfBounds = errors.New("フィールドがレコードの範囲外です")

	// ErrUnknownField は存在しないフィールド名が指定された場合のエラー
	ErrUnknownField = errors.New("不明なフィールドです")
)
