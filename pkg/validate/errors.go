package validate

import "errors"

var (
	// ErrUnknownProfile は不明なプロファイル名のエラー
	ErrUnknownProfile = errors.New("validate: 不明なプロファイルです")

	// ErrInvalidThresholds はしきい値が値域外の場合のエラー
	ErrInvalidThresholds = errors.New("validate: しきい値が不正です")
)
