package app

import "errors"

var (
	// ErrNoInput は入力ファイルが指定されていない場合のエラー
	ErrNoInput = errors.New("入力ファイルが指定されていません")

	// ErrDecryptFailed はどの鍵候補でも復号できなかった場合のエラー
	ErrDecryptFailed = errors.New("復号できませんでした")

	// ErrNoPlayers は復号できたが選手レコードが 1 件もない場合のエラー
	ErrNoPlayers = errors.New("選手データが見つかりませんでした")

	// ErrNoLabel は暗号化するバージョンが指定されていない場合のエラー
	ErrNoLabel = errors.New("暗号化するバージョンを --label で指定してください")

	// ErrUnknownShapeHint は --shape の値が不正な場合のエラー
	ErrUnknownShapeHint = errors.New("不明なコンテナ形式です")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrInvalidCalibration は較正の設定が不正な場合のエラー
	ErrInvalidCalibration = errors.New("較正の設定が不正です")
)
