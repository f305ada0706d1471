package keyring

import "errors"

var (
	// ErrEmptyLabel はラベルが空の場合のエラー
	ErrEmptyLabel = errors.New("keyring: ラベルが空です")

	// ErrReservedLabel は予約済みラベルが指定された場合のエラー
	ErrReservedLabel = errors.New("keyring: 予約済みのラベルです")

	// ErrDuplicateLabel はラベルが重複している場合のエラー
	ErrDuplicateLabel = errors.New("keyring: ラベルが重複しています")

	// ErrUnknownSchedule は不明な鍵スケジュールのエラー
	ErrUnknownSchedule = errors.New("keyring: 不明な鍵スケジュールです")

	// ErrUnknownShape は不明なコンテナ形式のエラー
	ErrUnknownShape = errors.New("keyring: 不明なコンテナ形式です")

	// ErrKeyHex は鍵の 16 進表記が不正な場合のエラー
	ErrKeyHex = errors.New("keyring: 鍵の16進表記が不正です")
)
