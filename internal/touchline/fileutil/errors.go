package fileutil

import "errors"

var (
	// ErrCreateDirectory は出力先ディレクトリの作成に失敗した場合のエラー
	ErrCreateDirectory = errors.New("出力先ディレクトリの作成に失敗しました")

	// ErrWriteContent は内容の書き込みに失敗した場合のエラー
	ErrWriteContent = errors.New("内容の書き込みに失敗しました")

	// ErrReadInput は入力ファイルを読み込めない場合のエラー
	ErrReadInput = errors.New("入力ファイルを読み込めませんでした")

	// ErrInputTooLarge は入力ファイルが上限を超える場合のエラー
	ErrInputTooLarge = errors.New("入力ファイルが大きすぎます")

	// ErrInputIsDirectory は入力パスがディレクトリの場合のエラー
	ErrInputIsDirectory = errors.New("入力パスがディレクトリです")
)
