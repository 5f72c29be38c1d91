package client

import "errors"

var (
	// ErrClientNotFound はクライアントが存在しない場合に返却されます。
	ErrClientNotFound = errors.New("client: not found")
	// ErrNameAlreadyExists はクライアント名重複時に返却されます。
	ErrNameAlreadyExists = errors.New("client: name already exists")
	// ErrInvalidName はクライアント名が不正な場合に返却されます。
	ErrInvalidName = errors.New("client: invalid name")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("client: invalid id")
	// ErrInvalidPageSize は一覧取得時のページサイズが不正な場合に返却されます。
	ErrInvalidPageSize = errors.New("client: invalid page size")
	// ErrInvalidPageToken は一覧取得時のページトークンが不正な場合に返却されます。
	ErrInvalidPageToken = errors.New("client: invalid page token")
)
