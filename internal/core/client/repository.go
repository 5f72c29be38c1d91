package client

import "context"

// Repository はクライアントの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, c *Client) (*Client, error)
	Delete(ctx context.Context, id string) error
	FindByName(ctx context.Context, name string) (*Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*Client, string, error)
}

// ListClientsFilter は一覧取得時の検索条件を表します。
type ListClientsFilter struct {
	Limit  int
	Offset int
}
