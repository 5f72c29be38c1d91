package client

import "time"

// Client は求人案件の発注元クライアントです。名前で一意に識別されます。
type Client struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
