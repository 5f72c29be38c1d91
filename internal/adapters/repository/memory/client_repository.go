package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
)

// ClientRepository はプロセス内メモリにクライアントを保持します。
type ClientRepository struct {
	notifier
	mu    sync.RWMutex
	items []*client.Client
}

// NewClientRepository は ClientRepository を生成します。
func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

// Create はクライアントを保存します。
func (r *ClientRepository) Create(_ context.Context, c *client.Client) (*client.Client, error) {
	stored := *c
	stored.ID = uuid.NewString()

	r.mu.Lock()
	if slices.ContainsFunc(r.items, func(existing *client.Client) bool { return existing.Name == stored.Name }) {
		r.mu.Unlock()
		return nil, client.ErrNameAlreadyExists
	}
	r.items = append(r.items, &stored)
	r.mu.Unlock()

	r.publish(Event{Entity: "client", Op: OpCreated, ID: stored.ID})
	out := stored
	return &out, nil
}

// Delete はクライアントを削除します。
func (r *ClientRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	idx := slices.IndexFunc(r.items, func(c *client.Client) bool { return c.ID == id })
	if idx < 0 {
		r.mu.Unlock()
		return client.ErrClientNotFound
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	r.mu.Unlock()

	r.publish(Event{Entity: "client", Op: OpDeleted, ID: id})
	return nil
}

// FindByName は名前でクライアントを取得します。
func (r *ClientRepository) FindByName(_ context.Context, name string) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slices.IndexFunc(r.items, func(c *client.Client) bool { return c.Name == name })
	if idx < 0 {
		return nil, client.ErrClientNotFound
	}
	out := *r.items[idx]
	return &out, nil
}

// List は登録順にクライアントを返します。
func (r *ClientRepository) List(_ context.Context, filter client.ListClientsFilter) ([]*client.Client, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copies := make([]*client.Client, 0, len(r.items))
	for _, c := range r.items {
		out := *c
		copies = append(copies, &out)
	}

	page, next := paginate(copies, filter.Offset, filter.Limit)
	return page, next, nil
}
