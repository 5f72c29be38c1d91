package memory

import (
	"strconv"
	"sync"
)

// Op はストアに対する変更操作の種類です。
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Event はストア変更の通知です。
type Event struct {
	Entity string
	Op     Op
	ID     string
}

// notifier は変更通知の購読者を保持します。通知はロック解放後に同期的に配送されます。
type notifier struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

// Subscribe は変更通知の購読者を登録します。
func (n *notifier) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

func (n *notifier) publish(ev Event) {
	n.mu.RLock()
	listeners := append([]func(Event){}, n.listeners...)
	n.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// paginate は offset/limit で切り出し、続きがあれば次ページトークンを返します。
func paginate[T any](items []T, offset, limit int) ([]T, string) {
	if offset >= len(items) {
		return []T{}, ""
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	next := ""
	if end < len(items) {
		next = strconv.Itoa(end)
	}
	return items[offset:end], next
}
