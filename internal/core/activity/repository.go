package activity

import (
	"context"
	"time"
)

// Repository は週次活動記録の永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Entry, error)
	FindByJobAndWeek(ctx context.Context, jobID, weekKey string) (*Entry, error)
	List(ctx context.Context, filter ListActivitiesFilter) ([]*Entry, string, error)
	Snapshot(ctx context.Context) ([]Entry, error)
}

// ListActivitiesFilter は一覧取得用フィルタです。From/To は記録日時の範囲 (両端含む) です。
type ListActivitiesFilter struct {
	JobID       string
	RecruiterID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}
