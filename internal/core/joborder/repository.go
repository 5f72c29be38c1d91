package joborder

import "context"

// Repository は求人案件永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, job *JobOrder) (*JobOrder, error)
	Update(ctx context.Context, job *JobOrder) (*JobOrder, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*JobOrder, error)
	List(ctx context.Context, filter ListJobOrdersFilter) ([]*JobOrder, string, error)
	// Snapshot は全求人案件のコピーを返します。集計処理の入力として利用します。
	Snapshot(ctx context.Context) ([]JobOrder, error)
}

// ListJobOrdersFilter は一覧取得用フィルタです。
type ListJobOrdersFilter struct {
	Status     *Status
	ClientName string
	Limit      int
	Offset     int
}
