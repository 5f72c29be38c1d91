package recruiter

import "context"

// Repository はリクルーター永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, r *Recruiter) (*Recruiter, error)
	Update(ctx context.Context, r *Recruiter) (*Recruiter, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Recruiter, error)
	FindByEmail(ctx context.Context, email string) (*Recruiter, error)
	List(ctx context.Context, filter ListRecruitersFilter) ([]*Recruiter, string, error)
	// RemoveJobFromAll は全リクルーターの担当案件から jobID を外します。
	RemoveJobFromAll(ctx context.Context, jobID string) error
}

// ListRecruitersFilter は一覧取得用フィルタです。
type ListRecruitersFilter struct {
	Role   *Role
	JobID  string
	Limit  int
	Offset int
}
