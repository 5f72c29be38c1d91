package leave

import "context"

// Repository は休暇申請の保存先です。申請は社員 ID ごとに登録順で保持されます。
type Repository interface {
	Create(ctx context.Context, r *Request) (*Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Request, error)
}

// IDGenerator は申請 ID を採番します。
type IDGenerator interface {
	Generate() int64
}
