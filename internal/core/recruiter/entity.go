package recruiter

import (
	"slices"
	"strings"
	"time"
)

// Role は画面表示の切り替えに使う役割です。権限の強制には使いません。
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// Recruiter はリクルーター (社員プロフィール) エンティティです。
type Recruiter struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         Role
	ActiveJobIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone は Recruiter のディープコピーを返します。
func (r *Recruiter) Clone() *Recruiter {
	if r == nil {
		return nil
	}
	c := *r
	c.ActiveJobIDs = slices.Clone(r.ActiveJobIDs)
	return &c
}

// HasJob は案件が担当中かどうかを返します。
func (r *Recruiter) HasJob(jobID string) bool {
	return slices.Contains(r.ActiveJobIDs, jobID)
}

// AddJob は担当案件を追加します。既に担当中なら false を返します。
func (r *Recruiter) AddJob(jobID string) bool {
	if r.HasJob(jobID) {
		return false
	}
	r.ActiveJobIDs = append(r.ActiveJobIDs, jobID)
	return true
}

// RemoveJob は担当案件を外します。担当していなければ false を返します。
func (r *Recruiter) RemoveJob(jobID string) bool {
	idx := slices.Index(r.ActiveJobIDs, jobID)
	if idx < 0 {
		return false
	}
	r.ActiveJobIDs = slices.Delete(r.ActiveJobIDs, idx, idx+1)
	return true
}

// ParseRole は大文字小文字を区別せずに役割を解釈します。
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleRecruiter:
		return RoleRecruiter, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// dedupe は順序を保ったまま重複と空文字を取り除きます。
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
