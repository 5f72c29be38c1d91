package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
	maxNameLength       = 255
)

// Service はクライアントに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase はクライアントユースケースの公開インターフェースです。
type UseCase interface {
	CreateClient(ctx context.Context, in CreateClientInput) (*Client, error)
	ListClients(ctx context.Context, in ListClientsInput) (*ListClientsResult, error)
	DeleteClient(ctx context.Context, in DeleteClientInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateClientInput はクライアント作成時の入力です。
type CreateClientInput struct {
	Name string
}

// DeleteClientInput はクライアント削除時の入力です。
type DeleteClientInput struct {
	ID string
}

// ListClientsInput は一覧取得時の入力です。
type ListClientsInput struct {
	PageSize  int
	PageToken string
}

// ListClientsResult は一覧取得結果を表します。
type ListClientsResult struct {
	Clients       []*Client
	NextPageToken string
}

// CreateClient は新しいクライアントを登録します。
func (s *Service) CreateClient(ctx context.Context, in CreateClientInput) (*Client, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	var created *Client
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.findByName(txCtx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrNameAlreadyExists
		}

		result, err := s.repo.Create(txCtx, &Client{Name: name, CreatedAt: s.clock.Now()})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// Ensure はクライアントが未登録なら登録します。既に存在する場合は何もしません。
func (s *Service) Ensure(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.findByName(txCtx, name)
		if err != nil || existing != nil {
			return err
		}
		_, err = s.repo.Create(txCtx, &Client{Name: name, CreatedAt: s.clock.Now()})
		if errors.Is(err, ErrNameAlreadyExists) {
			return nil
		}
		return err
	})
}

// DeleteClient はクライアントを削除します。紐づく求人案件は削除しません。
func (s *Service) DeleteClient(ctx context.Context, in DeleteClientInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// ListClients はクライアントの一覧を取得します。
func (s *Service) ListClients(ctx context.Context, in ListClientsInput) (*ListClientsResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var (
		clients   []*Client
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, ListClientsFilter{Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		clients = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListClientsResult{Clients: clients, NextPageToken: nextToken}, nil
}

func (s *Service) findByName(ctx context.Context, name string) (*Client, error) {
	found, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, ErrClientNotFound) {
		return nil, nil
	}
	return found, err
}

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len([]rune(name)) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
