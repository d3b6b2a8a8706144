package membermock

import (
	"context"

	domain "otsc-backend/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies member.Repository.
type Repo struct {
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Member, error)
	GetByMemberNumberFn func(ctx context.Context, memberNumber string) (*domain.Member, error)
	ListExecutivesFn    func(ctx context.Context) ([]domain.Member, error)
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Member, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByMemberNumber(ctx context.Context, memberNumber string) (*domain.Member, error) {
	if m.GetByMemberNumberFn != nil {
		return m.GetByMemberNumberFn(ctx, memberNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) ListExecutives(ctx context.Context) ([]domain.Member, error) {
	if m.ListExecutivesFn != nil {
		return m.ListExecutivesFn(ctx)
	}
	return nil, nil
}
