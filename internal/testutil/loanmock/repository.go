package loanmock

import (
	"context"
	"time"

	domain "otsc-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository.
// Only fill in the fields a test needs; unfilled lookups return
// context.Canceled so a missing stub is obvious.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanNumberFn          func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByLoanNumberForUpdateFn func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetOpenLoanByMemberIDFn    func(ctx context.Context, memberID uint64) (*domain.Loan, error)
	ListFn                     func(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error)
	StatsFn                    func(ctx context.Context) (*domain.PortfolioStats, error)
	ListDueOnFn                func(ctx context.Context, day time.Time) ([]domain.Loan, error)
	ListOverdueFn              func(ctx context.Context, today time.Time) ([]domain.Loan, error)
	ListDueBetweenFn           func(ctx context.Context, from, to time.Time) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberFn != nil {
		return m.GetByLoanNumberFn(ctx, loanNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberForUpdateFn != nil {
		return m.GetByLoanNumberForUpdateFn(ctx, loanNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOpenLoanByMemberID(ctx context.Context, memberID uint64) (*domain.Loan, error) {
	if m.GetOpenLoanByMemberIDFn != nil {
		return m.GetOpenLoanByMemberIDFn(ctx, memberID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) Stats(ctx context.Context) (*domain.PortfolioStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListDueOn(ctx context.Context, day time.Time) ([]domain.Loan, error) {
	if m.ListDueOnFn != nil {
		return m.ListDueOnFn(ctx, day)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, today)
	}
	return nil, context.Canceled
}

func (m *Repo) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Loan, error) {
	if m.ListDueBetweenFn != nil {
		return m.ListDueBetweenFn(ctx, from, to)
	}
	return nil, context.Canceled
}
