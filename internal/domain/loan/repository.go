package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status   Status
	MemberID uint64
}

// PortfolioStats are the aggregate figures shown on the loan register.
type PortfolioStats struct {
	TotalDisbursed   decimal.Decimal `json:"total_disbursed"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	ActiveLoans      int64           `json:"active_loans"`
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanNumber(ctx context.Context, loanNumber string) (*Loan, error)
	// GetByLoanNumberForUpdate locks the loan row for the surrounding
	// transaction so concurrent guarantor responses serialize.
	GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	// GetOpenLoanByMemberID returns the member's loan in any non-terminal
	// status, or gorm.ErrRecordNotFound.
	GetOpenLoanByMemberID(ctx context.Context, memberID uint64) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	Stats(ctx context.Context) (*PortfolioStats, error)

	// Reminder scanner queries. All match servicing statuses (Active plus
	// legacy Disbursed) with balance > 0.
	ListDueOn(ctx context.Context, day time.Time) ([]Loan, error)
	ListOverdue(ctx context.Context, today time.Time) ([]Loan, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]Loan, error)
}
