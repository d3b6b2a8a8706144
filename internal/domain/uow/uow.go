package uow

import (
	"context"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/domain/repayment"
	"otsc-backend/internal/domain/sequence"
)

// Repos bundles the transaction-scoped repositories handed to a unit of
// work callback.
type Repos struct {
	Loans      loan.Repository
	Repayments repayment.Repository
	Members    member.Repository
	Sequences  sequence.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn in one db transaction; any error rolls back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. All
	// lifecycle mutations go through this so concurrent responses to the
	// same loan serialize at the store.
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}
