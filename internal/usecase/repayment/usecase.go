package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/repayment"
	"otsc-backend/internal/domain/sequence"
	"otsc-backend/internal/domain/uow"
	"otsc-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Usecase records payments against active loans, splitting each amount into
// principal and interest by the ratios fixed at approval time.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type RecordInput struct {
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"payment_date"`
	PaymentMethod  string          `json:"payment_method"`
	TransactionRef string          `json:"transaction_reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	RecordedBy     uint64          `json:"-"`
}

type Result struct {
	Loan      *loan.Loan           `json:"loan"`
	Repayment *repayment.Repayment `json:"repayment"`
}

// Record appends an immutable repayment, updates the running totals and
// completes the loan once the balance reaches zero. The split ratios come
// from the approval-time figures and apply to every payment uniformly,
// including ones made after the due date.
func (u *Usecase) Record(ctx context.Context, loanNumber string, in RecordInput) (*Result, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, loan.ErrInvalidAmount
	}
	if in.PaymentMethod == "" {
		return nil, fmt.Errorf("payment method is required: %w", loan.ErrValidation)
	}
	if in.PaymentDate.IsZero() {
		return nil, fmt.Errorf("payment date is required: %w", loan.ErrValidation)
	}

	var out Result
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsServicing() {
			return fmt.Errorf("cannot record a repayment for loan in status %s: %w", l.Status, loan.ErrInvalidState)
		}

		prefix := sequence.ReceiptPrefix(in.PaymentDate.Year(), int(in.PaymentDate.Month()))
		n, err := r.Sequences.Next(ctx, prefix)
		if err != nil {
			return err
		}

		principalPortion, interestPortion := Allocate(in.Amount, l.AmountApproved.Decimal, l.TotalPayable)

		rp := &repayment.Repayment{
			RepaymentID:      id.NewID32(),
			LoanID:           l.ID,
			ReceiptNumber:    sequence.Format(prefix, n),
			PaymentDate:      in.PaymentDate,
			AmountPaid:       in.Amount,
			PrincipalPortion: principalPortion,
			InterestPortion:  interestPortion,
			PaymentMethod:    in.PaymentMethod,
			TransactionRef:   in.TransactionRef,
			Notes:            in.Notes,
			RecordedBy:       in.RecordedBy,
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}

		l.TotalPaid = l.TotalPaid.Add(in.Amount)
		l.Balance = l.TotalPayable.Sub(l.TotalPaid)
		if !l.Balance.IsPositive() {
			l.Status = loan.StatusCompleted
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		out = Result{Loan: l, Repayment: rp}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Allocate splits a payment proportionally between principal and interest.
// The principal portion is rounded to cents and the interest portion is the
// exact remainder, so the two always sum to the amount paid.
func Allocate(amount, principal, totalPayable decimal.Decimal) (principalPortion, interestPortion decimal.Decimal) {
	if totalPayable.IsZero() {
		return amount, decimal.Zero
	}
	principalPortion = amount.Mul(principal).Div(totalPayable).Round(2)
	interestPortion = amount.Sub(principalPortion)
	return principalPortion, interestPortion
}
