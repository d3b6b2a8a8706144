package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Usecase is the executive approval gate. A single approver is recorded,
// matching the club's observed practice; the constitution's three-signature
// rule is not enforced here.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type ApproveInput struct {
	ApproverMemberID uint64          `json:"-"`
	AmountApproved   decimal.Decimal `json:"amount_approved"`
	Notes            string          `json:"notes,omitempty"`
}

// Approve grants executive approval, fixes the payable amount and opens the
// way to disbursement. Re-approval of an already Approved loan is allowed
// so the amount can be corrected before disbursement; the payable figure is
// re-derived each time.
func (u *Usecase) Approve(ctx context.Context, loanNumber string, in ApproveInput) (*loan.Loan, error) {
	var updated *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusPendingExecutiveApproval && l.Status != loan.StatusApproved {
			return fmt.Errorf("loan %s is not ready for executive approval: %w", l.LoanNumber, loan.ErrInvalidState)
		}
		if !l.BothGuarantorsApproved() {
			return loan.ErrGuarantorsNotApproved
		}
		if slot, _ := l.SlotFor(in.ApproverMemberID); slot != nil {
			return loan.ErrConflictOfInterest
		}
		if in.AmountApproved.LessThanOrEqual(decimal.Zero) {
			return loan.ErrInvalidAmount
		}

		now := time.Now().UTC()
		l.AmountApproved = decimal.NewNullDecimal(in.AmountApproved)
		l.ApprovalNotes = in.Notes
		l.ApprovalDate = &now
		l.ApprovedBy = in.ApproverMemberID
		l.ExecutiveApproved = true
		l.Status = loan.StatusApproved
		l.CalculateTotalPayable()

		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return updated, nil
}

// Reject turns down a pending application.
func (u *Usecase) Reject(ctx context.Context, loanNumber string, reason string) (*loan.Loan, error) {
	var updated *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusPendingGuarantorApproval && l.Status != loan.StatusPendingExecutiveApproval {
			return fmt.Errorf("only pending loans can be rejected: %w", loan.ErrInvalidState)
		}
		now := time.Now().UTC()
		l.Status = loan.StatusRejected
		l.ApprovalNotes = reason
		l.ApprovalDate = &now
		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return updated, nil
}

// MarkDefaulted is the deliberate administrative transition for an overdue
// loan. The reminder scanner only reports overdue loans; nothing defaults
// automatically.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanNumber string, recoveryNotes string) (*loan.Loan, error) {
	var updated *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsServicing() {
			return fmt.Errorf("only active loans can be marked defaulted: %w", loan.ErrInvalidState)
		}
		if !l.Balance.IsPositive() {
			return fmt.Errorf("loan %s has no outstanding balance: %w", l.LoanNumber, loan.ErrInvalidState)
		}
		now := time.Now().UTC()
		l.Status = loan.StatusDefaulted
		l.DefaultDate = &now
		l.RecoveryNotes = recoveryNotes
		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return updated, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
