package disbursement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase moves an approved loan into servicing, fixing the due date at
// disbursement time.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type DisburseInput struct {
	DisbursementDate time.Time `json:"disbursement_date"`
	// DocumentPath references the stored withdrawal slip; required.
	DocumentPath string `json:"document_path"`
	Reference    string `json:"reference,omitempty"`
	Method       string `json:"method,omitempty"`
}

func (u *Usecase) Disburse(ctx context.Context, loanNumber string, in DisburseInput) (*loan.Loan, error) {
	if in.DocumentPath == "" {
		return nil, fmt.Errorf("withdrawal document is required: %w", loan.ErrValidation)
	}
	if in.DisbursementDate.IsZero() {
		return nil, fmt.Errorf("disbursement date is required: %w", loan.ErrValidation)
	}

	var updated *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusApproved {
			return fmt.Errorf("only approved loans can be disbursed: %w", loan.ErrInvalidState)
		}

		method := in.Method
		if method == "" {
			method = "Cash Withdrawal from Bank Account"
		}

		disbursedOn := in.DisbursementDate
		due := loan.DueDateFrom(disbursedOn, l.RepaymentPeriodMonths)

		l.Disbursed = true
		l.DisbursementDate = &disbursedOn
		l.DueDate = &due
		l.DisbursementMethod = method
		l.DisbursementReference = in.Reference
		l.DisbursementDocumentPath = in.DocumentPath
		l.Status = loan.StatusActive

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
