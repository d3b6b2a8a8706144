package guarantor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"otsc-backend/internal/config"
	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/domain/notification"
	"otsc-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase coordinates the two-guarantor consent protocol. Each slot is
// answered at most once; the store serializes concurrent responses via the
// locked loan row, and the loser of a race gets ErrDuplicateResponse.
type Usecase struct {
	uow      uow.UnitOfWork
	notifier notification.Dispatcher
	cfg      *config.Config
}

func NewUsecase(tx uow.UnitOfWork, notifier notification.Dispatcher, cfg *config.Config) *Usecase {
	return &Usecase{uow: tx, notifier: notifier, cfg: cfg}
}

// Approve records one guarantor's consent. When the second slot flips to
// approved the loan moves to the executive queue and the applicant is told.
func (u *Usecase) Approve(ctx context.Context, loanNumber string, guarantorMemberID uint64) (*loan.Loan, error) {
	var (
		updated      *loan.Loan
		applicant    *member.Member
		bothApproved bool
	)
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		slot, err := u.guardResponse(ctx, r, l, guarantorMemberID)
		if err != nil {
			return err
		}
		slot.Approve(time.Now().UTC())

		if l.BothGuarantorsApproved() {
			l.Status = loan.StatusPendingExecutiveApproval
			bothApproved = true
			if applicant, err = r.Members.GetByID(ctx, l.MemberID); err != nil {
				return err
			}
		}
		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	if bothApproved {
		if err := u.notifier.BothGuarantorsApproved(ctx, updated, applicant); err != nil {
			log.Printf("loan %s: both-approved notification failed: %v", updated.LoanNumber, err)
		}
	}
	return updated, nil
}

// Decline records one guarantor's refusal with a mandatory reason and
// returns the application to the applicant. The other slot's answer is left
// untouched; resubmission resets both.
func (u *Usecase) Decline(ctx context.Context, loanNumber string, guarantorMemberID uint64, reason string) (*loan.Loan, error) {
	if reason == "" {
		return nil, fmt.Errorf("a reason for declining is required: %w", loan.ErrValidation)
	}
	var (
		updated   *loan.Loan
		applicant *member.Member
		decliner  *member.Member
	)
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		slot, err := u.guardResponse(ctx, r, l, guarantorMemberID)
		if err != nil {
			return err
		}
		if decliner, err = r.Members.GetByID(ctx, guarantorMemberID); err != nil {
			return err
		}
		slot.Decline(time.Now().UTC(), reason)
		l.Status = loan.StatusReturnedToApplicant

		if applicant, err = r.Members.GetByID(ctx, l.MemberID); err != nil {
			return err
		}
		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	if err := u.notifier.GuarantorDeclined(ctx, updated, applicant, decliner.FullName, reason); err != nil {
		log.Printf("loan %s: decline notification failed: %v", updated.LoanNumber, err)
	}
	return updated, nil
}

// guardResponse applies the per-slot preconditions shared by approve and
// decline and returns the caller's slot.
func (u *Usecase) guardResponse(ctx context.Context, r uow.Repos, l *loan.Loan, guarantorMemberID uint64) (*loan.GuarantorSlot, error) {
	slot, _ := l.SlotFor(guarantorMemberID)
	if slot == nil {
		return nil, fmt.Errorf("member %d is not a guarantor on loan %s: %w",
			guarantorMemberID, l.LoanNumber, loan.ErrNotAuthorized)
	}

	g, err := r.Members.GetByID(ctx, guarantorMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrNotFound
		}
		return nil, err
	}
	if !g.IsQualified() {
		return nil, fmt.Errorf("guarantor must be active with %d consecutive contribution months: %w",
			u.cfg.QualificationPeriod, loan.ErrNotAuthorized)
	}

	if l.Status != loan.StatusPendingGuarantorApproval && l.Status != loan.StatusReturnedToApplicant {
		return nil, fmt.Errorf("loan %s is not pending guarantor approval: %w", l.LoanNumber, loan.ErrInvalidState)
	}
	if slot.Decision != loan.DecisionPending {
		return nil, loan.ErrDuplicateResponse
	}
	return slot, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
