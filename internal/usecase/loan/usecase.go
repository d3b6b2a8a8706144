package loan

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
	"otsc-backend/internal/domain/repayment"
	"otsc-backend/internal/domain/sequence"
	"otsc-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	uow        uow.UnitOfWork
	loans      loan.Repository
	repayments repayment.Repository
	members    member.Repository
	notifier   notification.Dispatcher
	cfg        *config.Config
}

func NewUsecase(tx uow.UnitOfWork, loans loan.Repository, repayments repayment.Repository, members member.Repository, notifier notification.Dispatcher, cfg *config.Config) *Usecase {
	return &Usecase{uow: tx, loans: loans, repayments: repayments, members: members, notifier: notifier, cfg: cfg}
}

type ApplyInput struct {
	MemberID              uint64            `json:"member_id"`
	AmountRequested       decimal.Decimal   `json:"amount_requested"`
	Purpose               string            `json:"purpose"`
	RepaymentPeriodMonths int               `json:"repayment_period_months"`
	SecurityType          loan.SecurityType `json:"security_type"`

	Guarantor1ID uint64 `json:"guarantor1_id,omitempty"`
	Guarantor2ID uint64 `json:"guarantor2_id,omitempty"`

	CollateralDescription  string          `json:"collateral_description,omitempty"`
	CollateralValue        decimal.Decimal `json:"collateral_value,omitempty"`
	CollateralDocumentPath string          `json:"collateral_document_path,omitempty"`
}

// Apply submits a new loan application. The initial status depends on the
// security type: guarantor-backed loans wait for both consents, collateral
// loans go straight to the executive queue.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*loan.Loan, error) {
	applicant, err := u.members.GetByID(ctx, in.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrNotFound
		}
		return nil, err
	}
	if !applicant.IsActive() {
		return nil, fmt.Errorf("only active members can apply for loans: %w", loan.ErrValidation)
	}
	if err := u.validateTerms(in.AmountRequested, in.RepaymentPeriodMonths); err != nil {
		return nil, err
	}

	var g1, g2 *member.Member
	switch in.SecurityType {
	case loan.SecurityGuarantors:
		if g1, g2, err = u.validateGuarantors(ctx, in.MemberID, in.Guarantor1ID, in.Guarantor2ID); err != nil {
			return nil, err
		}
	case loan.SecurityCollateral:
		if err := validateCollateral(in.CollateralDescription, in.CollateralValue, in.CollateralDocumentPath, in.AmountRequested); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("security type must be Collateral or Guarantors: %w", loan.ErrValidation)
	}

	l := &loan.Loan{
		MemberID:              in.MemberID,
		AmountRequested:       in.AmountRequested,
		Purpose:               in.Purpose,
		RepaymentPeriodMonths: in.RepaymentPeriodMonths,
		InterestRate:          u.cfg.LoanInterestRate,
		SecurityType:          in.SecurityType,
		TotalPaid:             decimal.Zero,
	}
	if in.SecurityType == loan.SecurityGuarantors {
		l.Guarantor1 = loan.GuarantorSlot{MemberID: in.Guarantor1ID, Decision: loan.DecisionPending}
		l.Guarantor2 = loan.GuarantorSlot{MemberID: in.Guarantor2ID, Decision: loan.DecisionPending}
		l.Status = loan.StatusPendingGuarantorApproval
	} else {
		l.CollateralDescription = in.CollateralDescription
		l.CollateralValue = decimal.NewNullDecimal(in.CollateralValue)
		l.CollateralDocumentPath = in.CollateralDocumentPath
		l.Status = loan.StatusPendingExecutiveApproval
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		existing, err := r.Loans.GetOpenLoanByMemberID(ctx, in.MemberID)
		switch {
		case err == nil:
			return fmt.Errorf("member already has loan %s in status %s: %w",
				existing.LoanNumber, existing.Status, loan.ErrValidation)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		n, err := r.Sequences.Next(ctx, sequence.LoanPrefix(time.Now().UTC().Year()))
		if err != nil {
			return err
		}
		l.LoanNumber = sequence.Format(sequence.LoanPrefix(time.Now().UTC().Year()), n)

		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	if in.SecurityType == loan.SecurityGuarantors {
		u.notifyGuarantors(ctx, l, applicant, g1, g2)
	}
	return l, nil
}

type EditInput struct {
	AmountRequested       decimal.Decimal   `json:"amount_requested"`
	Purpose               string            `json:"purpose"`
	RepaymentPeriodMonths int               `json:"repayment_period_months"`
	SecurityType          loan.SecurityType `json:"security_type"`

	Guarantor1ID uint64 `json:"guarantor1_id,omitempty"`
	Guarantor2ID uint64 `json:"guarantor2_id,omitempty"`

	CollateralDescription  string          `json:"collateral_description,omitempty"`
	CollateralValue        decimal.Decimal `json:"collateral_value,omitempty"`
	CollateralDocumentPath string          `json:"collateral_document_path,omitempty"`
}

// Edit resubmits a returned application. Both guarantor slots reset to
// pending; switching security type clears the other security's fields.
func (u *Usecase) Edit(ctx context.Context, loanNumber string, actorMemberID uint64, in EditInput) (*loan.Loan, error) {
	var (
		updated   *loan.Loan
		applicant *member.Member
		g1, g2    *member.Member
	)
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.MemberID != actorMemberID {
			return loan.ErrNotAuthorized
		}
		if l.Status != loan.StatusReturnedToApplicant {
			return fmt.Errorf("only returned applications can be edited: %w", loan.ErrInvalidState)
		}
		if err := u.validateTerms(in.AmountRequested, in.RepaymentPeriodMonths); err != nil {
			return err
		}

		l.AmountRequested = in.AmountRequested
		l.Purpose = in.Purpose
		l.RepaymentPeriodMonths = in.RepaymentPeriodMonths
		l.SecurityType = in.SecurityType

		switch in.SecurityType {
		case loan.SecurityGuarantors:
			var err error
			if g1, g2, err = u.validateGuarantors(ctx, l.MemberID, in.Guarantor1ID, in.Guarantor2ID); err != nil {
				return err
			}
			l.Guarantor1 = loan.GuarantorSlot{MemberID: in.Guarantor1ID, Decision: loan.DecisionPending}
			l.Guarantor2 = loan.GuarantorSlot{MemberID: in.Guarantor2ID, Decision: loan.DecisionPending}
			l.CollateralDescription = ""
			l.CollateralValue = decimal.NullDecimal{}
			l.CollateralDocumentPath = ""
			l.Status = loan.StatusPendingGuarantorApproval
		case loan.SecurityCollateral:
			if err := validateCollateral(in.CollateralDescription, in.CollateralValue, in.CollateralDocumentPath, in.AmountRequested); err != nil {
				return err
			}
			l.CollateralDescription = in.CollateralDescription
			l.CollateralValue = decimal.NewNullDecimal(in.CollateralValue)
			l.CollateralDocumentPath = in.CollateralDocumentPath
			l.Guarantor1 = loan.GuarantorSlot{}
			l.Guarantor2 = loan.GuarantorSlot{}
			l.Status = loan.StatusPendingExecutiveApproval
		default:
			return fmt.Errorf("security type must be Collateral or Guarantors: %w", loan.ErrValidation)
		}

		var err error
		if applicant, err = r.Members.GetByID(ctx, l.MemberID); err != nil {
			return err
		}
		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	if updated.SecurityType == loan.SecurityGuarantors {
		u.notifyGuarantors(ctx, updated, applicant, g1, g2)
	}
	return updated, nil
}

// Cancel withdraws a pending or returned application. The record is kept
// and marked Rejected rather than deleted.
func (u *Usecase) Cancel(ctx context.Context, loanNumber string, actorMemberID uint64) (*loan.Loan, error) {
	var updated *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if l.MemberID != actorMemberID {
			return loan.ErrNotAuthorized
		}
		if l.Status != loan.StatusReturnedToApplicant && l.Status != loan.StatusPendingGuarantorApproval {
			return fmt.Errorf("only pending or returned applications can be canceled: %w", loan.ErrInvalidState)
		}
		now := time.Now().UTC()
		l.ApprovalNotes = fmt.Sprintf("Canceled by applicant (was %s)", l.Status)
		l.ApprovalDate = &now
		l.Status = loan.StatusRejected
		updated = l
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return updated, nil
}

// Get returns a loan with its repayment history. Access follows the
// original register rule: executives and auditors see everything, the
// applicant and the two guarantors see their own loan.
func (u *Usecase) Get(ctx context.Context, loanNumber string, actor *member.Member) (*Detail, error) {
	l, err := u.loans.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !canView(l, actor) {
		return nil, loan.ErrNotAuthorized
	}
	history, err := u.repayments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Loan: l, Repayments: history}, nil
}

func canView(l *loan.Loan, actor *member.Member) bool {
	if actor == nil {
		return false
	}
	if actor.IsExecutive() || actor.Role == member.RoleAuditor {
		return true
	}
	if l.MemberID == actor.ID {
		return true
	}
	slot, _ := l.SlotFor(actor.ID)
	return slot != nil
}

// List returns the loan register with portfolio statistics.
func (u *Usecase) List(ctx context.Context, f loan.ListFilter) (*Register, error) {
	items, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	stats, err := u.loans.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Register{Loans: items, Stats: *stats}, nil
}

func (u *Usecase) validateTerms(amount decimal.Decimal, months int) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return loan.ErrInvalidAmount
	}
	if months < 1 || months > u.cfg.MaxRepaymentMonths {
		return fmt.Errorf("repayment period must be between 1 and %d months: %w",
			u.cfg.MaxRepaymentMonths, loan.ErrValidation)
	}
	return nil
}

func (u *Usecase) validateGuarantors(ctx context.Context, applicantID, g1ID, g2ID uint64) (*member.Member, *member.Member, error) {
	if g1ID == 0 || g2ID == 0 {
		return nil, nil, fmt.Errorf("two guarantors are required: %w", loan.ErrValidation)
	}
	if g1ID == g2ID {
		return nil, nil, fmt.Errorf("guarantors must be different members: %w", loan.ErrValidation)
	}
	if g1ID == applicantID || g2ID == applicantID {
		return nil, nil, fmt.Errorf("applicant cannot be their own guarantor: %w", loan.ErrValidation)
	}
	g1, err := u.lookupGuarantor(ctx, g1ID)
	if err != nil {
		return nil, nil, err
	}
	g2, err := u.lookupGuarantor(ctx, g2ID)
	if err != nil {
		return nil, nil, err
	}
	return g1, g2, nil
}

func (u *Usecase) lookupGuarantor(ctx context.Context, id uint64) (*member.Member, error) {
	g, err := u.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("guarantor %d does not exist: %w", id, loan.ErrValidation)
		}
		return nil, err
	}
	if !g.IsQualified() {
		return nil, fmt.Errorf("guarantor %s is not qualified (%d consecutive months required): %w",
			g.MemberNumber, u.cfg.QualificationPeriod, loan.ErrValidation)
	}
	return g, nil
}

func validateCollateral(description string, value decimal.Decimal, documentPath string, amountRequested decimal.Decimal) error {
	if description == "" {
		return fmt.Errorf("collateral description is required: %w", loan.ErrValidation)
	}
	if value.LessThan(amountRequested) {
		return fmt.Errorf("collateral value must be at least the loan amount: %w", loan.ErrValidation)
	}
	if documentPath == "" {
		return fmt.Errorf("collateral documents are required: %w", loan.ErrValidation)
	}
	return nil
}

func (u *Usecase) notifyGuarantors(ctx context.Context, l *loan.Loan, applicant, g1, g2 *member.Member) {
	// fire-and-forget: a failed dispatch never fails the application
	if g1 != nil {
		if err := u.notifier.GuarantorRequested(ctx, l, applicant, g1, 1); err != nil {
			log.Printf("loan %s: guarantor 1 notification failed: %v", l.LoanNumber, err)
		}
	}
	if g2 != nil {
		if err := u.notifier.GuarantorRequested(ctx, l, applicant, g2, 2); err != nil {
			log.Printf("loan %s: guarantor 2 notification failed: %v", l.LoanNumber, err)
		}
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
