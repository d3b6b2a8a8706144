package notifymock

import (
	"context"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/domain/notification"
)

var _ notification.Dispatcher = (*Dispatcher)(nil)

// Dispatcher is a function-backed mock that satisfies
// notification.Dispatcher. Unfilled methods succeed silently, matching the
// fire-and-forget contract.
type Dispatcher struct {
	GuarantorRequestedFn     func(ctx context.Context, l *loan.Loan, applicant, guarantor *member.Member, slot int) error
	BothGuarantorsApprovedFn func(ctx context.Context, l *loan.Loan, applicant *member.Member) error
	GuarantorDeclinedFn      func(ctx context.Context, l *loan.Loan, applicant *member.Member, guarantorName, reason string) error
	DueTomorrowFn            func(ctx context.Context, l *loan.Loan, borrower *member.Member) error
	NotifyExecutivesFn       func(ctx context.Context, l *loan.Loan, borrower *member.Member, executives []member.Member) error
}

func (m *Dispatcher) GuarantorRequested(ctx context.Context, l *loan.Loan, applicant, guarantor *member.Member, slot int) error {
	if m.GuarantorRequestedFn != nil {
		return m.GuarantorRequestedFn(ctx, l, applicant, guarantor, slot)
	}
	return nil
}

func (m *Dispatcher) BothGuarantorsApproved(ctx context.Context, l *loan.Loan, applicant *member.Member) error {
	if m.BothGuarantorsApprovedFn != nil {
		return m.BothGuarantorsApprovedFn(ctx, l, applicant)
	}
	return nil
}

func (m *Dispatcher) GuarantorDeclined(ctx context.Context, l *loan.Loan, applicant *member.Member, guarantorName, reason string) error {
	if m.GuarantorDeclinedFn != nil {
		return m.GuarantorDeclinedFn(ctx, l, applicant, guarantorName, reason)
	}
	return nil
}

func (m *Dispatcher) DueTomorrow(ctx context.Context, l *loan.Loan, borrower *member.Member) error {
	if m.DueTomorrowFn != nil {
		return m.DueTomorrowFn(ctx, l, borrower)
	}
	return nil
}

func (m *Dispatcher) NotifyExecutives(ctx context.Context, l *loan.Loan, borrower *member.Member, executives []member.Member) error {
	if m.NotifyExecutivesFn != nil {
		return m.NotifyExecutivesFn(ctx, l, borrower, executives)
	}
	return nil
}
