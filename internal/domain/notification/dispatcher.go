package notification

import (
	"context"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
)

// Dispatcher fans loan events out to members over email/SMS/WhatsApp.
// Every call is fire-and-forget from the ledger's point of view: a failed
// dispatch is logged by the caller and never fails the mutation that
// triggered it.
type Dispatcher interface {
	GuarantorRequested(ctx context.Context, l *loan.Loan, applicant, guarantor *member.Member, slot int) error
	BothGuarantorsApproved(ctx context.Context, l *loan.Loan, applicant *member.Member) error
	GuarantorDeclined(ctx context.Context, l *loan.Loan, applicant *member.Member, guarantorName, reason string) error
	DueTomorrow(ctx context.Context, l *loan.Loan, borrower *member.Member) error
	NotifyExecutives(ctx context.Context, l *loan.Loan, borrower *member.Member, executives []member.Member) error
}
