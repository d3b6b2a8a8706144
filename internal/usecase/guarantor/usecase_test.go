package guarantor

import (
	"context"
	"errors"
	"testing"

	"otsc-backend/internal/config"
	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/domain/uow"
	"otsc-backend/internal/testutil/loanmock"
	"otsc-backend/internal/testutil/membermock"
	"otsc-backend/internal/testutil/notifymock"
	"otsc-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		LoanInterestRate:    decimal.RequireFromString("5.00"),
		MaxRepaymentMonths:  2,
		QualificationPeriod: 5,
	}
}

func members() *membermock.Repo {
	byID := map[uint64]*member.Member{
		1:  {ID: 1, FullName: "Alice Applicant", Status: member.StatusActive},
		10: {ID: 10, FullName: "Gary Guarantor", Status: member.StatusActive, QualifiedForBenefits: true},
		20: {ID: 20, FullName: "Grace Guarantor", Status: member.StatusActive, QualifiedForBenefits: true},
		30: {ID: 30, FullName: "Newbie", Status: member.StatusActive, QualifiedForBenefits: false},
	}
	return &membermock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*member.Member, error) {
			if m, ok := byID[id]; ok {
				return m, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func pendingLoan() *loan.Loan {
	return &loan.Loan{
		ID: 1, LoanNumber: "LN-2025-0001", MemberID: 1,
		Status:       loan.StatusPendingGuarantorApproval,
		SecurityType: loan.SecurityGuarantors,
		Guarantor1:   loan.GuarantorSlot{MemberID: 10, Decision: loan.DecisionPending},
		Guarantor2:   loan.GuarantorSlot{MemberID: 20, Decision: loan.DecisionPending},
	}
}

func newUC(l *loan.Loan, notifier *notifymock.Dispatcher) *Usecase {
	loans := &loanmock.Repo{
		GetByLoanNumberForUpdateFn: func(ctx context.Context, n string) (*loan.Loan, error) {
			if l == nil {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
	}
	repos := uow.Repos{Loans: loans, Members: members()}
	if notifier == nil {
		notifier = &notifymock.Dispatcher{}
	}
	return NewUsecase(uowmock.New(repos), notifier, testConfig())
}

func TestUsecase_Approve(t *testing.T) {
	t.Run("first approval keeps loan waiting", func(t *testing.T) {
		l := pendingLoan()
		got, err := newUC(l, nil).Approve(context.Background(), "LN-2025-0001", 10)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Status != loan.StatusPendingGuarantorApproval {
			t.Errorf("status = %s", got.Status)
		}
		if got.Guarantor1.Decision != loan.DecisionApproved || got.Guarantor1.RespondedAt == nil {
			t.Errorf("slot 1 = %+v", got.Guarantor1)
		}
	})

	t.Run("second approval moves to executive queue and notifies applicant", func(t *testing.T) {
		l := pendingLoan()
		l.Guarantor1.Decision = loan.DecisionApproved

		var notifiedApplicant uint64
		notifier := &notifymock.Dispatcher{
			BothGuarantorsApprovedFn: func(ctx context.Context, nl *loan.Loan, applicant *member.Member) error {
				notifiedApplicant = applicant.ID
				return nil
			},
		}
		got, err := newUC(l, notifier).Approve(context.Background(), "LN-2025-0001", 20)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Status != loan.StatusPendingExecutiveApproval {
			t.Errorf("status = %s", got.Status)
		}
		if notifiedApplicant != 1 {
			t.Errorf("applicant not notified, got %d", notifiedApplicant)
		}
	})

	t.Run("non-guarantor cannot respond", func(t *testing.T) {
		if _, err := newUC(pendingLoan(), nil).Approve(context.Background(), "LN-2025-0001", 30); !errors.Is(err, loan.ErrNotAuthorized) {
			t.Fatalf("want ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("guarantor who lost qualification cannot respond", func(t *testing.T) {
		l := pendingLoan()
		l.Guarantor1.MemberID = 30
		if _, err := newUC(l, nil).Approve(context.Background(), "LN-2025-0001", 30); !errors.Is(err, loan.ErrNotAuthorized) {
			t.Fatalf("want ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("second response on the same slot", func(t *testing.T) {
		l := pendingLoan()
		l.Guarantor1.Decision = loan.DecisionApproved
		if _, err := newUC(l, nil).Approve(context.Background(), "LN-2025-0001", 10); !errors.Is(err, loan.ErrDuplicateResponse) {
			t.Fatalf("want ErrDuplicateResponse, got %v", err)
		}
	})

	t.Run("loan already past guarantor stage", func(t *testing.T) {
		l := pendingLoan()
		l.Status = loan.StatusApproved
		if _, err := newUC(l, nil).Approve(context.Background(), "LN-2025-0001", 10); !errors.Is(err, loan.ErrInvalidState) {
			t.Fatalf("want ErrInvalidState, got %v", err)
		}
	})

	t.Run("unknown loan", func(t *testing.T) {
		if _, err := newUC(nil, nil).Approve(context.Background(), "LN-2025-9999", 10); !errors.Is(err, loan.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestUsecase_Decline(t *testing.T) {
	t.Run("decline returns the application with the reason", func(t *testing.T) {
		l := pendingLoan()
		var gotReason, gotName string
		notifier := &notifymock.Dispatcher{
			GuarantorDeclinedFn: func(ctx context.Context, nl *loan.Loan, applicant *member.Member, guarantorName, reason string) error {
				gotName, gotReason = guarantorName, reason
				return nil
			},
		}
		got, err := newUC(l, notifier).Decline(context.Background(), "LN-2025-0001", 10, "outstanding debt to me")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Status != loan.StatusReturnedToApplicant {
			t.Errorf("status = %s", got.Status)
		}
		if got.Guarantor1.Decision != loan.DecisionDeclined || got.Guarantor1.DeclineReason != "outstanding debt to me" {
			t.Errorf("slot 1 = %+v", got.Guarantor1)
		}
		if gotName != "Gary Guarantor" || gotReason != "outstanding debt to me" {
			t.Errorf("notification = (%q, %q)", gotName, gotReason)
		}
	})

	t.Run("decline returns even when the other guarantor already approved", func(t *testing.T) {
		l := pendingLoan()
		l.Guarantor1.Decision = loan.DecisionApproved
		got, err := newUC(l, nil).Decline(context.Background(), "LN-2025-0001", 20, "cannot commit")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Status != loan.StatusReturnedToApplicant {
			t.Errorf("status = %s", got.Status)
		}
		// the other slot's answer is untouched until resubmission
		if got.Guarantor1.Decision != loan.DecisionApproved {
			t.Errorf("slot 1 = %+v", got.Guarantor1)
		}
	})

	t.Run("a reason is mandatory", func(t *testing.T) {
		if _, err := newUC(pendingLoan(), nil).Decline(context.Background(), "LN-2025-0001", 10, ""); !errors.Is(err, loan.ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("second response on the same slot", func(t *testing.T) {
		l := pendingLoan()
		l.Guarantor2.Decision = loan.DecisionDeclined
		if _, err := newUC(l, nil).Decline(context.Background(), "LN-2025-0001", 20, "again"); !errors.Is(err, loan.ErrDuplicateResponse) {
			t.Fatalf("want ErrDuplicateResponse, got %v", err)
		}
	})
}
