package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	domain "otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/testutil/loanmock"
	"otsc-backend/internal/testutil/membermock"
	"otsc-backend/internal/testutil/notifymock"
	"otsc-backend/internal/usecase/reminder"

	"github.com/shopspring/decimal"
)

func newReminderHandler(loans *loanmock.Repo) *ReminderHandler {
	members := &membermock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*member.Member, error) {
			return &member.Member{ID: id, FullName: "Borrower", Status: member.StatusActive}, nil
		},
		ListExecutivesFn: func(ctx context.Context) ([]member.Member, error) { return nil, nil },
	}
	uc := reminder.NewUsecase(loans, members, &notifymock.Dispatcher{}, testCfg())
	return NewReminderHandler(uc)
}

func TestReminderScan(t *testing.T) {
	e := newEchoWithValidator()
	due := time.Now().UTC().AddDate(0, 0, 1)
	loans := &loanmock.Repo{
		ListDueOnFn: func(ctx context.Context, day time.Time) ([]domain.Loan, error) {
			return []domain.Loan{
				{ID: 1, LoanNumber: "LN-2025-0001", MemberID: 1, Status: domain.StatusActive,
					DueDate: &due, Balance: decimal.RequireFromString("165000")},
			}, nil
		},
	}
	h := newReminderHandler(loans)

	rec := doJSON(e, h.Scan, stdhttp.MethodPost, "/reminders/scan", nil, "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	var got reminder.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !got.Success || got.LoansChecked != 1 || got.NotificationsSent != 1 {
		t.Fatalf("summary = %+v", got)
	}
}

func TestReminderUpcoming_BadDays(t *testing.T) {
	e := newEchoWithValidator()
	h := newReminderHandler(&loanmock.Repo{
		ListDueBetweenFn: func(ctx context.Context, from, to time.Time) ([]domain.Loan, error) { return nil, nil },
	})

	rec := doJSON(e, h.Upcoming, stdhttp.MethodGet, "/loans/upcoming?days=soon", nil, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(e, h.Upcoming, stdhttp.MethodGet, "/loans/upcoming?days=3", nil, "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
}

func TestReminderOverdue(t *testing.T) {
	e := newEchoWithValidator()
	past := time.Now().UTC().AddDate(0, 0, -10)
	h := newReminderHandler(&loanmock.Repo{
		ListOverdueFn: func(ctx context.Context, today time.Time) ([]domain.Loan, error) {
			return []domain.Loan{
				{LoanNumber: "LN-2025-0001", Status: domain.StatusActive, DueDate: &past,
					Balance: decimal.RequireFromString("50000")},
			}, nil
		},
	})

	rec := doJSON(e, h.Overdue, stdhttp.MethodGet, "/loans/overdue", nil, "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		Count int           `json:"count"`
		Loans []domain.Loan `json:"loans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Count != 1 || got.Loans[0].Status != domain.StatusActive {
		t.Fatalf("response = %+v", got)
	}
}
