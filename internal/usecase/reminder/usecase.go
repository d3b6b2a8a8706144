package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"otsc-backend/internal/config"
	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/domain/notification"
)

// Usecase is the daily due-date scan plus the overdue/upcoming report
// queries. It is driven by an external scheduler; one invocation at a time
// is assumed.
type Usecase struct {
	loans    loan.Repository
	members  member.Repository
	notifier notification.Dispatcher
	cfg      *config.Config
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, members member.Repository, notifier notification.Dispatcher, cfg *config.Config) *Usecase {
	return &Usecase{loans: loans, members: members, notifier: notifier, cfg: cfg, now: time.Now}
}

// Summary reports one scan run. Per-loan dispatch failures are collected
// here instead of aborting the scan.
type Summary struct {
	Success           bool     `json:"success"`
	LoansChecked      int      `json:"loans_checked"`
	NotificationsSent int      `json:"notifications_sent"`
	Errors            []string `json:"errors,omitempty"`
}

// Scan finds loans due tomorrow with an outstanding balance, reminds each
// borrower and broadcasts to the executive committee.
func (u *Usecase) Scan(ctx context.Context) (*Summary, error) {
	tomorrow := u.now().UTC().AddDate(0, 0, 1)

	due, err := u.loans.ListDueOn(ctx, tomorrow)
	if err != nil {
		return nil, err
	}
	s := &Summary{Success: true, LoansChecked: len(due)}
	if len(due) == 0 {
		return s, nil
	}

	executives, err := u.members.ListExecutives(ctx)
	if err != nil {
		// the borrower reminders can still go out
		s.Errors = append(s.Errors, fmt.Sprintf("listing executives: %v", err))
		executives = nil
	}

	for i := range due {
		l := &due[i]
		borrower, err := u.members.GetByID(ctx, l.MemberID)
		if err != nil {
			s.Errors = append(s.Errors, fmt.Sprintf("loan %s: borrower lookup: %v", l.LoanNumber, err))
			continue
		}
		if err := u.notifier.DueTomorrow(ctx, l, borrower); err != nil {
			s.Errors = append(s.Errors, fmt.Sprintf("loan %s: borrower reminder: %v", l.LoanNumber, err))
		} else {
			s.NotificationsSent++
		}
		if len(executives) == 0 {
			continue
		}
		if err := u.notifier.NotifyExecutives(ctx, l, borrower, executives); err != nil {
			s.Errors = append(s.Errors, fmt.Sprintf("loan %s: executive broadcast: %v", l.LoanNumber, err))
		} else {
			s.NotificationsSent += len(executives)
		}
	}

	s.Success = len(s.Errors) == 0
	if !s.Success {
		log.Printf("reminder scan finished with %d errors", len(s.Errors))
	}
	return s, nil
}

// Overdue lists loans past their due date with balance outstanding.
// Reporting only; no status changes.
func (u *Usecase) Overdue(ctx context.Context) ([]loan.Loan, error) {
	return u.loans.ListOverdue(ctx, u.now().UTC())
}

// Upcoming lists loans due within the next days (the configured window when
// days <= 0).
func (u *Usecase) Upcoming(ctx context.Context, days int) ([]loan.Loan, error) {
	if days <= 0 {
		days = u.cfg.UpcomingDueDays
	}
	today := u.now().UTC()
	return u.loans.ListDueBetween(ctx, today, today.AddDate(0, 0, days))
}
