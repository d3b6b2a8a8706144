package mysql

import (
	"context"
	"time"

	loanDomain "otsc-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanNumber(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_number = ?", loanNumber).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_number = ?", loanNumber).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetOpenLoanByMemberID(ctx context.Context, memberID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("member_id = ? AND status IN ?", memberID, loanDomain.OpenStatuses()).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MemberID != 0 {
		q = q.Where("member_id = ?", f.MemberID)
	}
	var out []loanDomain.Loan
	res := q.Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Stats(ctx context.Context) (*loanDomain.PortfolioStats, error) {
	var s loanDomain.PortfolioStats

	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status IN ?", []loanDomain.Status{
			loanDomain.StatusDisbursedLegacy, loanDomain.StatusActive, loanDomain.StatusCompleted,
		}).
		Select("COALESCE(SUM(amount_approved), 0)").
		Scan(&s.TotalDisbursed).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ?", loanDomain.StatusActive).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&s.TotalOutstanding).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ?", loanDomain.StatusActive).
		Count(&s.ActiveLoans).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func servicingStatuses() []loanDomain.Status {
	return []loanDomain.Status{loanDomain.StatusActive, loanDomain.StatusDisbursedLegacy}
}

func (r *LoanRepository) ListDueOn(ctx context.Context, day time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status IN ? AND due_date = ? AND balance > 0", servicingStatuses(), dateOnly(day)).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListOverdue(ctx context.Context, today time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status IN ? AND due_date < ? AND balance > 0", servicingStatuses(), dateOnly(today)).
		Order("due_date ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status IN ? AND due_date >= ? AND due_date <= ? AND balance > 0",
			servicingStatuses(), dateOnly(from), dateOnly(to)).
		Order("due_date ASC").
		Find(&out)
	return out, res.Error
}

// dateOnly truncates to midnight UTC so DATE column comparisons are stable.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
