package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Repayment is an immutable record of one payment against a loan. The
// principal/interest split is fixed by the ratios derived at approval time;
// rows are only ever inserted, never updated.
type Repayment struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	RepaymentID   string          `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID        uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	ReceiptNumber string          `gorm:"size:20;uniqueIndex:ux_repayments_receipt" json:"receipt_number"` // LR-YYYY-MM-NNNN
	PaymentDate   time.Time       `gorm:"type:date;not null" json:"payment_date"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount_paid"`
	// PrincipalPortion + InterestPortion always equals AmountPaid.
	PrincipalPortion decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal_portion"`
	InterestPortion  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"interest_portion"`
	PaymentMethod    string          `gorm:"size:20;not null" json:"payment_method"`
	TransactionRef   string          `gorm:"column:transaction_reference;size:50" json:"transaction_reference,omitempty"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy       uint64          `gorm:"not null" json:"recorded_by"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "loan_repayments" }
